package out

import (
	"bytes"
	"fmt"
	"strings"

	summaryout "diagnocare/internal/modules/summary/port/out"
	"rsc.io/pdf"
)

type PDFInspector struct{}

var _ summaryout.PDFInspector = PDFInspector{}

func NewPDFInspector() PDFInspector {
	return PDFInspector{}
}

func (PDFInspector) PageCount(data []byte) (n int, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("parse pdf: %v", r)
		}
	}()
	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	total := doc.NumPage()
	if total == 0 {
		return 0, fmt.Errorf("pdf has no pages")
	}
	return total, nil
}

// PageText concatenates the glyph runs of one page.
func (PDFInspector) PageText(data []byte, page int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("parse pdf: %v", r)
		}
	}()
	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	if page < 1 || page > doc.NumPage() {
		return "", fmt.Errorf("pdf page %d out of range", page)
	}
	p := doc.Page(page)
	if p.V.IsNull() {
		return "", fmt.Errorf("pdf page %d is null", page)
	}
	var b strings.Builder
	for _, t := range p.Content().Text {
		b.WriteString(t.S)
	}
	return b.String(), nil
}
