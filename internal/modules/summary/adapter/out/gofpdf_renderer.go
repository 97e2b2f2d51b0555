package out

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"diagnocare/internal/modules/summary/domain"
	summaryout "diagnocare/internal/modules/summary/port/out"
	"diagnocare/internal/modules/summary/service"
)

// GofpdfRenderer lays out a consultation summary with the built-in
// Helvetica font; text is translated to cp1252 for accented characters.
type GofpdfRenderer struct{}

var _ summaryout.PDFRenderer = GofpdfRenderer{}

func NewGofpdfRenderer() GofpdfRenderer {
	return GofpdfRenderer{}
}

func (GofpdfRenderer) Render(predictionID int64, s domain.Summary) ([]byte, error) {
	out := service.ToOutput(predictionID, s)

	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(fmt.Sprintf("DiagnoCare summary %d", predictionID), true)
	doc.SetAuthor("DiagnoCare", true)
	doc.SetCompression(false)
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Helvetica", "I", 8)
		doc.SetTextColor(120, 120, 120)
		doc.CellFormat(0, 10, tr("Ce document est généré par une IA à titre informatif. Il ne constitue pas un diagnostic médical officiel."), "", 0, "C", false, 0, "")
	})
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, tr("Rapport Médical DiagnoCare"), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(100, 100, 100)
	doc.CellFormat(0, 6, tr("Généré le "+out.GeneratedAt), "", 1, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.Ln(4)

	heading := func(text string) {
		doc.Ln(3)
		doc.SetFont("Helvetica", "B", 13)
		doc.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
	}
	line := func(text string) {
		doc.MultiCell(0, 6, tr(text), "", "L", false)
	}

	heading("Patient")
	line(out.PatientName)
	line("Contexte: " + out.Context)
	if out.HasRedFlags {
		doc.SetTextColor(185, 28, 28)
		line("Signaux d'alerte détectés")
		for _, f := range out.RedFlags {
			line("- " + f)
		}
		doc.SetTextColor(0, 0, 0)
	}

	heading("1. Symptômes déclarés")
	if len(out.Symptoms) == 0 {
		line("—")
	}
	for _, sym := range out.Symptoms {
		line("- " + sym)
	}

	heading("2. Analyse prédictive")
	if len(out.Pathologies) == 0 {
		line("—")
	} else {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(90, 7, tr("Pathologie"), "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 7, "Score", "1", 0, "R", false, 0, "")
		doc.CellFormat(0, 7, tr("Spécialiste"), "1", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		for _, p := range out.Pathologies {
			doc.CellFormat(90, 7, tr(p.Name), "1", 0, "L", false, 0, "")
			doc.CellFormat(25, 7, fmt.Sprintf("%d%%", p.Score), "1", 0, "R", false, 0, "")
			doc.CellFormat(0, 7, tr(p.Specialist), "1", 1, "L", false, 0, "")
		}
		doc.SetFont("Helvetica", "", 11)
	}
	line("Spécialité recommandée: " + out.RecommendedSpecialty)

	if out.HasCheckIn {
		heading("Suivi")
		line("Statut: " + out.CheckInStatus)
		line("Évolution: " + out.CheckInOutcome)
		line("Variation du score: " + out.ScoreDelta)
	}

	heading("3. Questions suggérées pour la consultation")
	if len(out.Questions) == 0 {
		line("—")
	}
	for i, q := range out.Questions {
		line(fmt.Sprintf("%d. %s", i+1, q))
	}

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("layout pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
