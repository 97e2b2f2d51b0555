package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	summaryout "diagnocare/internal/modules/summary/port/out"
)

// FileSink writes reports to the local filesystem. Relative destinations
// resolve against baseDir.
type FileSink struct {
	baseDir string
}

var _ summaryout.ReportSink = FileSink{}

func NewFileSink(baseDir string) FileSink {
	return FileSink{baseDir: baseDir}
}

func (s FileSink) Save(_ context.Context, dest, name string, data []byte) (string, error) {
	path := dest
	if path == "" {
		path = s.baseDir
	} else if !filepath.IsAbs(path) && s.baseDir != "" {
		path = filepath.Join(s.baseDir, path)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("move report: %w", err)
	}
	return path, nil
}
