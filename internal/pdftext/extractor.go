package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// Extractor reads PDFs with ledongthuc/pdf (pure Go, no CGO). Plain .txt
// files pass through verbatim, which keeps tests and manual reruns cheap.
type Extractor struct {
	log *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{log: logger}
}

func (e *Extractor) Text(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	start := time.Now()

	if strings.EqualFold(filepath.Ext(path), ".txt") {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read text file: %w", err)
		}
		return string(raw), nil
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	pages := r.NumPage()
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text := pageText(p)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(text)
	}

	e.log.Debug("pdftext.extracted",
		"path", path,
		"pages", pages,
		"chars", b.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return strings.TrimSpace(b.String()), nil
}

// pageText rebuilds one page line by line. Row grouping keeps the label
// and value layout the rule extractor's window scans depend on; pages
// where row extraction fails fall back to the flat plain text.
func pageText(p pdf.Page) string {
	rows, err := p.GetTextByRow()
	if err != nil || len(rows) == 0 {
		plain, perr := p.GetPlainText(nil)
		if perr != nil {
			return ""
		}
		return strings.TrimSpace(plain)
	}
	var b strings.Builder
	for _, row := range rows {
		var line strings.Builder
		for _, t := range row.Content {
			line.WriteString(t.S)
		}
		s := strings.TrimSpace(line.String())
		if s == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s)
	}
	return b.String()
}

var _ Source = (*Extractor)(nil)
