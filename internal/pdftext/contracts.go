// Package pdftext turns contract documents on disk into the plain text the
// extraction passes consume.
package pdftext

import "context"

// Source reads the text of one document. Implementations must keep the
// original line structure as far as the format allows; the rule extractor
// is line-oriented.
type Source interface {
	Text(ctx context.Context, path string) (string, error)
}
