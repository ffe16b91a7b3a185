package llm

import (
	"context"

	"github.com/joseph-ayodele/contracts-ledger/internal/contract"
)

// ExtractRequest carries one document into the AI pass.
type ExtractRequest struct {
	// DocumentText is the concatenated page text of the contract.
	DocumentText string
	// FilenameHint is the source file name, a weak extra signal.
	FilenameHint string
	// Language is the rule pass's detected language ("en"/"es"), passed
	// through so the model reads the right labels.
	Language string
}

// Extractor is the AI-pass boundary the pipeline depends on. The model's
// output is untrusted: implementations must fence-strip, parse, and
// schema-validate it, degrading to the all-empty record on malformed
// output instead of failing. A non-nil error means the call itself failed
// (transport, auth) and the caller should proceed rule-based-only.
type Extractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) (contract.Record, []byte, error)
}
