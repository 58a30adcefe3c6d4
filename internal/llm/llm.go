// Package llm defines the structured-extraction contract.
package llm

import (
	"context"
	"errors"

	"github.com/vcatlas/vcatlas/internal/vc"
)

// ErrExtraction marks any failure to obtain a well-formed record from
// the model: transport errors, empty completions, and malformed JSON
// alike. Callers treat it as terminal; nothing retries.
var ErrExtraction = errors.New("extraction failed")

// Extractor turns a page's text blob into a structured VC record. The
// provider-specific response envelope stays behind this interface so
// swapping the model provider never touches the rest of the pipeline.
type Extractor interface {
	Extract(ctx context.Context, text string) (vc.Record, error)
}
