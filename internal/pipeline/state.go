// File path: internal/pipeline/state.go
package pipeline

import (
	"strings"

	"github.com/nicodishanthj/Prodigen_phase1/internal/product"
)

// Operation names accepted in a request.
const (
	OpDescription = "description"
	OpComparison  = "comparison"
	OpFAQ         = "faq"
)

// stepOrder fixes the execution order of optional steps regardless of how the
// request lists them.
var stepOrder = []string{OpDescription, OpComparison, OpFAQ}

// KnownOperation reports whether name is a requestable optional step.
func KnownOperation(name string) bool {
	switch name {
	case OpDescription, OpComparison, OpFAQ:
		return true
	}
	return false
}

// NormalizeOperations lowercases, trims, and de-duplicates the requested
// operation names, preserving only known ones.
func NormalizeOperations(requested []string) []string {
	seen := make(map[string]bool, len(requested))
	out := make([]string, 0, len(requested))
	for _, name := range requested {
		cleaned := strings.ToLower(strings.TrimSpace(name))
		if cleaned == "" || seen[cleaned] || !KnownOperation(cleaned) {
			continue
		}
		seen[cleaned] = true
		out = append(out, cleaned)
	}
	return out
}

// State is the shared value threaded through the pipeline graph. One instance
// per request; steps write their outputs into it and never read another
// request's state.
type State struct {
	// RawInput is either a map[string]interface{} of structured fields or a
	// free-text string.
	RawInput interface{}

	// Operations is the normalized requested step set.
	Operations []string

	Parsed      *product.ParsedProduct
	Description *product.Description
	Comparison  *product.Comparison
	FAQs        *product.FAQPage

	// Err marks the first step failure. Once set, routing goes straight to
	// the end and no further step runs.
	Err error
}

// NewState builds a fresh per-request state.
func NewState(input interface{}, operations []string) *State {
	return &State{RawInput: input, Operations: NormalizeOperations(operations)}
}

func (s *State) wants(operation string) bool {
	for _, name := range s.Operations {
		if name == operation {
			return true
		}
	}
	return false
}
