// Package classifications implements the classification audit domain for
// DocSync. Every classification decision on a document, whether deterministic
// at intake, AI-assisted fallback, or explicit human reclassification, is
// stored as an immutable record, and the AI fallback itself is invoked from
// here for documents the deterministic chain left as OTHER.
package classifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/cdillerud/docsync/classify"
	"github.com/cdillerud/docsync/workflow"
)

// Record is one stored classification decision for a document.
type Record struct {
	ID         uuid.UUID        `json:"id"`
	DocumentID uuid.UUID        `json:"document_id"`
	DocType    workflow.DocType `json:"doc_type"`
	Method     string           `json:"method"`
	Confidence *float64         `json:"confidence"`
	Model      *string          `json:"model"`
	Reason     string           `json:"reason"`
	DecidedBy  string           `json:"decided_by"`
	DecidedAt  time.Time        `json:"decided_at"`
}

// ClassifyCommand carries the already-assembled context for one AI fallback
// consultation: any hints that failed to resolve deterministically plus any
// text extracted from the document so far. All fields are optional; the
// document's filename is always included.
type ClassifyCommand struct {
	Hints         classify.Hints `json:"hints"`
	ExtractedText string         `json:"extracted_text,omitempty"`
}

// ReclassifyCommand carries the data for an explicit human reclassification.
// Classification is never replaced silently: DecidedBy identifies who and
// Reason records why.
type ReclassifyCommand struct {
	DocType   workflow.DocType `json:"doc_type"`
	Reason    string           `json:"reason"`
	DecidedBy string           `json:"decided_by"`
}
