package classify

import (
	"time"

	"github.com/cdillerud/docsync/workflow"
)

// DefaultThreshold is the minimum confidence at which an AI-proposed type
// overrides the deterministic OTHER classification.
const DefaultThreshold = 0.8

// AIResult is the typed outcome of one AI classification call. A failed call
// is still a result: ProposedType OTHER, Confidence 0, and Error populated.
// The surrounding pipeline always continues.
type AIResult struct {
	ProposedType workflow.DocType `json:"proposed_type"`
	Confidence   float64          `json:"confidence"`
	Model        string           `json:"model"`
	ClassifiedAt time.Time        `json:"classified_at"`
	Error        string           `json:"error,omitempty"`
}

// NormalizeAIResult coerces an AI result into the fixed contract: an
// unrecognized proposed type becomes OTHER with confidence forced to 0, and
// confidence is clamped to [0,1]. Invalid model output is coerced, not
// rejected; the audit-presence invariant depends on every consultation
// producing a recordable result.
func NormalizeAIResult(r AIResult) AIResult {
	if _, ok := workflow.ParseDocType(string(r.ProposedType)); !ok {
		r.ProposedType = workflow.DocTypeOther
		r.Confidence = 0
	}

	if r.Confidence < 0 {
		r.Confidence = 0
	}
	if r.Confidence > 1 {
		r.Confidence = 1
	}

	if r.Error != "" {
		r.ProposedType = workflow.DocTypeOther
		r.Confidence = 0
	}

	if r.ClassifiedAt.IsZero() {
		r.ClassifiedAt = time.Now().UTC()
	}

	return r
}

// Accepted reports whether a normalized AI result clears the acceptance
// gate: confidence at or above threshold and a proposed type other than
// OTHER.
func Accepted(r AIResult, threshold float64) bool {
	return r.Confidence >= threshold && r.ProposedType != workflow.DocTypeOther
}

// ApplyAIResult records the AI consultation on the workflow state and, when
// the result clears the gate, overrides the document type. The audit block
// is recorded on acceptance and rejection alike; rejection is never silent.
// Returns whether the proposal was accepted.
//
// Callers must only invoke the AI fallback when deterministic classification
// yielded OTHER, so the audit block is present iff that was the case.
func ApplyAIResult(s *workflow.State, result AIResult, threshold float64) bool {
	normalized := NormalizeAIResult(result)
	accepted := Accepted(normalized, threshold)

	s.AIClassification = &workflow.AIClassification{
		ProposedType: normalized.ProposedType,
		Confidence:   normalized.Confidence,
		Model:        normalized.Model,
		ClassifiedAt: normalized.ClassifiedAt,
		Accepted:     accepted,
		Error:        normalized.Error,
	}

	if accepted {
		s.DocType = normalized.ProposedType
		s.ClassificationMethod = MethodAI
	} else {
		s.ClassificationMethod = MethodAIRejected
	}

	return accepted
}
