package classify_test

import (
	"testing"
	"time"

	"github.com/cdillerud/docsync/classify"
	"github.com/cdillerud/docsync/workflow"
)

func otherState(t *testing.T) *workflow.State {
	t.Helper()
	s := &workflow.State{}
	_, err := workflow.Initialize(s, workflow.DocTypeOther, workflow.SourceNative, workflow.ChannelUpload, classify.MethodDefault, "system")
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return s
}

func TestNormalizeAIResult(t *testing.T) {
	tests := []struct {
		name       string
		in         classify.AIResult
		docType    workflow.DocType
		confidence float64
	}{
		{
			name:       "valid result passes through",
			in:         classify.AIResult{ProposedType: workflow.DocTypeAPInvoice, Confidence: 0.91},
			docType:    workflow.DocTypeAPInvoice,
			confidence: 0.91,
		},
		{
			name:       "unknown type forces OTHER at zero",
			in:         classify.AIResult{ProposedType: "INVOICE_MAYBE", Confidence: 0.99},
			docType:    workflow.DocTypeOther,
			confidence: 0,
		},
		{
			name:       "confidence clamped high",
			in:         classify.AIResult{ProposedType: workflow.DocTypeStatement, Confidence: 1.7},
			docType:    workflow.DocTypeStatement,
			confidence: 1,
		},
		{
			name:       "confidence clamped low",
			in:         classify.AIResult{ProposedType: workflow.DocTypeStatement, Confidence: -0.2},
			docType:    workflow.DocTypeStatement,
			confidence: 0,
		},
		{
			name:       "error forces OTHER at zero",
			in:         classify.AIResult{ProposedType: workflow.DocTypeAPInvoice, Confidence: 0.95, Error: "model timeout"},
			docType:    workflow.DocTypeOther,
			confidence: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify.NormalizeAIResult(tt.in)
			if got.ProposedType != tt.docType {
				t.Errorf("proposed type = %s, want %s", got.ProposedType, tt.docType)
			}
			if got.Confidence != tt.confidence {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.confidence)
			}
			if got.ClassifiedAt.IsZero() {
				t.Error("classified_at not stamped")
			}
		})
	}

	t.Run("existing timestamp preserved", func(t *testing.T) {
		at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		got := classify.NormalizeAIResult(classify.AIResult{ProposedType: workflow.DocTypeReminder, Confidence: 0.5, ClassifiedAt: at})
		if !got.ClassifiedAt.Equal(at) {
			t.Errorf("classified_at = %v, want %v", got.ClassifiedAt, at)
		}
	})
}

func TestAccepted(t *testing.T) {
	tests := []struct {
		name   string
		result classify.AIResult
		want   bool
	}{
		{"above threshold", classify.AIResult{ProposedType: workflow.DocTypeAPInvoice, Confidence: 0.91}, true},
		{"exactly at threshold", classify.AIResult{ProposedType: workflow.DocTypeAPInvoice, Confidence: 0.8}, true},
		{"below threshold", classify.AIResult{ProposedType: workflow.DocTypeAPInvoice, Confidence: 0.79}, false},
		{"OTHER never accepted", classify.AIResult{ProposedType: workflow.DocTypeOther, Confidence: 0.99}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify.Accepted(tt.result, classify.DefaultThreshold); got != tt.want {
				t.Errorf("Accepted = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("custom threshold", func(t *testing.T) {
		r := classify.AIResult{ProposedType: workflow.DocTypeStatement, Confidence: 0.65}
		if classify.Accepted(r, 0.8) {
			t.Error("0.65 accepted at threshold 0.8")
		}
		if !classify.Accepted(r, 0.6) {
			t.Error("0.65 rejected at threshold 0.6")
		}
	})
}

func TestApplyAIResult(t *testing.T) {
	t.Run("accepted proposal overrides type", func(t *testing.T) {
		s := otherState(t)
		result := classify.AIResult{
			ProposedType: workflow.DocTypeAPInvoice,
			Confidence:   0.91,
			Model:        "gpt-5-mini",
		}

		accepted := classify.ApplyAIResult(s, result, classify.DefaultThreshold)
		if !accepted {
			t.Fatal("proposal rejected")
		}

		if s.DocType != workflow.DocTypeAPInvoice {
			t.Errorf("doc type = %s, want AP_INVOICE", s.DocType)
		}
		if s.ClassificationMethod != classify.MethodAI {
			t.Errorf("method = %s, want ai", s.ClassificationMethod)
		}
		if s.AIClassification == nil {
			t.Fatal("audit block missing")
		}
		if !s.AIClassification.Accepted {
			t.Error("audit block not marked accepted")
		}
		if s.AIClassification.Model != "gpt-5-mini" {
			t.Errorf("audit model = %s", s.AIClassification.Model)
		}
	})

	t.Run("rejected proposal keeps OTHER but records audit", func(t *testing.T) {
		s := otherState(t)
		result := classify.AIResult{
			ProposedType: workflow.DocTypeStatement,
			Confidence:   0.55,
			Model:        "gpt-5-mini",
		}

		accepted := classify.ApplyAIResult(s, result, classify.DefaultThreshold)
		if accepted {
			t.Fatal("low-confidence proposal accepted")
		}

		if s.DocType != workflow.DocTypeOther {
			t.Errorf("doc type = %s, want OTHER", s.DocType)
		}
		if s.ClassificationMethod != classify.MethodAIRejected {
			t.Errorf("method = %s, want ai_rejected", s.ClassificationMethod)
		}
		if s.AIClassification == nil {
			t.Fatal("audit block missing for rejection")
		}
		if s.AIClassification.Accepted {
			t.Error("audit block marked accepted")
		}
		if s.AIClassification.ProposedType != workflow.DocTypeStatement {
			t.Errorf("audit proposed type = %s, want STATEMENT", s.AIClassification.ProposedType)
		}
	})

	t.Run("failed call records error and stays OTHER", func(t *testing.T) {
		s := otherState(t)
		result := classify.AIResult{Error: "model timeout"}

		if classify.ApplyAIResult(s, result, classify.DefaultThreshold) {
			t.Fatal("errored result accepted")
		}

		if s.DocType != workflow.DocTypeOther {
			t.Errorf("doc type = %s, want OTHER", s.DocType)
		}
		if s.AIClassification == nil || s.AIClassification.Error != "model timeout" {
			t.Errorf("audit block = %+v, want error recorded", s.AIClassification)
		}
	})
}
