// Package classify assigns a document type, source system, and capture
// channel to a raw intake signal. Deterministic lookups run in a fixed
// priority order; the AI fallback gate in ai.go only applies when the
// deterministic chain produced the generic OTHER type.
package classify

import (
	"maps"
	"slices"
	"strings"

	"github.com/cdillerud/docsync/workflow"
)

// Classification methods recorded on documents. The "ai" prefix marks every
// outcome where the AI fallback was consulted, accepted or not.
const (
	MethodSetCode      = "zetadocs_set_code"
	MethodWorkflowName = "continia_workflow"
	MethodMailbox      = "mailbox_category"
	MethodAILabel      = "ai_label"
	MethodDefault      = "default"
	MethodAI           = "ai"
	MethodAIRejected   = "ai_rejected"
	MethodManual       = "manual"
)

// Hints carries the externally sourced classification signals for one
// document. Empty fields are simply skipped by the priority chain.
type Hints struct {
	SetCode         string `json:"set_code,omitempty"`
	WorkflowName    string `json:"workflow_name,omitempty"`
	MailboxCategory string `json:"mailbox_category,omitempty"`
	AILabel         string `json:"ai_label,omitempty"`
	CaptureSource   string `json:"capture_source,omitempty"`
	Migration       bool   `json:"migration,omitempty"`
}

// Result is the outcome of deterministic classification.
type Result struct {
	DocType workflow.DocType `json:"doc_type"`
	Method  string           `json:"method"`
}

// Resolve classifies hints with a strict priority order: Zetadocs set code,
// Continia workflow name, mailbox category, AI-suggested label, then the
// OTHER default. The first non-empty hint that matches wins; later hints are
// never consulted once an earlier one resolved.
//
// The AILabel branch only consults an already-computed label. It never
// invokes the AI itself; that is the caller's decision via the fallback gate.
func Resolve(cfg *Config, hints Hints) Result {
	if hints.SetCode != "" {
		if dt, ok := cfg.SetCodes[strings.ToUpper(strings.TrimSpace(hints.SetCode))]; ok {
			return Result{DocType: dt, Method: MethodSetCode}
		}
	}

	if hints.WorkflowName != "" {
		if dt, ok := cfg.WorkflowNames[hints.WorkflowName]; ok {
			return Result{DocType: dt, Method: MethodWorkflowName}
		}
		for _, name := range slices.Sorted(maps.Keys(cfg.WorkflowNames)) {
			if normalize(name) == normalize(hints.WorkflowName) {
				return Result{DocType: cfg.WorkflowNames[name], Method: MethodWorkflowName}
			}
		}
	}

	if hints.MailboxCategory != "" {
		if dt, ok := cfg.MailboxCategories[hints.MailboxCategory]; ok {
			return Result{DocType: dt, Method: MethodMailbox}
		}
	}

	if hints.AILabel != "" {
		if dt, ok := cfg.AILabels[normalize(hints.AILabel)]; ok {
			return Result{DocType: dt, Method: MethodAILabel}
		}
	}

	return Result{DocType: workflow.DocTypeOther, Method: MethodDefault}
}

// SourceFor derives the source system from the hints. Legacy hints imply the
// corresponding legacy system, a migration marker implies the migration
// source, and the absence of all implies native capture. Total; never fails.
func SourceFor(hints Hints) workflow.SourceSystem {
	switch {
	case hints.Migration:
		return workflow.SourceMigration
	case hints.SetCode != "":
		return workflow.SourceZetadocs
	case hints.WorkflowName != "":
		return workflow.SourceContinia
	default:
		return workflow.SourceNative
	}
}

// ChannelFor derives the capture channel from a free-text source label via
// keyword containment. Keywords are tried in table order, so a label hitting
// several keywords always resolves to the same channel. Unrecognized labels
// map to ChannelUnknown; the lookup never fails.
func ChannelFor(cfg *Config, label string) workflow.CaptureChannel {
	normalized := normalize(label)
	if normalized == "" {
		return workflow.ChannelUnknown
	}

	for _, kw := range cfg.ChannelKeywords {
		if normalized == kw.Keyword {
			return kw.Channel
		}
	}

	for _, kw := range cfg.ChannelKeywords {
		if strings.Contains(normalized, kw.Keyword) {
			return kw.Channel
		}
	}

	return workflow.ChannelUnknown
}
