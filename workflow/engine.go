// Package workflow implements the per-document-type approval and export
// state machines for DocSync. Transition tables are plain data keyed by
// document type; the engine operations are pure, synchronous functions over
// in-memory state with no I/O and no shared mutable state between calls.
//
// The engine does not guard against concurrent writers of the same stored
// document. Callers that persist State are responsible for serializing
// updates per document, e.g. via the revision compare-and-swap the documents
// repository uses.
package workflow

import (
	"fmt"
	"time"
)

// Decision is the outcome of a transition lookup.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Next    Status `json:"next,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// CanTransition reports whether event may be applied to a document of
// docType currently in status, and the resulting status when it may.
//
// The lookup is total: unknown document types, statuses, or events are
// reported as not allowed with a human-readable reason, never an error.
// Generic callers rely on the uniform not-allowed shape to no-op safely on
// type mismatches.
func CanTransition(docType DocType, status Status, event Event) Decision {
	table, ok := transitions[docType]
	if !ok {
		return Decision{Reason: fmt.Sprintf("unknown document type %q", docType)}
	}

	events, ok := table[status]
	if !ok {
		if Terminal(status) {
			return Decision{Reason: fmt.Sprintf("status %q is terminal for %s", status, docType)}
		}
		return Decision{Reason: fmt.Sprintf("status %q has no transitions for %s", status, docType)}
	}

	next, ok := events[event]
	if !ok {
		return Decision{Reason: fmt.Sprintf("event %q not allowed in status %q for %s", event, status, docType)}
	}

	return Decision{Allowed: true, Next: next}
}

// Initialize starts the workflow for a newly classified document: it sets
// the four classification fields, moves the state to CAPTURED, and appends
// the single capture history entry (no prior status, event ON_CAPTURE).
//
// Calling Initialize on an already-initialized state is a contract violation
// and returns ErrAlreadyInitialized without modifying the state.
func Initialize(
	s *State,
	docType DocType,
	source SourceSystem,
	channel CaptureChannel,
	method string,
	actor string,
) (HistoryEntry, error) {
	if s.Initialized() {
		return HistoryEntry{}, fmt.Errorf("%w: status %q", ErrAlreadyInitialized, s.Status)
	}

	now := time.Now().UTC()
	entry := HistoryEntry{
		Timestamp: now,
		ToStatus:  StatusCaptured,
		Event:     EventOnCapture,
		Actor:     actor,
	}

	s.DocType = docType
	s.SourceSystem = source
	s.CaptureChannel = channel
	s.ClassificationMethod = method
	s.Status = StatusCaptured
	s.History = append(s.History, entry)
	s.UpdatedAt = now

	return entry, nil
}

// Advance applies event to the state using its own document type and current
// status. On success it mutates the status, appends a history entry, bumps
// UpdatedAt, and returns (entry, true).
//
// On a denied transition the state is left untouched and the returned entry
// records the blocked attempt: ToStatus equals FromStatus and Reason carries
// the denial reason. Persisting blocked-attempt entries is caller policy;
// a denied transition is never fatal.
func Advance(s *State, event Event, metadata map[string]string, actor string) (HistoryEntry, bool) {
	decision := CanTransition(s.DocType, s.Status, event)

	now := time.Now().UTC()
	entry := HistoryEntry{
		Timestamp:  now,
		FromStatus: s.Status,
		Event:      event,
		Actor:      actor,
		Metadata:   metadata,
	}

	if !decision.Allowed {
		entry.ToStatus = s.Status
		entry.Reason = decision.Reason
		return entry, false
	}

	entry.ToStatus = decision.Next
	s.Status = decision.Next
	s.History = append(s.History, entry)
	s.UpdatedAt = now

	return entry, true
}

// Reclassify explicitly replaces the document type and restarts the workflow
// at CAPTURED with a RECLASSIFIED history entry. Classification is never
// replaced silently; reason records why and actor records who.
func Reclassify(s *State, newType DocType, actor, reason string) (HistoryEntry, error) {
	if !s.Initialized() {
		return HistoryEntry{}, ErrNotInitialized
	}

	if _, ok := transitions[newType]; !ok {
		return HistoryEntry{}, fmt.Errorf("%w: %q", ErrUnknownDocType, newType)
	}

	now := time.Now().UTC()
	entry := HistoryEntry{
		Timestamp:  now,
		FromStatus: s.Status,
		ToStatus:   StatusCaptured,
		Event:      EventReclassified,
		Actor:      actor,
		Reason:     reason,
		Metadata: map[string]string{
			"previous_type": string(s.DocType),
			"new_type":      string(newType),
		},
	}

	s.DocType = newType
	s.Status = StatusCaptured
	s.History = append(s.History, entry)
	s.UpdatedAt = now

	return entry, nil
}
