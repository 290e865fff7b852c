package migration

import (
	"fmt"
	"time"

	"github.com/cdillerud/docsync/workflow"
)

// Actor recorded on synthetic backfill history entries, letting downstream
// reporting distinguish backfilled history from live transitions.
const Actor = "migration_job"

// Initialize starts the workflow for a migrated document and places it at
// the status resolved from its legacy flags. The state receives the ordinary
// capture entry from workflow.Initialize plus exactly one synthetic placement
// entry with no from-status, marking that the document did not transition
// there but was placed. Its reason embeds legacySystem, the name of the
// system the record came from. When the resolved status is CAPTURED itself
// no placement entry is appended.
//
// The returned entry is the synthetic placement entry (or the capture entry
// when no placement was needed).
func Initialize(
	s *workflow.State,
	docType workflow.DocType,
	legacySystem string,
	flags LegacyFlags,
	at time.Time,
) (workflow.HistoryEntry, error) {
	status, reason := Resolve(docType, flags)

	captureEntry, err := workflow.Initialize(
		s,
		docType,
		workflow.SourceMigration,
		workflow.ChannelMigration,
		"migration",
		Actor,
	)
	if err != nil {
		return workflow.HistoryEntry{}, fmt.Errorf("initialize migrated workflow: %w", err)
	}

	if at.IsZero() {
		at = time.Now().UTC()
	}

	if status == workflow.StatusCaptured {
		return captureEntry, nil
	}

	entry := workflow.HistoryEntry{
		Timestamp: at,
		ToStatus:  status,
		Event:     EventFor(status),
		Actor:     Actor,
		Reason:    fmt.Sprintf("migrated from %s: %s", legacySystem, reason),
	}

	s.Status = status
	s.History = append(s.History, entry)
	s.UpdatedAt = at

	return entry, nil
}

// EventFor names the synthetic event used when placing a migrated document
// directly at status. Placement entries bypass the transition table, so the
// event is descriptive rather than an ordinary engine verb.
func EventFor(status workflow.Status) workflow.Event {
	return workflow.Event("MIGRATED_AS_" + string(status))
}
