// Package backfill implements the bulk migration domain for DocSync. It
// replays legacy records through the same classification chain and workflow
// initialization as live intake, placing each migrated document at the
// status its legacy flags resolve to.
package backfill

import (
	"context"

	"github.com/google/uuid"

	"github.com/cdillerud/docsync/classify"
	"github.com/cdillerud/docsync/migration"
)

// LegacyRecord is one exported row from a legacy document system.
type LegacyRecord struct {
	ExternalID   string                `json:"external_id"`
	LegacySystem string                `json:"legacy_system"`
	Filename     string                `json:"filename"`
	ContentType  string                `json:"content_type,omitempty"`
	StorageKey   string                `json:"storage_key,omitempty"`
	Hints        classify.Hints        `json:"hints"`
	Flags        migration.LegacyFlags `json:"flags"`
}

// Result reports the outcome of migrating a single legacy record. On
// success DocumentID and Status are populated; on failure Error describes
// the problem and the rest of the batch is unaffected.
type Result struct {
	ExternalID string     `json:"external_id"`
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
	Status     string     `json:"status,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// System defines the public contract for backfill operations.
type System interface {
	Handler() *Handler

	// Run migrates a batch of legacy records with bounded concurrency.
	// Individual record failures are captured per result; Run only returns
	// an error when the batch as a whole cannot proceed.
	Run(ctx context.Context, records []LegacyRecord) ([]Result, error)
}
