package api

import (
	"github.com/cdillerud/docsync/classify"
	"github.com/cdillerud/docsync/internal/backfill"
	"github.com/cdillerud/docsync/internal/classifications"
	"github.com/cdillerud/docsync/internal/documents"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents       documents.System
	Classifications classifications.System
	Backfill        backfill.System
}

// NewDomain creates all domain systems from the API runtime. The same
// classification mapping tables feed both live intake and backfill so the
// two paths can never disagree on a hint.
func NewDomain(runtime *Runtime) *Domain {
	classifier := classify.DefaultConfig()

	docsSystem := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		classifier,
		runtime.Logger,
		runtime.Pagination,
		runtime.Workflow.RecordBlockedAttempts,
	)

	classificationsSystem := classifications.New(
		runtime.Database.Connection(),
		runtime.Agent,
		docsSystem,
		runtime.Logger,
		runtime.Pagination,
		runtime.Workflow.AIThreshold,
	)

	backfillSystem := backfill.New(
		runtime.Database.Connection(),
		classifier,
		runtime.Logger,
	)

	return &Domain{
		Documents:       docsSystem,
		Classifications: classificationsSystem,
		Backfill:        backfillSystem,
	}
}
