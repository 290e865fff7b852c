package classifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/cdillerud/docsync/pkg/pagination"
)

// System defines the public contract for classification domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Record], error)

	Find(ctx context.Context, id uuid.UUID) (*Record, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Record, error)

	// Classify runs the AI fallback for a document whose deterministic
	// classification produced OTHER. The consultation is always recorded,
	// accepted or not.
	Classify(ctx context.Context, documentID uuid.UUID, cmd ClassifyCommand) (*Record, error)

	// Reclassify explicitly replaces a document's type and restarts its
	// workflow at CAPTURED.
	Reclassify(ctx context.Context, documentID uuid.UUID, cmd ReclassifyCommand) (*Record, error)
}
