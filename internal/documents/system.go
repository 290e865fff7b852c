package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/cdillerud/docsync/pkg/pagination"
	"github.com/cdillerud/docsync/workflow"
)

// System defines the public contract for document domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	Advance(ctx context.Context, id uuid.UUID, cmd AdvanceCommand) (*Document, error)

	Queues(ctx context.Context) ([]QueueCount, error)
	ListQueue(
		ctx context.Context,
		queue workflow.Queue,
		page pagination.PageRequest,
	) (*pagination.PageResult[Document], error)
	ListExceptions(
		ctx context.Context,
		docType workflow.DocType,
		page pagination.PageRequest,
	) (*pagination.PageResult[Document], error)

	Delete(ctx context.Context, id uuid.UUID) error

	// Save persists workflow state computed outside this system (AI
	// classification, reclassification, migration placement) with a
	// revision check.
	Save(ctx context.Context, doc *Document) (*Document, error)
}
