// Package documents implements the document domain for DocSync. It provides
// types, data access, and business logic for document intake, classification
// at capture, workflow advancement, and queue membership derived from
// workflow status.
package documents

import (
	"time"

	"github.com/google/uuid"

	"github.com/cdillerud/docsync/classify"
	"github.com/cdillerud/docsync/workflow"
)

// Document is a registered document with its blob reference and workflow
// state. Revision guards concurrent workflow writes: every workflow update
// is a compare-and-swap on (id, revision).
type Document struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count"`
	StorageKey  string    `json:"storage_key"`
	Revision    int       `json:"revision"`

	workflow.State

	UploadedAt time.Time `json:"uploaded_at"`
}

// Queue returns the work queue this document currently belongs to.
func (d *Document) Queue() workflow.Queue {
	return workflow.QueueFor(d.DocType, d.Status)
}

// CreateCommand carries the data needed to register a new document. Data
// holds the raw file bytes; Hints carries the externally sourced
// classification signals collected at intake. PageCount is optional and may
// be extracted by the caller via pdfcpu.
type CreateCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	Hints       classify.Hints
	Actor       string
	PageCount   *int
}

// AdvanceCommand submits one workflow event to a document.
type AdvanceCommand struct {
	Event    workflow.Event    `json:"event"`
	Actor    string            `json:"actor"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// QueueCount reports the number of documents of one type in one queue.
type QueueCount struct {
	Queue   workflow.Queue   `json:"queue"`
	DocType workflow.DocType `json:"doc_type"`
	Count   int              `json:"count"`
}
