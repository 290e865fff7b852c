package documents

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cdillerud/docsync/classify"
	"github.com/cdillerud/docsync/pkg/pagination"
	"github.com/cdillerud/docsync/pkg/query"
	"github.com/cdillerud/docsync/pkg/repository"
	"github.com/cdillerud/docsync/pkg/storage"
	"github.com/cdillerud/docsync/workflow"
)

const documentColumns = `id, filename, content_type, size_bytes, page_count, storage_key,
		  doc_type, source_system, capture_channel, workflow_status, workflow_history,
		  classification_method, ai_classification, revision, uploaded_at, updated_at`

type repo struct {
	db         *sql.DB
	storage    storage.System
	classifier *classify.Config
	logger     *slog.Logger
	pagination pagination.Config

	// recordBlocked controls whether denied transition attempts are
	// persisted to the workflow history. The blocked-attempt entry is
	// informational; persisting it is deployment policy.
	recordBlocked bool
}

// New creates a document repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	classifier *classify.Config,
	logger *slog.Logger,
	pagination pagination.Config,
	recordBlocked bool,
) System {
	return &repo{
		db:            db,
		storage:       store,
		classifier:    classifier,
		logger:        logger.With("system", "documents"),
		pagination:    pagination,
		recordBlocked: recordBlocked,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Document], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename", "DocType")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	return r.queryPage(ctx, qb, page)
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Document, error) {
	result := classify.Resolve(r.classifier, cmd.Hints)

	doc := &Document{
		ID:          uuid.New(),
		Filename:    cmd.Filename,
		ContentType: cmd.ContentType,
		SizeBytes:   int64(len(cmd.Data)),
		PageCount:   cmd.PageCount,
	}
	doc.StorageKey = buildStorageKey(doc.ID, sanitizeFilename(cmd.Filename))

	if _, err := workflow.Initialize(
		&doc.State,
		result.DocType,
		classify.SourceFor(cmd.Hints),
		classify.ChannelFor(r.classifier, cmd.Hints.CaptureSource),
		result.Method,
		cmd.Actor,
	); err != nil {
		return nil, fmt.Errorf("initialize workflow: %w", err)
	}

	if err := r.storage.Upload(ctx, doc.StorageKey, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload document blob: %w", err)
	}

	history, err := marshalHistory(doc.History)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO documents(
			id, filename, content_type, size_bytes, page_count, storage_key,
			doc_type, source_system, capture_channel, workflow_status,
			workflow_history, classification_method
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + documentColumns

	insertArgs := []any{
		doc.ID,
		doc.Filename,
		doc.ContentType,
		doc.SizeBytes,
		doc.PageCount,
		doc.StorageKey,
		doc.DocType,
		doc.SourceSystem,
		doc.CaptureChannel,
		doc.Status,
		history,
		doc.ClassificationMethod,
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanDocument)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, doc.StorageKey); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", doc.StorageKey, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"document created",
		"id", d.ID,
		"filename", d.Filename,
		"doc_type", d.DocType,
		"method", d.ClassificationMethod,
	)
	return &d, nil
}

func (r *repo) Advance(ctx context.Context, id uuid.UUID, cmd AdvanceCommand) (*Document, error) {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	entry, ok := workflow.Advance(&doc.State, cmd.Event, cmd.Metadata, cmd.Actor)
	if !ok {
		if r.recordBlocked {
			doc.History = append(doc.History, entry)
			if _, saveErr := r.Save(ctx, doc); saveErr != nil {
				r.logger.Warn(
					"persisting blocked attempt failed",
					"id", id,
					"event", cmd.Event,
					"error", saveErr,
				)
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, entry.Reason)
	}

	saved, err := r.Save(ctx, doc)
	if err != nil {
		return nil, err
	}

	r.logger.Info(
		"workflow advanced",
		"id", id,
		"event", cmd.Event,
		"from", entry.FromStatus,
		"to", entry.ToStatus,
		"actor", cmd.Actor,
	)
	return saved, nil
}

// Save writes the document's workflow fields with a revision check. A zero
// row count means another writer advanced the document first; the caller
// gets ErrRevisionConflict and should re-read and retry.
func (r *repo) Save(ctx context.Context, doc *Document) (*Document, error) {
	history, err := marshalHistory(doc.History)
	if err != nil {
		return nil, err
	}

	ai, err := marshalAI(doc.AIClassification)
	if err != nil {
		return nil, err
	}

	q := `
		UPDATE documents
		SET doc_type = $1,
			source_system = $2,
			capture_channel = $3,
			workflow_status = $4,
			workflow_history = $5,
			classification_method = $6,
			ai_classification = $7,
			revision = revision + 1,
			updated_at = NOW()
		WHERE id = $8 AND revision = $9
		RETURNING ` + documentColumns

	args := []any{
		doc.DocType,
		doc.SourceSystem,
		doc.CaptureChannel,
		doc.Status,
		history,
		doc.ClassificationMethod,
		ai,
		doc.ID,
		doc.Revision,
	}

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDocument)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: document %s revision %d", ErrRevisionConflict, doc.ID, doc.Revision)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &d, nil
}

func (r *repo) Queues(ctx context.Context) ([]QueueCount, error) {
	q := `
		SELECT doc_type, workflow_status, COUNT(*)
		FROM documents
		GROUP BY doc_type, workflow_status
		ORDER BY doc_type, workflow_status`

	type statusCount struct {
		docType workflow.DocType
		status  workflow.Status
		count   int
	}

	rows, err := repository.QueryMany(ctx, r.db, q, nil, func(s repository.Scanner) (statusCount, error) {
		var sc statusCount
		err := s.Scan(&sc.docType, &sc.status, &sc.count)
		return sc, err
	})
	if err != nil {
		return nil, fmt.Errorf("count queue membership: %w", err)
	}

	totals := make(map[workflow.Queue]map[workflow.DocType]int)
	for _, sc := range rows {
		queue := workflow.QueueFor(sc.docType, sc.status)
		if queue == workflow.QueueNone {
			continue
		}
		if totals[queue] == nil {
			totals[queue] = make(map[workflow.DocType]int)
		}
		totals[queue][sc.docType] += sc.count
	}

	var counts []QueueCount
	for _, queue := range workflow.Queues() {
		for _, docType := range workflow.DocTypes() {
			if n := totals[queue][docType]; n > 0 {
				counts = append(counts, QueueCount{Queue: queue, DocType: docType, Count: n})
			}
		}
	}

	return counts, nil
}

func (r *repo) ListQueue(
	ctx context.Context,
	queue workflow.Queue,
	page pagination.PageRequest,
) (*pagination.PageResult[Document], error) {
	statuses := workflow.StatusesForQueue(queue)
	if len(statuses) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQueue, queue)
	}

	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, query.SortField{Field: "UpdatedAt"}).
		WhereIn("Status", toAny(statuses))

	return r.queryPage(ctx, qb, page)
}

func (r *repo) ListExceptions(
	ctx context.Context,
	docType workflow.DocType,
	page pagination.PageRequest,
) (*pagination.PageResult[Document], error) {
	statuses := workflow.ExceptionStatuses(docType)
	if len(statuses) == 0 {
		result := pagination.NewPageResult([]Document{}, 0, page.Page, page.PageSize)
		return &result, nil
	}

	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, query.SortField{Field: "UpdatedAt"}).
		WhereEquals("DocType", string(docType)).
		WhereIn("Status", toAny(statuses))

	return r.queryPage(ctx, qb, page)
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM documents WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, doc.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", doc.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("document deleted", "id", id)
	return nil
}

func (r *repo) queryPage(
	ctx context.Context,
	qb *query.Builder,
	page pagination.PageRequest,
) (*pagination.PageResult[Document], error) {
	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	docs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func toAny(statuses []workflow.Status) []any {
	values := make([]any, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return values
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("documents/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == "" {
		name = "document"
	}
	return url.PathEscape(name)
}
