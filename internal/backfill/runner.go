package backfill

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cdillerud/docsync/classify"
	"github.com/cdillerud/docsync/internal/documents"
	"github.com/cdillerud/docsync/migration"
	"github.com/cdillerud/docsync/pkg/repository"
)

// maxWorkers bounds batch concurrency; legacy exports run to tens of
// thousands of rows and the limiting factor is database round-trips.
const maxWorkers = 8

type runner struct {
	db         *sql.DB
	classifier *classify.Config
	logger     *slog.Logger
}

// New creates a backfill runner implementing the System interface.
func New(db *sql.DB, classifier *classify.Config, logger *slog.Logger) System {
	return &runner{
		db:         db,
		classifier: classifier,
		logger:     logger.With("system", "backfill"),
	}
}

func (r *runner) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *runner) Run(ctx context.Context, records []LegacyRecord) ([]Result, error) {
	results := make([]Result, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for i, record := range records {
		g.Go(func() error {
			results[i] = r.migrate(gctx, record)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run backfill batch: %w", err)
	}

	migrated := 0
	for _, res := range results {
		if res.Error == "" {
			migrated++
		}
	}

	r.logger.Info(
		"backfill batch complete",
		"total", len(records),
		"migrated", migrated,
		"failed", len(records)-migrated,
	)
	return results, nil
}

// migrate replays one legacy record: deterministic classification from its
// hints, workflow placement from its status flags, and a document insert.
// Failures are captured in the result, never propagated.
func (r *runner) migrate(ctx context.Context, record LegacyRecord) Result {
	result := Result{ExternalID: record.ExternalID}

	record.Hints.Migration = true
	classification := classify.Resolve(r.classifier, record.Hints)

	doc := documents.Document{
		ID:          uuid.New(),
		Filename:    record.Filename,
		ContentType: record.ContentType,
		StorageKey:  record.StorageKey,
	}

	if _, err := migration.Initialize(
		&doc.State,
		classification.DocType,
		record.LegacySystem,
		record.Flags,
		time.Now().UTC(),
	); err != nil {
		result.Error = fmt.Sprintf("initialize workflow: %v", err)
		return result
	}

	if err := r.insert(ctx, &doc); err != nil {
		result.Error = fmt.Sprintf("insert document: %v", err)
		return result
	}

	result.DocumentID = &doc.ID
	result.Status = string(doc.Status)
	return result
}

func (r *runner) insert(ctx context.Context, doc *documents.Document) error {
	history, err := json.Marshal(doc.History)
	if err != nil {
		return fmt.Errorf("marshal workflow history: %w", err)
	}

	q := `
		INSERT INTO documents(
			id, filename, content_type, size_bytes, page_count, storage_key,
			doc_type, source_system, capture_channel, workflow_status,
			workflow_history, classification_method
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	args := []any{
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

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(ctx, tx, q, args...); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	return err
}
