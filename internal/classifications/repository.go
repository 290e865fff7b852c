package classifications

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/cdillerud/docsync/classify"
	"github.com/cdillerud/docsync/internal/documents"
	"github.com/cdillerud/docsync/pkg/pagination"
	"github.com/cdillerud/docsync/pkg/query"
	"github.com/cdillerud/docsync/pkg/repository"
	"github.com/cdillerud/docsync/workflow"
)

const recordColumns = `id, document_id, doc_type, method, confidence, model, reason, decided_by, decided_at`

type repo struct {
	db         *sql.DB
	agent      gaconfig.AgentConfig
	docs       documents.System
	logger     *slog.Logger
	pagination pagination.Config
	threshold  float64
}

// New creates a classification repository implementing the System interface.
// Threshold gates AI acceptance; values outside (0,1] fall back to the
// default.
func New(
	db *sql.DB,
	agent gaconfig.AgentConfig,
	docs documents.System,
	logger *slog.Logger,
	pagination pagination.Config,
	threshold float64,
) System {
	if threshold <= 0 || threshold > 1 {
		threshold = classify.DefaultThreshold
	}

	return &repo{
		db:         db,
		agent:      agent,
		docs:       docs,
		logger:     logger.With("system", "classifications"),
		pagination: pagination,
		threshold:  threshold,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Record], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Method", "Reason")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count classification records: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query classification records: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Record, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rec, nil
}

func (r *repo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Record, error) {
	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("DocumentID", documentID)

	q, args := qb.Build()

	records, err := repository.QueryMany(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query document classifications: %w", err)
	}
	return records, nil
}

func (r *repo) Classify(ctx context.Context, documentID uuid.UUID, cmd ClassifyCommand) (*Record, error) {
	doc, err := r.docs.Find(ctx, documentID)
	if err != nil {
		return nil, err
	}

	// The fallback only runs when the deterministic chain produced OTHER
	// and the AI has not been consulted yet; this keeps the audit block
	// present iff the AI path was actually taken.
	if doc.ClassificationMethod != classify.MethodDefault ||
		doc.DocType != workflow.DocTypeOther ||
		doc.AIClassification != nil {
		return nil, fmt.Errorf(
			"%w: doc_type %s, method %s",
			ErrNotEligible, doc.DocType, doc.ClassificationMethod,
		)
	}

	result := classifyWithAgent(ctx, r.agent, buildContext(doc.Filename, cmd))
	accepted := classify.ApplyAIResult(&doc.State, result, r.threshold)

	if _, err := r.docs.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save ai classification: %w", err)
	}

	reason := fmt.Sprintf("ai proposed %s at %.2f (threshold %.2f)", result.ProposedType, result.Confidence, r.threshold)
	if result.Error != "" {
		reason = fmt.Sprintf("ai call failed: %s", result.Error)
	}

	rec, err := r.insert(ctx, Record{
		DocumentID: documentID,
		DocType:    doc.DocType,
		Method:     doc.ClassificationMethod,
		Confidence: &result.Confidence,
		Model:      &result.Model,
		Reason:     reason,
		DecidedBy:  "ai_fallback",
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info(
		"ai classification recorded",
		"document_id", documentID,
		"proposed", result.ProposedType,
		"confidence", result.Confidence,
		"accepted", accepted,
	)
	return rec, nil
}

func (r *repo) Reclassify(ctx context.Context, documentID uuid.UUID, cmd ReclassifyCommand) (*Record, error) {
	if cmd.DecidedBy == "" {
		return nil, fmt.Errorf("%w: decided_by required", ErrInvalidCommand)
	}

	doc, err := r.docs.Find(ctx, documentID)
	if err != nil {
		return nil, err
	}

	entry, err := workflow.Reclassify(&doc.State, cmd.DocType, cmd.DecidedBy, cmd.Reason)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCommand, err)
	}

	doc.ClassificationMethod = classify.MethodManual
	doc.AIClassification = nil

	if _, err := r.docs.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save reclassification: %w", err)
	}

	rec, err := r.insert(ctx, Record{
		DocumentID: documentID,
		DocType:    cmd.DocType,
		Method:     classify.MethodManual,
		Reason:     cmd.Reason,
		DecidedBy:  cmd.DecidedBy,
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info(
		"document reclassified",
		"document_id", documentID,
		"from", entry.Metadata["previous_type"],
		"to", cmd.DocType,
		"by", cmd.DecidedBy,
	)
	return rec, nil
}

func (r *repo) insert(ctx context.Context, rec Record) (*Record, error) {
	q := `
		INSERT INTO classification_records(
			document_id, doc_type, method, confidence, model, reason, decided_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + recordColumns

	args := []any{
		rec.DocumentID,
		rec.DocType,
		rec.Method,
		rec.Confidence,
		rec.Model,
		rec.Reason,
		rec.DecidedBy,
	}

	inserted, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		return repository.QueryOne(ctx, tx, q, args, scanRecord)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &inserted, nil
}
