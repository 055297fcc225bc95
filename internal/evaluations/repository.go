package evaluations

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/JaimeStill/assessor/internal/document"
	"github.com/JaimeStill/assessor/internal/workflow"
	"github.com/JaimeStill/assessor/pkg/pagination"
	"github.com/JaimeStill/assessor/pkg/repository"
	"github.com/JaimeStill/assessor/pkg/storage"
)

const storagePrefix = "evaluations"

type repo struct {
	db         *sql.DB
	storage    storage.System
	runtime    *workflow.Runtime
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an evaluation repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	runtime *workflow.Runtime,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		runtime:    runtime,
		logger:     logger.With("system", "evaluations"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Evaluation], error) {
	page.Normalize(r.pagination)

	countQ := repository.Builder.Select("COUNT(*)").From(table)
	countQ = filters.Apply(applySearch(countQ, page.Search))

	total, err := repository.Count(ctx, r.db, countQ)
	if err != nil {
		return nil, fmt.Errorf("count evaluations: %w", err)
	}

	pageQ := repository.Builder.Select(columns...).From(table)
	pageQ = filters.Apply(applySearch(pageQ, page.Search))
	pageQ = repository.OrderBy(pageQ, page.Sort, sortColumns, defaultSort)
	pageQ = repository.Page(pageQ, page)

	evals, err := repository.QueryMany(ctx, r.db, pageQ, scanEvaluation)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}

	result := pagination.NewPageResult(evals, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Evaluation, error) {
	q := repository.Builder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id})

	e, err := repository.QueryOne(ctx, r.db, q, scanEvaluation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *repo) Evaluate(ctx context.Context, cmd EvaluateCommand) (*Evaluation, error) {
	doc, err := document.Normalize(cmd.Data, cmd.Filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	id := uuid.New()
	key := storage.Key(storagePrefix, id.String(), cmd.Filename)

	if err := r.storage.Put(ctx, key, cmd.Data, cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload source document: %w", err)
	}

	result, err := workflow.Execute(ctx, r.runtime, doc)
	if err != nil {
		r.compensate(key)
		return nil, err
	}

	raw, err := json.Marshal(result)
	if err != nil {
		r.compensate(key)
		return nil, fmt.Errorf("encode result: %w", err)
	}

	var (
		score *int
		grade *string
	)
	if fs := result.FinalScore; fs != nil {
		score, grade = &fs.Value, &fs.Grade
	}

	q := repository.Builder.
		Insert(table).
		Columns(
			"id", "filename", "content_type", "document_type", "size_bytes",
			"storage_key", "final_score", "grade", "error_count", "result", "evaluated_at",
		).
		Values(
			id, doc.Filename, cmd.ContentType, string(doc.Type), int64(len(cmd.Data)),
			key, score, grade, len(result.Errors), string(raw), result.CompletedAt,
		).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Evaluation, error) {
		return repository.QueryOne(ctx, tx, q, scanEvaluation)
	})
	if err != nil {
		r.compensate(key)
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.InfoContext(
		ctx, "evaluation created",
		"id", e.ID,
		"filename", e.Filename,
		"final_score", score,
		"errors", e.ErrorCount,
	)
	return &e, nil
}

// compensate removes an uploaded blob after a later step failed. It runs on
// a fresh context so a canceled request still cleans up.
func (r *repo) compensate(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := r.storage.Remove(ctx, key); err != nil {
		r.logger.Warn("compensating blob delete failed", "key", key, "error", err)
	}
}

func (r *repo) Source(ctx context.Context, id uuid.UUID) (*Evaluation, io.ReadCloser, error) {
	e, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	obj, err := r.storage.Open(ctx, e.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("download source document: %w", err)
	}
	return e, obj, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	e, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			repository.Builder.Delete(table).Where(sq.Eq{"id": id}),
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Remove(ctx, e.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", e.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("evaluation deleted", "id", id)
	return nil
}
