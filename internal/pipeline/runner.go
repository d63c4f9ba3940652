// Package pipeline sequences the per-file upload: read, infer schema, ensure
// the pool table exists, push chunks with fixed pacing. Files are processed
// one at a time; a failure marks that file Failed and the batch continues.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/time/rate"

	"celonis-push/internal/config"
	"celonis-push/internal/model"
	"celonis-push/internal/reader"
	"celonis-push/internal/schema"
)

// Platform is the slice of the Celonis client the pipeline depends on
type Platform interface {
	EnsureJob(ctx context.Context, name string) (string, error)
	EnsureTable(ctx context.Context, jobID, transformationName, statement string) error
	CreatePushJob(ctx context.Context, targetName string) (string, error)
	PushChunk(ctx context.Context, pushJobID string, columns []string, chunk model.Chunk) error
	SealPushJob(ctx context.Context, pushJobID string) error
}

// FileResult is the terminal outcome for one source file
type FileResult struct {
	Path  string
	State model.FileState
	Rows  int
	Err   error
}

// Runner executes the pipeline for every resolved source file
type Runner struct {
	cfg      *config.Config
	platform Platform
	logger   *slog.Logger
	limiter  *rate.Limiter
	jobID    string
}

// New creates a Runner. Chunk uploads are paced by a limiter built from the
// configured pause: the first upload acquires the burst token immediately,
// every later one waits out the fixed interval, unconditionally.
func New(cfg *config.Config, platform Platform, logger *slog.Logger) *Runner {
	limit := rate.Inf
	if cfg.ChunkPause > 0 {
		limit = rate.Every(cfg.ChunkPause)
	}

	return &Runner{
		cfg:      cfg,
		platform: platform,
		logger:   logger,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Run resolves the configured path and processes each file independently.
// The returned error covers only path resolution; per-file outcomes are in
// the results.
func (r *Runner) Run(ctx context.Context) ([]FileResult, error) {
	files, err := reader.Resolve(r.cfg.Path)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, 0, len(files))
	for _, path := range files {
		result := r.processFile(ctx, path)
		results = append(results, result)
		if result.Err != nil && ctx.Err() != nil {
			break
		}
	}

	done := 0
	for _, result := range results {
		if result.State == model.StateDone {
			done++
		}
	}
	r.logger.Info("run finished", "files", len(results), "done", done, "failed", len(results)-done)

	return results, nil
}

func (r *Runner) processFile(ctx context.Context, path string) FileResult {
	log := r.logger.With("file", filepath.Base(path))
	result := FileResult{Path: path, State: model.StatePending}
	log.Info("processing file", "state", result.State)

	fail := func(phase string, err error) FileResult {
		result.State = model.StateFailed
		result.Err = err
		log.Error("file failed", "state", result.State, "phase", phase, "error", err)
		return result
	}

	table, err := reader.Read(path)
	if err != nil {
		return fail("read", err)
	}
	result.State = model.StateRead
	result.Rows = table.NumRows()
	log.Info("file read", "state", result.State, "table", table.Name, "format", table.Format,
		"columns", len(table.Columns), "rows", table.NumRows())

	columns := schema.Infer(table)
	statement := schema.CreateTableSQL(table.Name, columns)
	result.State = model.StateSchemaInferred
	log.Info("schema inferred", "state", result.State, "statement", statement)

	jobID, err := r.ensureJob(ctx)
	if err != nil {
		return fail("ensure_job", err)
	}

	if err := r.platform.EnsureTable(ctx, jobID, r.cfg.TransformationName, statement); err != nil {
		return fail("ensure_table", err)
	}
	result.State = model.StateTableEnsured
	log.Info("table ensured", "state", result.State, "table", table.Name)

	result.State = model.StateUploading
	chunks := table.Split(r.cfg.ChunkSize)
	log.Info("uploading", "state", result.State, "chunks", len(chunks), "chunk_size", r.cfg.ChunkSize)

	if err := r.upload(ctx, log, table, columns, chunks); err != nil {
		return fail("upload", err)
	}

	result.State = model.StateDone
	log.Info("file done", "state", result.State, "rows", result.Rows, "chunks", len(chunks))
	return result
}

// upload pushes every chunk in index order within one push session. A chunk
// failure aborts the remaining chunks of this file.
func (r *Runner) upload(ctx context.Context, log *slog.Logger, table *model.Table, columns []model.Column, chunks []model.Chunk) error {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}

	pushJobID, err := r.platform.CreatePushJob(ctx, table.Name)
	if err != nil {
		return err
	}

	for _, chunk := range chunks {
		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := r.platform.PushChunk(ctx, pushJobID, names, chunk); err != nil {
			return fmt.Errorf("chunk %d/%d: %w", chunk.Index+1, len(chunks), err)
		}
		log.Info("chunk uploaded", "chunk", chunk.Index+1, "chunks", len(chunks), "rows", len(chunk.Rows))
	}

	return r.platform.SealPushJob(ctx, pushJobID)
}

// ensureJob resolves the data job once per run; the lookup is idempotent on
// the platform side so caching the ID is only an optimization.
func (r *Runner) ensureJob(ctx context.Context) (string, error) {
	if r.jobID != "" {
		return r.jobID, nil
	}

	jobID, err := r.platform.EnsureJob(ctx, r.cfg.JobName)
	if err != nil {
		return "", err
	}
	r.jobID = jobID
	return jobID, nil
}
