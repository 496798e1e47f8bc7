package ingest

import (
	"context"

	"go.uber.org/zap"
)

// Inserter is the storage the runner writes to, one record per call.
type Inserter interface {
	InsertRecord(ctx context.Context, table string, record Record) error
}

// ProgressFunc observes the tally after every phase change and every record.
type ProgressFunc func(Progress)

type Option func(*Runner)

// WithTable overrides the destination table.
func WithTable(table string) Option {
	return func(r *Runner) { r.table = table }
}

// WithProgress registers an observer for incremental progress.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Runner) { r.onProgress = fn }
}

// WithLogger sets the logger used for per-record outcomes.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// Runner decodes, validates and writes one batch at a time. Writes are strictly sequential
// so the tally is deterministic with respect to input order.
type Runner struct {
	store      Inserter
	table      string
	logger     *zap.Logger
	onProgress ProgressFunc
}

func NewRunner(store Inserter, opts ...Option) *Runner {
	r := &Runner{
		store:  store,
		table:  GroupsTable,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ingest decodes in and writes the resulting records. It returns an error only when the
// input is missing or cannot be decoded at all; per-record problems land in the Result.
func (r *Runner) Ingest(ctx context.Context, in Input) (Result, error) {
	r.report(Progress{Phase: PhaseDecoding})

	records, err := r.decode(in)
	if err != nil {
		r.report(Progress{Phase: PhaseDone})
		return Result{Progress: Progress{Phase: PhaseDone}}, err
	}

	return r.Run(ctx, records), nil
}

func (r *Runner) decode(in Input) ([]Record, error) {
	switch {
	case in.hasFile():
		return DecodeFile(in.FileName, in.File)
	case in.hasText():
		return DecodeText(in.Text, in.Delimiter)
	default:
		return nil, ErrMissingInput
	}
}

// Run validates and writes records in order. A failed record never stops the batch.
func (r *Runner) Run(ctx context.Context, records []Record) Result {
	res := Result{
		Progress: Progress{Phase: PhaseWriting, Total: len(records)},
		Failures: []Failure{},
	}
	r.report(res.Progress)

	for i, rec := range records {
		row := i + 1

		if reason := Validate(rec); reason != "" {
			res.fail(row, rec, reason)
			r.logger.Debug("record rejected", zap.Int("row", row), zap.String("reason", reason))
			r.report(res.Progress)
			continue
		}

		if err := r.store.InsertRecord(ctx, r.table, rec.Columns()); err != nil {
			res.fail(row, rec, err.Error())
			r.logger.Warn("record write failed", zap.Int("row", row), zap.Error(err))
		} else {
			res.Succeeded++
		}
		r.report(res.Progress)
	}

	res.Phase = PhaseDone
	r.report(res.Progress)
	return res
}

func (res *Result) fail(row int, rec Record, reason string) {
	res.Failed++
	res.Failures = append(res.Failures, Failure{Row: row, Record: rec, Reason: reason})
}

func (r *Runner) report(p Progress) {
	if r.onProgress != nil {
		r.onProgress(p)
	}
}
