package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"wtsplinks/internal/ingest"
	"wtsplinks/pkg/metrics"
)

const (
	SourceFile = "file"
	SourceText = "text"
)

type BulkUploadServiceInterface interface {
	Upload(ctx context.Context, in ingest.Input) (ingest.Result, error)
}

type BulkUploadService struct {
	store  ingest.Inserter
	logger *zap.Logger
}

func NewBulkUploadService(store ingest.Inserter, logger *zap.Logger) BulkUploadServiceInterface {
	return &BulkUploadService{
		store:  store,
		logger: logger.Named("bulk_upload"),
	}
}

// Upload runs one batch to completion. The batch is detached from ctx cancellation so a
// client that disconnects mid-batch does not leave it half written.
func (s *BulkUploadService) Upload(ctx context.Context, in ingest.Input) (ingest.Result, error) {
	source := inputSource(in)
	logger := s.logger.With(zap.String("source", source))
	if in.FileName != "" {
		logger = logger.With(zap.String("file", in.FileName))
	}

	runner := ingest.NewRunner(s.store, ingest.WithLogger(logger))

	start := time.Now()
	res, err := runner.Ingest(context.WithoutCancel(ctx), in)
	elapsed := time.Since(start)

	if err != nil {
		metrics.RecordBatch("rejected", source, 0, 0, elapsed.Seconds())
		logger.Info("bulk upload rejected", zap.Error(err))
		return res, err
	}

	outcome := "clean"
	if !res.Clean() {
		outcome = "with_errors"
	}
	metrics.RecordBatch(outcome, source, res.Succeeded, res.Failed, elapsed.Seconds())

	logger.Info("bulk upload finished",
		zap.Int("total", res.Total),
		zap.Int("succeeded", res.Succeeded),
		zap.Int("failed", res.Failed),
		zap.Duration("elapsed", elapsed))
	return res, nil
}

func inputSource(in ingest.Input) string {
	if in.File != nil {
		return SourceFile
	}
	return SourceText
}
