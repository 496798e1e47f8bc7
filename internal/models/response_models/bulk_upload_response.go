package response_models

import "wtsplinks/internal/ingest"

// BulkUploadResponse is rendered after a batch. DismissAfterMs is set only for clean
// batches; a batch with failures keeps its error list on screen.
type BulkUploadResponse struct {
	Total          int              `json:"total"`
	Succeeded      int              `json:"succeeded"`
	Failed         int              `json:"failed"`
	Failures       []ingest.Failure `json:"failures"`
	Clean          bool             `json:"clean"`
	DismissAfterMs int64            `json:"dismiss_after_ms,omitempty"`
}

func NewBulkUploadResponse(res ingest.Result) BulkUploadResponse {
	out := BulkUploadResponse{
		Total:     res.Total,
		Succeeded: res.Succeeded,
		Failed:    res.Failed,
		Failures:  res.Failures,
		Clean:     res.Clean(),
	}
	if out.Failures == nil {
		out.Failures = []ingest.Failure{}
	}
	if out.Clean {
		out.DismissAfterMs = ingest.DismissAfter.Milliseconds()
	}
	return out
}
