package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wtsplinks/internal/api/controllers"
	"wtsplinks/internal/config"
	"wtsplinks/internal/ingest"
	"wtsplinks/internal/models/response_models"
	"wtsplinks/pkg/utils"
)

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func bulkRouter(svc *MockBulkUploadService, maxBytes int64) *gin.Engine {
	r := gin.New()
	ctrl := controllers.NewBulkUploadController(svc, config.IngestConfig{MaxUploadBytes: maxBytes})
	r.POST("/admin/groups/bulk", ctrl.Upload)
	return r
}

func multipartBody(t *testing.T, fields map[string]string, fileName, fileContent string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(fileContent))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func cleanResult(n int) ingest.Result {
	return ingest.Result{
		Progress: ingest.Progress{Phase: ingest.PhaseDone, Total: n, Succeeded: n},
		Failures: []ingest.Failure{},
	}
}

func TestBulkUpload_PastedText(t *testing.T) {
	svc := new(MockBulkUploadService)
	text := "name,description,link,category_id\nA,a,https://x/a,c1\n"
	svc.On("Upload", mock.Anything, text, "", ';').Return(cleanResult(1), nil)

	form := url.Values{"text": {text}, "delimiter": {";"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/groups/bulk", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	bulkRouter(svc, 1<<20).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decodeEnvelope(t, w)
	var out response_models.BulkUploadResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.True(t, out.Clean)
	assert.Equal(t, int64(2000), out.DismissAfterMs)
	assert.Equal(t, 1, out.Succeeded)
}

func TestBulkUpload_FileUpload(t *testing.T) {
	svc := new(MockBulkUploadService)
	svc.On("Upload", mock.Anything, "", "groups.csv", ',').Return(cleanResult(1), nil)

	content := "name,description,link,category_id\nA,a,https://x/a,c1\n"
	body, ct := multipartBody(t, nil, "groups.csv", content)
	req := httptest.NewRequest(http.MethodPost, "/admin/groups/bulk", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	bulkRouter(svc, 1<<20).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, content, svc.fileBody)
}

func TestBulkUpload_PartialFailureKeepsFailureList(t *testing.T) {
	svc := new(MockBulkUploadService)
	res := ingest.Result{
		Progress: ingest.Progress{Phase: ingest.PhaseDone, Total: 2, Succeeded: 1, Failed: 1},
		Failures: []ingest.Failure{{Row: 2, Record: ingest.Record{"name": ""}, Reason: ingest.ReasonMissingFields}},
	}
	svc.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(res, nil)

	body, ct := multipartBody(t, map[string]string{"text": "x"}, "", "")
	req := httptest.NewRequest(http.MethodPost, "/admin/groups/bulk", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	bulkRouter(svc, 1<<20).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Uploaded 1 of 2 groups", env.Message)

	var out response_models.BulkUploadResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.False(t, out.Clean)
	assert.Zero(t, out.DismissAfterMs)
	require.Len(t, out.Failures, 1)
	assert.Equal(t, 2, out.Failures[0].Row)
	assert.Equal(t, ingest.ReasonMissingFields, out.Failures[0].Reason)
}

func TestBulkUpload_NothingWritten(t *testing.T) {
	svc := new(MockBulkUploadService)
	res := ingest.Result{
		Progress: ingest.Progress{Phase: ingest.PhaseDone, Total: 1, Failed: 1},
		Failures: []ingest.Failure{{Row: 1, Reason: "duplicate key"}},
	}
	svc.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(res, nil)

	body, ct := multipartBody(t, map[string]string{"text": "x"}, "", "")
	req := httptest.NewRequest(http.MethodPost, "/admin/groups/bulk", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	bulkRouter(svc, 1<<20).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "error", env.Status)
	assert.NotEmpty(t, env.Data)
}

func TestBulkUpload_ServiceErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"missing input", ingest.ErrMissingInput, http.StatusBadRequest},
		{"no data rows", ingest.ErrNoDataRows, http.StatusUnprocessableEntity},
		{"unreadable file", ingest.ErrUnreadableFile, http.StatusUnprocessableEntity},
		{"wrapped no data rows", fmt.Errorf("decode upload: %w", ingest.ErrNoDataRows), http.StatusUnprocessableEntity},
		{"database", utils.ErrDatabaseError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockBulkUploadService)
			svc.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(ingest.Result{}, tc.err)

			body, ct := multipartBody(t, nil, "", "")
			req := httptest.NewRequest(http.MethodPost, "/admin/groups/bulk", body)
			req.Header.Set("Content-Type", ct)
			w := httptest.NewRecorder()
			bulkRouter(svc, 1<<20).ServeHTTP(w, req)

			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestBulkUpload_BadDelimiter(t *testing.T) {
	svc := new(MockBulkUploadService)

	body, ct := multipartBody(t, map[string]string{"text": "a", "delimiter": ";;"}, "", "")
	req := httptest.NewRequest(http.MethodPost, "/admin/groups/bulk", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	bulkRouter(svc, 1<<20).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBulkUpload_TabDelimiter(t *testing.T) {
	svc := new(MockBulkUploadService)
	svc.On("Upload", mock.Anything, "a", "", '\t').Return(cleanResult(0), nil)

	body, ct := multipartBody(t, map[string]string{"text": "a", "delimiter": "tab"}, "", "")
	req := httptest.NewRequest(http.MethodPost, "/admin/groups/bulk", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	bulkRouter(svc, 1<<20).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestBulkUpload_TooLarge(t *testing.T) {
	svc := new(MockBulkUploadService)

	body, ct := multipartBody(t, nil, "big.csv", strings.Repeat("x", 4096))
	req := httptest.NewRequest(http.MethodPost, "/admin/groups/bulk", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	bulkRouter(svc, 512).ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
