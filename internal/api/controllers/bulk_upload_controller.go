package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"wtsplinks/internal/config"
	"wtsplinks/internal/ingest"
	"wtsplinks/internal/models/response_models"
	"wtsplinks/internal/services"
	"wtsplinks/pkg/utils"
)

type BulkUploadController struct {
	bulkService services.BulkUploadServiceInterface
	maxBytes    int64
}

func NewBulkUploadController(bulkService services.BulkUploadServiceInterface, cfg config.IngestConfig) *BulkUploadController {
	return &BulkUploadController{
		bulkService: bulkService,
		maxBytes:    cfg.MaxUploadBytes,
	}
}

// Upload godoc
// @Summary Bulk upload groups
// @Description Upload a spreadsheet or paste CSV text. Valid rows are written one by one; invalid or rejected rows are reported with their row number.
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "Spreadsheet (.xlsx) or CSV file"
// @Param text formData string false "Pasted CSV with a header row"
// @Param delimiter formData string false "Delimiter for pasted text" default(,)
// @Success 200 {object} utils.APIResponse{data=response_models.BulkUploadResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 413 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/groups/bulk [post]
func (b *BulkUploadController) Upload(c *gin.Context) {
	if b.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, b.maxBytes)
	}

	var in ingest.Input

	// The file is read first so an oversized body is reported before the text field is parsed.
	header, err := c.FormFile("file")
	switch {
	case err == nil:
		f, err := header.Open()
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Could not read uploaded file")
			return
		}
		defer f.Close()
		in.File = f
		in.FileName = header.Filename
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondError(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("Upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		utils.RespondError(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	in.Text = c.PostForm("text")
	delimiter, ok := parseDelimiter(c.PostForm("delimiter"))
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Delimiter must be a single character other than a quote or newline")
		return
	}
	in.Delimiter = delimiter

	res, err := b.bulkService.Upload(c.Request.Context(), in)
	if err != nil {
		respondIngestError(c, err)
		return
	}

	out := response_models.NewBulkUploadResponse(res)
	switch {
	case out.Clean:
		utils.RespondSuccess(c, out, fmt.Sprintf("Uploaded %d groups", out.Succeeded))
	case out.Succeeded == 0:
		utils.RespondErrorWithData(c, http.StatusUnprocessableEntity, out, "No groups were uploaded")
	default:
		utils.RespondSuccess(c, out, fmt.Sprintf("Uploaded %d of %d groups", out.Succeeded, out.Total))
	}
}

// respondIngestError maps the batch-level ingestion failures; anything else is a service error.
func respondIngestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ingest.ErrMissingInput):
		utils.RespondError(c, http.StatusBadRequest, "Please upload a file or paste valid CSV data")
	case errors.Is(err, ingest.ErrNoDataRows):
		utils.RespondError(c, http.StatusUnprocessableEntity, "Input has no data rows")
	case errors.Is(err, ingest.ErrUnreadableFile):
		utils.RespondError(c, http.StatusUnprocessableEntity, "Uploaded file is not a readable spreadsheet or CSV")
	default:
		utils.HandleServiceError(c, err)
	}
}

// parseDelimiter accepts a single character, or "tab" and `\t` for tab separated text.
func parseDelimiter(raw string) (rune, bool) {
	switch raw {
	case "":
		return ',', true
	case "tab", `\t`:
		return '\t', true
	}

	r, size := utf8.DecodeRuneInString(raw)
	if size != len(raw) || r == utf8.RuneError || r == '"' || strings.ContainsRune("\r\n", r) {
		return 0, false
	}
	return r, true
}
