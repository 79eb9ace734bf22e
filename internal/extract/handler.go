package extract

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jd-backend/internal/shared/metrics"
	"jd-backend/internal/shared/server/respond"
	"jd-backend/internal/shared/telemetry"
)

const errorCodeExtraction = "PDF_EXTRACTION"

// Handler wires the PDF extraction endpoint.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches extraction routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/parse-pdf", h.parse)
}

type parseResponse struct {
	Success bool `json:"success"`
	Extraction
}

func (h *Handler) parse(c *gin.Context) {
	// Reject oversized uploads before buffering the whole body. The extra
	// slack lets multipart framing through so the typed size check below
	// still owns the caller-facing message.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes+64<<10)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		metrics.IncPDFExtractFailed()
		respond.Error(c, http.StatusBadRequest, errorCodeExtraction, "No file provided", nil)
		return
	}
	if fileHeader.Size > MaxUploadBytes {
		metrics.IncPDFExtractFailed()
		respond.Error(c, http.StatusBadRequest, errorCodeExtraction, ErrTooLarge.Error(), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		metrics.IncPDFExtractFailed()
		respond.Error(c, http.StatusBadRequest, errorCodeExtraction, ErrCorrupted.Error(), nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		metrics.IncPDFExtractFailed()
		respond.Error(c, http.StatusBadRequest, errorCodeExtraction, ErrCorrupted.Error(), nil)
		return
	}

	ex, err := FromBytes(data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		metrics.IncPDFExtractFailed()
		respond.Error(c, http.StatusBadRequest, errorCodeExtraction, userMessage(err), nil)
		return
	}

	metrics.IncPDFExtract()
	telemetry.Info("extract.completed", map[string]any{
		"filename":   fileHeader.Filename,
		"pages":      ex.Pages,
		"characters": ex.Characters,
		"warning":    ex.Warning,
		"request_id": c.GetString("requestId"),
	})
	respond.OK(c, parseResponse{Success: true, Extraction: ex})
}

// userMessage flattens the typed extraction errors to their caller-facing
// text, hiding parser internals from wrapped corruption errors.
func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrWrongMimeType):
		return ErrWrongMimeType.Error()
	case errors.Is(err, ErrEmptyFile):
		return ErrEmptyFile.Error()
	case errors.Is(err, ErrTooLarge):
		return ErrTooLarge.Error()
	case errors.Is(err, ErrPasswordProtected):
		return ErrPasswordProtected.Error()
	case errors.Is(err, ErrScannedNoText):
		return ErrScannedNoText.Error()
	default:
		return ErrCorrupted.Error()
	}
}
