package extract

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupExtractRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewHandler().RegisterRoutes(r.Group("/api/v1"))
	return r
}

func multipartPDF(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func postParsePDF(t *testing.T, router *gin.Engine, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse-pdf", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload.Error
}

func TestParsePDFNoFile(t *testing.T) {
	router := setupExtractRouter(t)

	body, contentType := func() (*bytes.Buffer, string) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		if err := mw.WriteField("note", "no file here"); err != nil {
			t.Fatalf("write field: %v", err)
		}
		if err := mw.Close(); err != nil {
			t.Fatalf("close writer: %v", err)
		}
		return &buf, mw.FormDataContentType()
	}()

	resp := postParsePDF(t, router, body, contentType)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if got := decodeError(t, resp); got != "No file provided" {
		t.Fatalf("unexpected error message: %q", got)
	}
}

func TestParsePDFWrongMime(t *testing.T) {
	router := setupExtractRouter(t)
	body, contentType := multipartPDF(t, "resume.docx", "application/msword", []byte("not a pdf"))

	resp := postParsePDF(t, router, body, contentType)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if got := decodeError(t, resp); got != ErrWrongMimeType.Error() {
		t.Fatalf("unexpected error message: %q", got)
	}
}

func TestParsePDFCorruptBytes(t *testing.T) {
	router := setupExtractRouter(t)
	body, contentType := multipartPDF(t, "resume.pdf", "application/pdf", []byte("%PDF-1.4 garbage"))

	resp := postParsePDF(t, router, body, contentType)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if got := decodeError(t, resp); got != ErrCorrupted.Error() {
		t.Fatalf("unexpected error message: %q", got)
	}
}

func TestParsePDFOversized(t *testing.T) {
	router := setupExtractRouter(t)
	body, contentType := multipartPDF(t, "big.pdf", "application/pdf", make([]byte, MaxUploadBytes+1))

	resp := postParsePDF(t, router, body, contentType)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}
