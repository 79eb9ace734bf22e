package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRenderIncludesCounters(t *testing.T) {
	IncAnalysisStarted()
	IncAnalysisCompleted("local")
	IncAnalysisCompleted("hosted")
	IncAnalysisFallback()
	IncPDFExtract()
	ObserveAnalysisDurationMs(1234)

	out := Render()
	for _, name := range []string{
		"jd_analysis_started_total",
		"jd_analysis_completed_local_total",
		"jd_analysis_completed_hosted_total",
		"jd_analysis_failed_total",
		"jd_analysis_fallback_total",
		"pdf_extract_total",
		"pdf_extract_failed_total",
		"jd_analysis_duration_ms_bucket",
		"jd_analysis_duration_ms_sum",
		"jd_analysis_duration_ms_count",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output:\n%s", name, out)
		}
	}
	if !strings.Contains(out, `le="+Inf"`) {
		t.Fatalf("expected +Inf bucket in output:\n%s", out)
	}
}

func TestHandlerServesTextFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", Handler())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected text/plain content type, got %q", ct)
	}
	if !strings.Contains(resp.Body.String(), "# TYPE jd_analysis_started_total counter") {
		t.Fatalf("expected counter type line, got:\n%s", resp.Body.String())
	}
}
