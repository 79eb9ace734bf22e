package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	analysisStartedTotal         atomic.Uint64
	analysisCompletedLocalTotal  atomic.Uint64
	analysisCompletedHostedTotal atomic.Uint64
	analysisFailedTotal          atomic.Uint64
	analysisFallbackTotal        atomic.Uint64

	pdfExtractTotal       atomic.Uint64
	pdfExtractFailedTotal atomic.Uint64

	analysisDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() {
	analysisStartedTotal.Add(1)
}

// IncAnalysisCompleted increments the completed counter for the given source.
func IncAnalysisCompleted(source string) {
	switch source {
	case "local":
		analysisCompletedLocalTotal.Add(1)
	default:
		analysisCompletedHostedTotal.Add(1)
	}
}

// IncAnalysisFailed increments the failed counter.
func IncAnalysisFailed() {
	analysisFailedTotal.Add(1)
}

// IncAnalysisFallback counts provider attempts that were demoted and fell
// through to the next provider.
func IncAnalysisFallback() {
	analysisFallbackTotal.Add(1)
}

// IncPDFExtract increments the PDF extraction counter.
func IncPDFExtract() {
	pdfExtractTotal.Add(1)
}

// IncPDFExtractFailed increments the failed PDF extraction counter.
func IncPDFExtractFailed() {
	pdfExtractFailedTotal.Add(1)
}

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "jd_analysis_started_total", "Total JD analyses started", analysisStartedTotal.Load())
	writeCounter(&buf, "jd_analysis_completed_local_total", "Total JD analyses completed by the local provider", analysisCompletedLocalTotal.Load())
	writeCounter(&buf, "jd_analysis_completed_hosted_total", "Total JD analyses completed by the hosted provider", analysisCompletedHostedTotal.Load())
	writeCounter(&buf, "jd_analysis_failed_total", "Total JD analyses failed", analysisFailedTotal.Load())
	writeCounter(&buf, "jd_analysis_fallback_total", "Total provider attempts demoted to fallback", analysisFallbackTotal.Load())
	writeCounter(&buf, "pdf_extract_total", "Total PDF extractions attempted", pdfExtractTotal.Load())
	writeCounter(&buf, "pdf_extract_failed_total", "Total PDF extractions failed", pdfExtractFailedTotal.Load())
	writeHistogram(&buf, "jd_analysis_duration_ms", "JD analysis duration in milliseconds", analysisDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
