package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	generationStartedTotal   atomic.Uint64
	generationCompletedTotal atomic.Uint64
	generationFailedTotal    atomic.Uint64
	generationFallbackTotal  atomic.Uint64

	linkedinImportSucceededTotal atomic.Uint64
	linkedinImportFailedTotal    atomic.Uint64

	generationDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 20000, 60000})
)

// IncGenerationStarted counts a generation that passed validation.
func IncGenerationStarted() { generationStartedTotal.Add(1) }

// IncGenerationCompleted counts a generation that returned content.
func IncGenerationCompleted() { generationCompletedTotal.Add(1) }

// IncGenerationFailed counts a generation whose upstream call failed.
func IncGenerationFailed() { generationFailedTotal.Add(1) }

// IncGenerationFallback counts a response that carried no usable text.
func IncGenerationFallback() { generationFallbackTotal.Add(1) }

// IncLinkedInImport counts a finished LinkedIn import.
func IncLinkedInImport(ok bool) {
	if ok {
		linkedinImportSucceededTotal.Add(1)
		return
	}
	linkedinImportFailedTotal.Add(1)
}

// ObserveGenerationDuration records the upstream round trip of a generation.
func ObserveGenerationDuration(d time.Duration) {
	ms := float64(d.Microseconds()) / 1000.0
	if ms < 0 {
		ms = 0
	}
	generationDuration.Observe(ms)
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
	writeCounter(&buf, "jobpost_generation_started_total", "Total generations started", generationStartedTotal.Load())
	writeCounter(&buf, "jobpost_generation_completed_total", "Total generations completed", generationCompletedTotal.Load())
	writeCounter(&buf, "jobpost_generation_failed_total", "Total generations failed upstream", generationFailedTotal.Load())
	writeCounter(&buf, "jobpost_generation_fallback_total", "Total generations answered with fallback content", generationFallbackTotal.Load())
	writeCounter(&buf, "jobpost_linkedin_import_succeeded_total", "Total LinkedIn imports stored", linkedinImportSucceededTotal.Load())
	writeCounter(&buf, "jobpost_linkedin_import_failed_total", "Total LinkedIn imports failed", linkedinImportFailedTotal.Load())
	writeHistogram(&buf, "jobpost_generation_duration_ms", "Generation round trip in milliseconds", generationDuration.Snapshot())
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

// Observe records value in the first bucket that holds it; Snapshot
// consumers accumulate.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
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
	fmt.Fprintf(buf, "# HELP %s %s\n# TYPE %s counter\n%s %d\n", name, help, name, name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n# TYPE %s histogram\n", name, help, name)
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
