package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mockmate",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "path", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mockmate",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	httpInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mockmate",
		Name:      "http_in_flight_requests",
		Help:      "Current number of in-flight HTTP requests",
	})

	interviewsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mockmate",
		Name:      "interviews_started_total",
		Help:      "Total number of interview sessions created",
	})

	interviewsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mockmate",
		Name:      "interviews_finished_total",
		Help:      "Total number of interview sessions finished, by terminal status",
	}, []string{"status"})

	feedbackGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mockmate",
		Name:      "feedback_reports_generated_total",
		Help:      "Total number of feedback reports generated",
	})
)

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// Middleware records request metrics with Prometheus labels.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			httpInFlight.Inc()
			defer httpInFlight.Dec()

			next.ServeHTTP(rec, r)

			labels := prometheus.Labels{
				"method": r.Method,
				"path":   r.URL.Path,
				"status": strconv.Itoa(rec.status),
			}
			httpRequests.With(labels).Inc()
			httpLatency.With(labels).Observe(time.Since(start).Seconds())
		})
	}
}

// InterviewStarted counts a newly created session.
func InterviewStarted() { interviewsStarted.Inc() }

// InterviewFinished counts a session reaching a terminal status.
func InterviewFinished(status string) { interviewsCompleted.WithLabelValues(status).Inc() }

// FeedbackGenerated counts a generated report.
func FeedbackGenerated() { feedbackGenerated.Inc() }

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
