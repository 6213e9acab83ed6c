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
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Business metrics
	patientsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "patients_registered_total",
			Help: "Total number of patients registered",
		},
	)

	appointmentsBooked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appointments_booked_total",
			Help: "Total number of appointments booked",
		},
		[]string{"specialty"},
	)

	checkinsTriaged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "followup_checkins_total",
			Help: "Total number of follow-up check-ins by triage level",
		},
		[]string{"level"},
	)

	symptomReportsTriaged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "symptom_reports_total",
			Help: "Total number of symptom reports by urgency level",
		},
		[]string{"level"},
	)

	feedbackReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_received_total",
			Help: "Total number of feedback entries received",
		},
		[]string{"touchpoint"},
	)

	paymentsSimulated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_simulated_total",
			Help: "Total number of simulated payments",
		},
		[]string{"method"},
	)

	remindersSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminders_sent_total",
			Help: "Total number of preparation reminders dispatched",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware creates HTTP metrics middleware
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// normalizePath normalizes URL paths for metrics to avoid cardinality explosion
func normalizePath(path string) string {
	if len(path) > 100 {
		return "/..."
	}
	return path
}

// --- Business metric helpers ---

// RecordPatientRegistered records a patient registration
func RecordPatientRegistered() {
	patientsRegistered.Inc()
}

// RecordAppointmentBooked records an appointment booking
func RecordAppointmentBooked(specialty string) {
	appointmentsBooked.WithLabelValues(specialty).Inc()
}

// RecordCheckin records a follow-up check-in outcome
func RecordCheckin(level string) {
	checkinsTriaged.WithLabelValues(level).Inc()
}

// RecordSymptomReport records a symptom triage outcome
func RecordSymptomReport(level string) {
	symptomReportsTriaged.WithLabelValues(level).Inc()
}

// RecordFeedback records a feedback submission
func RecordFeedback(touchpoint string) {
	feedbackReceived.WithLabelValues(touchpoint).Inc()
}

// RecordPaymentSimulated records a simulated payment
func RecordPaymentSimulated(method string) {
	paymentsSimulated.WithLabelValues(method).Inc()
}

// RecordReminderSent records a dispatched preparation reminder
func RecordReminderSent() {
	remindersSent.Inc()
}
