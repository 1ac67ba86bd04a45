package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	projectsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "governance_projects_created_total",
		Help: "Total number of AI projects registered",
	})

	assessmentsRunTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "governance_assessments_run_total",
		Help: "Total number of risk assessments run, by resulting risk level",
	}, []string{"risk_level"})

	auditEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "governance_audit_events_total",
		Help: "Total number of audit events recorded",
	})

	assessmentDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "governance_assessment_duration_seconds",
		Help:    "Time spent computing and persisting one risk assessment",
		Buckets: prometheus.DefBuckets,
	})
)

// IncProjectsCreated increments the projects created counter.
func IncProjectsCreated() {
	projectsCreatedTotal.Inc()
}

// IncAssessmentsRun increments the assessments counter for a risk level.
func IncAssessmentsRun(riskLevel string) {
	assessmentsRunTotal.WithLabelValues(riskLevel).Inc()
}

// IncAuditEvents increments the audit events counter.
func IncAuditEvents() {
	auditEventsTotal.Inc()
}

// ObserveAssessmentDuration records one assessment duration in seconds.
func ObserveAssessmentDuration(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	assessmentDurationSeconds.Observe(seconds)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
