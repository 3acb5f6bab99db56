package deadline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	autoAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dcportal_auto_accepted_complaints_total",
		Help: "Complaints auto-accepted after the student decision window elapsed.",
	})
	autoAbsent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dcportal_auto_absent_meetings_total",
		Help: "Meetings auto-marked absent after the attendance window elapsed.",
	})
	sweepErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dcportal_sweep_errors_total",
		Help: "Errors encountered while sweeping for due transitions.",
	})
	applyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dcportal_transition_apply_failures_total",
		Help: "Transitions dropped after exhausting apply retries.",
	})
)
