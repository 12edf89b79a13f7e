package deptrequest

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "deptrequest",
		Subsystem: "decide",
		Name:      "requests_total",
		Help:      "Total number of decide calls broken down by requested decision and outcome.",
	}, []string{"decision", "result"})

	auditFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "deptrequest",
		Subsystem: "audit",
		Name:      "append_failures_total",
		Help:      "Total number of audit log appends that failed, by action.",
	}, []string{"action"})
)

func recordDecision(decision Status, err error) {
	decisionsTotal.WithLabelValues(string(decision), decisionResult(err)).Inc()
}

func recordAuditFailure(action string) {
	auditFailuresTotal.WithLabelValues(action).Inc()
}

func decisionResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrUnauthenticated):
		return "denied"
	case errors.Is(err, ErrRequestNotFound):
		return "not_found"
	default:
		return "error"
	}
}
