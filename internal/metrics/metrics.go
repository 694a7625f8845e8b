// Package metrics exposes Prometheus counters for the sign-up form.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goliatone/go-signup/pkg/signup"
)

// Metrics holds the sign-up counters. It implements signup.Observer.
type Metrics struct {
	Submissions    *prometheus.CounterVec
	ContactChanges *prometheus.CounterVec
	SessionsStored prometheus.Counter
}

var _ signup.Observer = (*Metrics)(nil)

// New creates the counters and registers them with reg. A nil registerer
// uses the default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_submissions_total",
			Help: "Sign-up form submissions by outcome",
		}, []string{"outcome"}),
		ContactChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_contact_number_changes_total",
			Help: "Contact-number entries added or removed",
		}, []string{"op"}),
		SessionsStored: factory.NewCounter(prometheus.CounterOpts{
			Name: "signup_sessions_stored_total",
			Help: "Sessions stored after a successful sign-up",
		}),
	}
}

// Submitted records a submission outcome.
func (m *Metrics) Submitted(outcome signup.Outcome) {
	m.Submissions.WithLabelValues(outcome.String()).Inc()
}

// ContactNumbersChanged records an append or remove.
func (m *Metrics) ContactNumbersChanged(op string) {
	m.ContactChanges.WithLabelValues(op).Inc()
}

// SessionStored records a session written by the refresher.
func (m *Metrics) SessionStored() {
	m.SessionsStored.Inc()
}
