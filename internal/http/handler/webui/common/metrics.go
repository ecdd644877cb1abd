package common

import "github.com/prometheus/client_golang/prometheus"

// Submission outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeToggled  = "toggled"
)

// Submissions counts posted forms by schema id and outcome.
var Submissions = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "batman",
	Name:      "form_submissions_total",
	Help:      "Dashboard form round-trips by form and outcome.",
}, []string{"form", "outcome"})

func init() {
	prometheus.MustRegister(Submissions)
}
