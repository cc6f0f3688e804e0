package gate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for requestsTotal.
const (
	outcomeForwarded     = "forwarded"
	outcomeRedirectLogin = "redirect_login"
	outcomeRedirectError = "redirect_error"
)

var (
	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatehouse_login_attempts_total",
		Help: "Login form submissions by outcome.",
	}, []string{"outcome"})

	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatehouse_requests_total",
		Help: "Protected requests by disposition.",
	}, []string{"outcome"})
)
