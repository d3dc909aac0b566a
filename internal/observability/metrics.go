package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// PostsListed counts post-listing requests by whether a filter was applied.
	PostsListed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_posts_listed_total",
		Help: "Total number of post listing requests",
	}, []string{"filtered"})

	// TokensIssued counts JWTs issued by flow (register, login).
	TokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_tokens_issued_total",
		Help: "Total number of JWTs issued",
	}, []string{"flow"})
)
