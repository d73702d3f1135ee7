package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketanly_analyses_total",
		Help: "Analysis runs by outcome.",
	}, []string{"status"})

	parseDegradedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketanly_parse_degraded_total",
		Help: "Responses whose structured block was present but not decodable.",
	})

	chatTurnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketanly_chat_turns_total",
		Help: "Chat question/answer exchanges.",
	})

	chatFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketanly_chat_fallbacks_total",
		Help: "Chat turns answered with the fixed fallback message.",
	})
)
