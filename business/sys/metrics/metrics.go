// Package metrics constructs the metrics the application will track.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Requests counts the requests handled by the api, by method and status.
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "node",
		Subsystem: "web",
		Name:      "requests_total",
		Help:      "Total number of requests handled.",
	}, []string{"method", "status"})

	// Latency tracks how long the api takes to handle requests.
	Latency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "node",
		Subsystem: "web",
		Name:      "request_duration_seconds",
		Help:      "Duration of handled requests.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"method"})

	// Errors counts the requests that failed.
	Errors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "node",
		Subsystem: "web",
		Name:      "errors_total",
		Help:      "Total number of requests that returned an error.",
	})

	// Panics counts the requests that panicked.
	Panics = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "node",
		Subsystem: "web",
		Name:      "panics_total",
		Help:      "Total number of requests that panicked.",
	})

	// BlocksMined counts the blocks this node sealed.
	BlocksMined = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "node",
		Subsystem: "chain",
		Name:      "blocks_mined_total",
		Help:      "Total number of blocks mined by this node.",
	})

	// ChainReplacements counts candidate chains by outcome.
	ChainReplacements = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "node",
		Subsystem: "chain",
		Name:      "replacements_total",
		Help:      "Candidate chains received, by outcome.",
	}, []string{"outcome"})

	// ChainHeight tracks the height of the tip of the chain.
	ChainHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "node",
		Subsystem: "chain",
		Name:      "height",
		Help:      "Height of the tip of the chain.",
	})

	// PoolSize tracks the number of pending transactions.
	PoolSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "node",
		Subsystem: "mempool",
		Name:      "transactions",
		Help:      "Number of pending transactions.",
	})
)

// Node records the measurements reported by the node state.
type Node struct{}

// BlockMined counts a block sealed by this node.
func (Node) BlockMined(height uint64) {
	BlocksMined.Inc()
	ChainHeight.Set(float64(height))
}

// ChainReplaced counts a candidate chain by its outcome.
func (Node) ChainReplaced(outcome string, height uint64) {
	ChainReplacements.WithLabelValues(outcome).Inc()
	ChainHeight.Set(float64(height))
}

// PoolChanged tracks the number of pending transactions.
func (Node) PoolChanged(size int) {
	PoolSize.Set(float64(size))
}
