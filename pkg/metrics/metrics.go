// Package metrics exposes the boundary layer's operational counters and
// gauges through Prometheus client_golang, each Registry on its own
// private prometheus.Registry rather than the global default one.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every metric the boundary layer publishes. Each field
// is created once via promauto against a private registerer so tests
// can instantiate independent registries without colliding on the
// global default one.
type Registry struct {
	reg *prometheus.Registry

	CacheTier1Hits        prometheus.Counter
	CacheTier2Hits        prometheus.Counter
	CacheTier3Generations prometheus.Counter
	CacheTier2Enabled     prometheus.Gauge

	DeltaLogAppends    prometheus.Counter
	DeltaLogVerifyOK   prometheus.Counter
	DeltaLogVerifyFail prometheus.Counter

	AntiCheatViolations *prometheus.CounterVec
	AntiCheatTrustScore *prometheus.GaugeVec

	GenerationDuration prometheus.Histogram
}

// New creates a fresh Registry backed by its own prometheus.Registry,
// so multiple Registries never collide on metric names.
func New() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Registry{
		reg: reg,

		CacheTier1Hits: factory.NewCounter(prometheus.CounterOpts{
			Name: "worldcore_cache_tier1_hits_total",
			Help: "Total Tier 1 (in-memory LRU) cache hits.",
		}),
		CacheTier2Hits: factory.NewCounter(prometheus.CounterOpts{
			Name: "worldcore_cache_tier2_hits_total",
			Help: "Total Tier 2 (LevelDB) cache hits.",
		}),
		CacheTier3Generations: factory.NewCounter(prometheus.CounterOpts{
			Name: "worldcore_cache_tier3_generations_total",
			Help: "Total floor generations performed by the Tier 3 worker pool.",
		}),
		CacheTier2Enabled: factory.NewGauge(prometheus.GaugeOpts{
			Name: "worldcore_cache_tier2_enabled",
			Help: "1 if Tier 2 persistence is enabled, 0 if degraded.",
		}),
		DeltaLogAppends: factory.NewCounter(prometheus.CounterOpts{
			Name: "worldcore_deltalog_appends_total",
			Help: "Total deltas recorded across all floors.",
		}),
		DeltaLogVerifyOK: factory.NewCounter(prometheus.CounterOpts{
			Name: "worldcore_deltalog_verify_ok_total",
			Help: "Total successful delta log integrity verifications.",
		}),
		DeltaLogVerifyFail: factory.NewCounter(prometheus.CounterOpts{
			Name: "worldcore_deltalog_verify_fail_total",
			Help: "Total failed delta log integrity verifications.",
		}),
		AntiCheatViolations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "worldcore_anticheat_violations_total",
			Help: "Total anti-cheat violations detected, by violation type.",
		}, []string{"violation_type"}),
		AntiCheatTrustScore: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worldcore_anticheat_trust_score",
			Help: "Current trust score per session.",
		}, []string{"session_id"}),
		GenerationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "worldcore_generation_duration_seconds",
			Help:    "Wall time spent assembling a floor in FloorAssembler.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Handler returns the HTTP handler serving this registry in the
// Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Reset returns a fresh Registry with every counter and gauge back at
// zero. Prometheus counters cannot be decremented in place, so
// reset_metrics() is implemented by swapping in a replacement Registry
// rather than mutating this one.
func (r *Registry) Reset() *Registry {
	return New()
}
