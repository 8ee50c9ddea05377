// Package metrics collects Prometheus counters for the sanitizer pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector aggregates the pipeline counters.
type Collector struct {
	sanitized      *prometheus.CounterVec
	embedRejected  *prometheus.CounterVec
	markersAdded   prometheus.Counter
	lookupFailures prometheus.Counter
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		sanitized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sanitizer_links_rewritten_total",
			Help: "Links rewritten to proxy domains, by platform.",
		}, []string{"platform"}),
		embedRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sanitizer_embed_rejected_total",
			Help: "Replies deleted because the proxy embed never materialized or was a not-found placeholder.",
		}, []string{"platform"}),
		markersAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sanitizer_markers_added_total",
			Help: "Marker reactions placed on candidate messages in manual modes.",
		}),
		lookupFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sanitizer_author_lookup_failures_total",
			Help: "Best-effort author lookups that degraded to a generic caption.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sanitizer_policy_cache_hits_total",
			Help: "Guild policy lookups served from the cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sanitizer_policy_cache_misses_total",
			Help: "Guild policy lookups that fell through to the durable store.",
		}),
	}

	reg.MustRegister(
		c.sanitized,
		c.embedRejected,
		c.markersAdded,
		c.lookupFailures,
		c.cacheHits,
		c.cacheMisses,
	)
	return c
}

// RecordSanitized counts a successfully posted rewrite.
func (c *Collector) RecordSanitized(platform string) {
	c.sanitized.WithLabelValues(platform).Inc()
}

// RecordEmbedRejected counts a reply removed by the response guardian.
func (c *Collector) RecordEmbedRejected(platform string) {
	c.embedRejected.WithLabelValues(platform).Inc()
}

// RecordMarkerAdded counts a marker reaction placement.
func (c *Collector) RecordMarkerAdded() {
	c.markersAdded.Inc()
}

// RecordLookupFailure counts a degraded author lookup.
func (c *Collector) RecordLookupFailure() {
	c.lookupFailures.Inc()
}

// RecordCacheHit counts a policy served from memory.
func (c *Collector) RecordCacheHit() {
	c.cacheHits.Inc()
}

// RecordCacheMiss counts a policy loaded from the store.
func (c *Collector) RecordCacheMiss() {
	c.cacheMisses.Inc()
}
