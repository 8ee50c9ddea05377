package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSanitized("TikTok")
	c.RecordSanitized("TikTok")
	c.RecordSanitized("Twitter")
	c.RecordEmbedRejected("Instagram")
	c.RecordMarkerAdded()
	c.RecordLookupFailure()
	c.RecordCacheHit()
	c.RecordCacheMiss()

	expected := `
# HELP sanitizer_links_rewritten_total Links rewritten to proxy domains, by platform.
# TYPE sanitizer_links_rewritten_total counter
sanitizer_links_rewritten_total{platform="TikTok"} 2
sanitizer_links_rewritten_total{platform="Twitter"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "sanitizer_links_rewritten_total"); err != nil {
		t.Fatalf("unexpected rewrite counter state: %v", err)
	}

	if got := testutil.ToFloat64(c.embedRejected.WithLabelValues("Instagram")); got != 1 {
		t.Fatalf("embedRejected = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.markersAdded); got != 1 {
		t.Fatalf("markersAdded = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.cacheHits); got != 1 {
		t.Fatalf("cacheHits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.cacheMisses); got != 1 {
		t.Fatalf("cacheMisses = %v, want 1", got)
	}
}

func TestCollectorRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	defer func() {
		if recover() == nil {
			t.Fatal("expected duplicate registration to panic")
		}
	}()
	NewCollector(reg)
}
