package prom

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/modelviewer/pkg/observability"
)

// counter sums the counter samples of a metric family whose labels include want.
func counter(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metrics
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestHooksRecordEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := New(reg)
	ctx := context.Background()

	h.OnGenerateComplete(ctx, "a.uml", 120, time.Millisecond, nil)
	h.OnGenerateComplete(ctx, "gone.uml", 0, time.Millisecond, nil)
	h.OnGenerateComplete(ctx, "bad.uml", 0, time.Millisecond, errors.New("boom"))
	h.OnExportComplete(ctx, "svg", "dot", 10, time.Millisecond, nil)
	h.OnCacheHit(ctx, "artifact")
	h.OnCacheMiss(ctx, "artifact")
	h.OnCacheMiss(ctx, "artifact")
	h.OnResponse(ctx, "GET", "/api/v1/dot", 200, time.Millisecond)

	assert.Equal(t, 1.0, counter(t, reg, "modelviewer_generations_total", map[string]string{"outcome": "ok"}))
	assert.Equal(t, 1.0, counter(t, reg, "modelviewer_generations_total", map[string]string{"outcome": "absent"}))
	assert.Equal(t, 1.0, counter(t, reg, "modelviewer_generations_total", map[string]string{"outcome": "error"}))
	assert.Equal(t, 1.0, counter(t, reg, "modelviewer_exports_total", map[string]string{"format": "svg", "outcome": "ok"}))
	assert.Equal(t, 2.0, counter(t, reg, "modelviewer_cache_operations_total", map[string]string{"op": "miss"}))
	assert.Equal(t, 1.0, counter(t, reg, "modelviewer_http_requests_total", map[string]string{"route": "/api/v1/dot", "code": "200"}))
}

func TestInstall(t *testing.T) {
	defer observability.Reset()

	h := New(prometheus.NewRegistry())
	h.Install()
	assert.Same(t, h, observability.Cache())
	assert.Same(t, h, observability.Generator())
}

func TestNewRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) }, "duplicate registration should panic")
}
