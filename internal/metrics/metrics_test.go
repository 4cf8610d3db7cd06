package metrics_test

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/city-infos/internal/metrics"
)

func TestUpstreamCall(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.UpstreamCall("city", "ok", 20*time.Millisecond)
	m.UpstreamCall("city", "not_found", 5*time.Millisecond)
	m.UpstreamCall("city", "ok", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.UpstreamCalls.WithLabelValues("city", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamCalls.WithLabelValues("city", "not_found")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.UpstreamDuration))
}

func TestRecipeLifecycle(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.RecipeCreated()
	m.RecipeCreated()
	m.RecipeDeleted()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecipesCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecipesDeleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecipesStored))
}

func TestRecipeGauge_ConcurrentUpdates(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); m.RecipeCreated() }()
		go func() { defer wg.Done(); m.RecipeCreated() }()
	}
	wg.Wait()
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() { defer wg.Done(); m.RecipeDeleted() }()
	}
	wg.Wait()

	assert.Equal(t, 150.0, testutil.ToFloat64(m.RecipesStored))
}

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)

	require.Panics(t, func() { metrics.New(reg) }, "duplicate registration must panic")
}
