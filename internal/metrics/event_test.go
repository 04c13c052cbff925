package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/lfsantos/shortener/internal/metrics"
	"github.com/lfsantos/shortener/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAccessEvent(t *testing.T) {
	t.Run("persists the event as a metric", func(t *testing.T) {
		metricStore := store.NewMemoryMetricStore()
		handle := metrics.SaveAccessEvent(metricStore)

		accessedAt := time.Now().UTC().Add(-time.Minute)

		err := handle(context.Background(), metrics.AccessEvent{
			ShortID:    "abc123",
			AccessedAt: accessedAt,
			UserAgent:  "TestAgent/1.0",
			IPAddress:  "203.0.113.7",
			Referer:    "https://example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, metricStore.Len())

		count, err := metricStore.CountSince(context.Background(), "abc123", accessedAt)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("propagates store failures", func(t *testing.T) {
		metricStore := store.NewMemoryMetricStore()
		metricStore.FailInserts(assert.AnError)

		handle := metrics.SaveAccessEvent(metricStore)

		err := handle(context.Background(), metrics.AccessEvent{ShortID: "abc123"})

		assert.Error(t, err)
	})
}
