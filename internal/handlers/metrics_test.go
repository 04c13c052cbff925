package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/lfsantos/shortener/internal/handlers"
	"github.com/lfsantos/shortener/internal/metrics"
	"github.com/lfsantos/shortener/internal/shortener"
	"github.com/lfsantos/shortener/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMetricsHandler(repo shortener.Repository, metricStore metrics.Store) *handlers.MetricsHandler {
	service := newTestService(repo)
	aggregator := metrics.NewAggregator(repo, metricStore)

	return handlers.NewMetricsHandler(service, metricStore, aggregator, zap.NewNop())
}

func TestAggregateMetrics(t *testing.T) {
	t.Run("aggregates windows for one id", func(t *testing.T) {
		repo := store.NewMemoryURLStore()
		metricStore := store.NewMemoryMetricStore()
		handler := newTestMetricsHandler(repo, metricStore)

		now := time.Now().UTC()
		for _, age := range []time.Duration{30 * time.Minute, 2 * time.Hour, 25 * time.Hour} {
			require.NoError(t, metricStore.Insert(context.Background(), &metrics.AccessMetric{
				ShortID:    "abc123",
				AccessedAt: now.Add(-age),
			}))
		}

		resp, err := handler.AggregateMetrics(context.Background(), &handlers.AggregateMetricsRequest{ShortID: "abc123"})

		require.NoError(t, err)
		require.Len(t, resp.Body, 1)
		assert.Equal(t, "abc123", resp.Body[0].ShortID)
		assert.Equal(t, int64(1), resp.Body[0].LastHour)
		assert.Equal(t, int64(2), resp.Body[0].LastDay)
		assert.Equal(t, int64(3), resp.Body[0].LastMonth)
	})

	t.Run("aggregates every record without an id", func(t *testing.T) {
		repo := store.NewMemoryURLStore()
		metricStore := store.NewMemoryMetricStore()
		handler := newTestMetricsHandler(repo, metricStore)

		seedActive(t, repo, "abc123", "https://example.com/a")
		seedActive(t, repo, "xyz789", "https://example.com/b")

		resp, err := handler.AggregateMetrics(context.Background(), &handlers.AggregateMetricsRequest{})

		require.NoError(t, err)
		assert.Len(t, resp.Body, 2)
	})
}

func TestRecordMetric(t *testing.T) {
	t.Run("records a metric and acknowledges", func(t *testing.T) {
		repo := store.NewMemoryURLStore()
		metricStore := store.NewMemoryMetricStore()
		handler := newTestMetricsHandler(repo, metricStore)

		seedActive(t, repo, "abc123", "https://example.com/target")

		ctx := handlers.ContextWithRequestMeta(context.Background(), handlers.RequestMeta{
			UserAgent: "TestAgent/1.0",
		})

		resp, err := handler.RecordMetric(ctx, &handlers.RecordMetricRequest{ShortID: "abc123"})

		require.NoError(t, err)
		assert.True(t, resp.Body.Success)
		assert.Equal(t, "https://example.com/target", resp.Body.OriginalURL)
		assert.Equal(t, 1, metricStore.Len())
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		repo := store.NewMemoryURLStore()
		metricStore := store.NewMemoryMetricStore()
		handler := newTestMetricsHandler(repo, metricStore)

		resp, err := handler.RecordMetric(context.Background(), &handlers.RecordMetricRequest{ShortID: "nope42"})

		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
		assert.Zero(t, metricStore.Len())
	})

	t.Run("inactive id returns 410 and records nothing", func(t *testing.T) {
		repo := store.NewMemoryURLStore()
		metricStore := store.NewMemoryMetricStore()
		handler := newTestMetricsHandler(repo, metricStore)

		seedActive(t, repo, "abc123", "https://example.com/target")
		repo.SetActive("abc123", false)

		resp, err := handler.RecordMetric(context.Background(), &handlers.RecordMetricRequest{ShortID: "abc123"})

		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Equal(t, http.StatusGone, statusOf(t, err))
		assert.Zero(t, metricStore.Len())
	})

	t.Run("metric write failure surfaces as 500", func(t *testing.T) {
		repo := store.NewMemoryURLStore()
		metricStore := store.NewMemoryMetricStore()
		metricStore.FailInserts(assert.AnError)
		handler := newTestMetricsHandler(repo, metricStore)

		seedActive(t, repo, "abc123", "https://example.com/target")

		resp, err := handler.RecordMetric(context.Background(), &handlers.RecordMetricRequest{ShortID: "abc123"})

		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
		assert.Zero(t, metricStore.Len())
	})
}
