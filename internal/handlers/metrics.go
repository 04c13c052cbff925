package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/lfsantos/shortener/internal/metrics"
	"github.com/lfsantos/shortener/internal/shortener"
	"go.uber.org/zap"
)

// MetricsHandler handles metric aggregation and explicit metric recording.
type MetricsHandler struct {
	service    *shortener.Service
	store      metrics.Store
	aggregator *metrics.Aggregator
	logger     *zap.Logger
}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler(
	service *shortener.Service,
	store metrics.Store,
	aggregator *metrics.Aggregator,
	logger *zap.Logger,
) *MetricsHandler {
	return &MetricsHandler{
		service:    service,
		store:      store,
		aggregator: aggregator,
		logger:     logger,
	}
}

func (h *MetricsHandler) AggregateMetrics(ctx context.Context, req *AggregateMetricsRequest) (*AggregateMetricsResponse, error) {
	summaries, err := h.aggregator.Aggregate(ctx, req.ShortID)
	if err != nil {
		h.logger.Error("failed to aggregate metrics", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to aggregate metrics")
	}

	resp := &AggregateMetricsResponse{Body: make([]MetricsSummary, len(summaries))}

	for i, summary := range summaries {
		resp.Body[i] = MetricsSummary{
			ShortID:   summary.ShortID,
			LastHour:  summary.LastHour,
			LastDay:   summary.LastDay,
			LastMonth: summary.LastMonth,
		}
	}

	return resp, nil
}

// RecordMetric records an access without performing a redirect, for clients
// that open the original URL themselves. Unlike the redirect path, a failed
// metric write here is the whole point of the call, so it surfaces as an
// error instead of being swallowed.
func (h *MetricsHandler) RecordMetric(ctx context.Context, req *RecordMetricRequest) (*RecordMetricResponse, error) {
	record, err := h.service.ResolveActive(ctx, req.ShortID)
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrNotFound):
			return nil, huma.Error404NotFound("short id not found")
		case errors.Is(err, shortener.ErrInactive):
			return nil, huma.Error410Gone("short url has been deactivated")
		default:
			h.logger.Error("failed to resolve short id",
				zap.String("short_id", req.ShortID),
				zap.Error(err),
			)

			return nil, huma.Error500InternalServerError("failed to resolve short id")
		}
	}

	meta := RequestMetaFromContext(ctx)
	metric := &metrics.AccessMetric{
		ShortID:    record.ShortID,
		AccessedAt: time.Now().UTC(),
		UserAgent:  meta.UserAgent,
		IPAddress:  meta.ClientIP,
		Referer:    meta.Referer,
	}

	if err := h.store.Insert(ctx, metric); err != nil {
		h.logger.Error("failed to record metric",
			zap.String("short_id", record.ShortID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to record metric")
	}

	resp := &RecordMetricResponse{}
	resp.Body.Success = true
	resp.Body.Message = "metric recorded"
	resp.Body.OriginalURL = record.OriginalURL

	return resp, nil
}
