package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/lfsantos/shortener/internal/messaging"
	"github.com/lfsantos/shortener/internal/metrics"
	"github.com/lfsantos/shortener/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler handles short URL creation, listing and redirects.
type URLHandler struct {
	service       *shortener.Service
	publishAccess messaging.Publish[metrics.AccessEvent]
	logger        *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	service *shortener.Service,
	publishAccess messaging.Publish[metrics.AccessEvent],
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		service:       service,
		publishAccess: publishAccess,
		logger:        logger,
	}
}

func (h *URLHandler) CreateURL(ctx context.Context, req *CreateURLRequest) (*CreateURLResponse, error) {
	record, err := h.service.Create(ctx, req.Body.OriginalURL)
	if err != nil {
		if errors.Is(err, shortener.ErrInvalidURL) || errors.Is(err, shortener.ErrExhaustedRetries) {
			return nil, huma.Error500InternalServerError(err.Error())
		}

		h.logger.Error("failed to create short url", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to create short url")
	}

	resp := &CreateURLResponse{}
	resp.Body.ShortID = record.ShortID
	resp.Body.OriginalURL = record.OriginalURL
	resp.Body.CreatedAt = record.CreatedAt
	resp.Body.ShortURL = record.ShortURL

	return resp, nil
}

func (h *URLHandler) ListURLs(ctx context.Context, req *ListURLsRequest) (*ListURLsResponse, error) {
	records, err := h.service.List(ctx, shortener.ListParams{
		Skip:       req.Skip,
		Limit:      req.Limit,
		ActiveOnly: req.Active,
	})
	if err != nil {
		h.logger.Error("failed to list urls", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to list urls")
	}

	resp := &ListURLsResponse{Body: make([]URLSummary, len(records))}

	for i, record := range records {
		resp.Body[i] = URLSummary{
			ShortID:      record.ShortID,
			OriginalURL:  record.OriginalURL,
			CreatedAt:    record.CreatedAt,
			IsActive:     record.IsActive,
			FailedChecks: record.FailedChecks,
			ShortURL:     record.ShortURL,
		}
	}

	return resp, nil
}

// RedirectToURL resolves a short ID and issues a permanent redirect. The
// access event publish is best-effort: a metrics-pipeline failure must never
// degrade the redirect itself.
func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
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
	event := metrics.AccessEvent{
		ShortID:    record.ShortID,
		AccessedAt: time.Now().UTC(),
		UserAgent:  meta.UserAgent,
		IPAddress:  meta.ClientIP,
		Referer:    meta.Referer,
	}

	if err := h.publishAccess(event); err != nil {
		h.logger.Error("failed to publish access event",
			zap.String("short_id", record.ShortID),
			zap.Error(err),
		)
	}

	resp := &RedirectResponse{
		Status: http.StatusMovedPermanently,
	}
	resp.Headers.Location = record.OriginalURL

	return resp, nil
}
