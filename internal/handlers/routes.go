package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the API and redirect routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler, metricsHandler *MetricsHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-short-url",
		Method:        http.MethodPost,
		Path:          "/api/urls",
		Summary:       "Create short URL",
		Description:   "Validates the original URL, resolves a unique short ID and persists the mapping.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusCreated,
	}, urlHandler.CreateURL)

	huma.Register(api, huma.Operation{
		OperationID: "list-short-urls",
		Method:      http.MethodGet,
		Path:        "/api/urls",
		Summary:     "List short URLs",
		Description: "Returns records sorted by creation time, most recent first.",
		Tags:        []string{"URLs"},
	}, urlHandler.ListURLs)

	huma.Register(api, huma.Operation{
		OperationID: "aggregate-metrics",
		Method:      http.MethodGet,
		Path:        "/api/metrics",
		Summary:     "Aggregate access metrics",
		Description: "Computes rolling last-hour, last-day and last-month access counts per short ID.",
		Tags:        []string{"Metrics"},
	}, metricsHandler.AggregateMetrics)

	huma.Register(api, huma.Operation{
		OperationID: "record-metric",
		Method:      http.MethodPost,
		Path:        "/api/metrics/{shortID}",
		Summary:     "Record an access metric",
		Description: "Records an access without redirecting, for client-side opens.",
		Tags:        []string{"Metrics"},
	}, metricsHandler.RecordMetric)

	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{shortID}",
		Summary:     "Redirect to original URL",
		Description: "Redirects permanently to the original URL and records the access.",
		Tags:        []string{"URLs"},
	}, urlHandler.RedirectToURL)
}
