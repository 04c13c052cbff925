package handlers

import "time"

// CreateURLRequest is the request for creating a short URL.
type CreateURLRequest struct {
	Body struct {
		OriginalURL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"original_url"`
	}
}

// CreateURLResponse is the response for a successfully created short URL.
type CreateURLResponse struct {
	Body struct {
		ShortID     string    `doc:"The generated short ID" example:"aB3xZ9"                             json:"short_id"`
		OriginalURL string    `doc:"The original URL"       example:"https://example.com/very/long/path" json:"original_url"`
		CreatedAt   time.Time `doc:"Creation timestamp"     json:"created_at"`
		ShortURL    string    `doc:"The full short URL"     example:"http://127.0.0.1:8000/aB3xZ9"       json:"short_url"`
	}
}

// ListURLsRequest is the request for listing short URL records.
type ListURLsRequest struct {
	Skip   int  `default:"0"     doc:"Number of records to skip"  minimum:"0" query:"skip"`
	Limit  int  `default:"50"    doc:"Maximum records to return"  maximum:"200" minimum:"1" query:"limit"`
	Active bool `default:"false" doc:"Only return active records" query:"active"`
}

// URLSummary is one record in a listing response.
type URLSummary struct {
	ShortID      string    `json:"short_id"`
	OriginalURL  string    `json:"original_url"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `json:"is_active"`
	FailedChecks int       `json:"failed_checks"`
	ShortURL     string    `json:"short_url"`
}

// ListURLsResponse is the response for a listing request.
type ListURLsResponse struct {
	Body []URLSummary
}

// RedirectRequest is the request for resolving a short ID.
type RedirectRequest struct {
	ShortID string `doc:"The short ID" example:"aB3xZ9" path:"shortID"`
}

// RedirectResponse carries the permanent redirect to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}

// AggregateMetricsRequest is the request for windowed access counts.
type AggregateMetricsRequest struct {
	ShortID string `doc:"Limit the aggregation to one short ID" query:"short_id" required:"false"`
}

// MetricsSummary holds rolling access counts for one short ID.
type MetricsSummary struct {
	ShortID   string `json:"short_id"`
	LastHour  int64  `json:"last_hour"`
	LastDay   int64  `json:"last_day"`
	LastMonth int64  `json:"last_month"`
}

// AggregateMetricsResponse is the response for an aggregation request.
type AggregateMetricsResponse struct {
	Body []MetricsSummary
}

// RecordMetricRequest is the request for recording an access without a
// server-side redirect.
type RecordMetricRequest struct {
	ShortID string `doc:"The short ID" example:"aB3xZ9" path:"shortID"`
}

// RecordMetricResponse acknowledges a recorded access.
type RecordMetricResponse struct {
	Body struct {
		Success     bool   `json:"success"`
		Message     string `json:"message"`
		OriginalURL string `json:"original_url"`
	}
}
