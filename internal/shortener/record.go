package shortener

import "time"

// ShortURLRecord is a stored mapping from a short ID to its original URL.
//
// IsActive, FailedChecks and LastCheck are mutated only by an external
// health-check process; the service never updates a record after creation.
type ShortURLRecord struct {
	ShortID      string
	OriginalURL  string
	ShortURL     string // derived from the base URL at creation time
	CreatedAt    time.Time
	IsActive     bool
	FailedChecks int
	LastCheck    *time.Time
}
