package shortener

import "errors"

var (
	// ErrInvalidLength is returned when a short ID length is not positive.
	ErrInvalidLength = errors.New("short id length must be greater than zero")

	// ErrInvalidURL is returned when an original URL fails validation.
	ErrInvalidURL = errors.New("original url is invalid")

	// ErrNotFound is returned when no record matches a short ID.
	ErrNotFound = errors.New("short url not found")

	// ErrInactive is returned when a record exists but has been deactivated.
	ErrInactive = errors.New("short url is inactive")

	// ErrDuplicateShortID is returned by a repository insert when the short ID
	// is already taken. The service treats it as a signal to regenerate.
	ErrDuplicateShortID = errors.New("short id already exists")

	// ErrExhaustedRetries is returned when no free short ID was found within
	// the attempt budget.
	ErrExhaustedRetries = errors.New("exhausted attempts to generate a unique short id")
)
