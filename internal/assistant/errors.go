package assistant

import "github.com/pkg/errors"

var (
	// ErrNoCredential is returned when no API key is configured
	ErrNoCredential = errors.New("assistant api key is not configured")

	// ErrNoAnswer is returned when the model response carries no candidate
	ErrNoAnswer = errors.New("assistant returned no candidates")
)
