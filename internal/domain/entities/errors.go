package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories shared across the release pipeline
var (
	// ErrPreconditionFailed marks a fatal missing-artifact condition
	ErrPreconditionFailed = errors.New("release precondition failed")

	// ErrMalformedRecord marks a signature filename that does not follow <stem>.<identity>.asc
	ErrMalformedRecord = errors.New("malformed signature filename")

	// ErrFormat marks a binary that cannot be normalized
	ErrFormat = errors.New("invalid PE image")

	// ErrInvalidVersion marks a version string unusable in artifact filenames
	ErrInvalidVersion = errors.New("invalid version")
)

// MissingArtifactsError names every expected artifact absent from the distribution directory
type MissingArtifactsError struct {
	Dir     string
	Missing []string
}

func (e *MissingArtifactsError) Error() string {
	return fmt.Sprintf("%d expected artifact(s) missing from %s: %s",
		len(e.Missing), e.Dir, strings.Join(e.Missing, ", "))
}

// Unwrap allows errors.Is(err, ErrPreconditionFailed)
func (e *MissingArtifactsError) Unwrap() error {
	return ErrPreconditionFailed
}
