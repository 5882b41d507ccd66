// Package geolocate models the positioning capability as an awaitable
// operation with a typed failure reason and a configured fallback so a
// failed fix never blocks field capture.
package geolocate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/georeconexion/campo-api/models"
)

// Reason classifies a positioning failure
type Reason string

// Failure reasons
const (
	ReasonPermissionDenied Reason = "PERMISSION_DENIED"
	ReasonUnavailable      Reason = "UNAVAILABLE"
	ReasonTimeout          Reason = "TIMEOUT"
)

// GeolocationError is a failed fix attempt
type GeolocationError struct {
	Reason Reason
	Err    error
}

func (e *GeolocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geolocate: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("geolocate: %s", e.Reason)
}

func (e *GeolocationError) Unwrap() error { return e.Err }

// Locator is a one-shot positioning request. It resolves with a fresh
// coordinate or fails with a GeolocationError; it is not cancellable once
// issued beyond the ctx deadline.
type Locator interface {
	Current(ctx context.Context) (models.Coordinate, error)
}

// Static always resolves to a fixed coordinate. Used by composition roots
// without a live positioning feed.
type Static struct {
	At models.Coordinate
}

// Current returns the fixed coordinate
func (s Static) Current(ctx context.Context) (models.Coordinate, error) {
	return s.At, nil
}

// Unavailable always fails, for deployments with no positioning capability
type Unavailable struct{}

// Current reports the capability as missing
func (Unavailable) Current(ctx context.Context) (models.Coordinate, error) {
	return models.Coordinate{}, &GeolocationError{Reason: ReasonUnavailable}
}

// Fix is a resolved position. Approximate marks a fallback to the default
// coordinate after a failed fix, so callers can show a degraded-accuracy
// notice.
type Fix struct {
	At          models.Coordinate `json:"at"`
	Approximate bool              `json:"approximate,omitempty"`
}

// Fallback wraps a locator with a bounded wait and a default coordinate.
type Fallback struct {
	Inner   Locator
	Default models.Coordinate
	Wait    time.Duration
}

// Fix requests a high-accuracy position with the configured bounded wait.
// On any failure it resolves to the default coordinate instead of blocking
// the operator, logging the reason.
func (f Fallback) Fix(ctx context.Context) Fix {
	wait := f.Wait
	if wait <= 0 {
		wait = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	at, err := f.Inner.Current(ctx)
	if err == nil {
		return Fix{At: at}
	}

	reason := ReasonUnavailable
	var gerr *GeolocationError
	if errors.As(err, &gerr) {
		reason = gerr.Reason
	} else if errors.Is(err, context.DeadlineExceeded) {
		reason = ReasonTimeout
	}
	zap.S().Warnw("position fix failed, using default coordinate",
		"reason", reason,
		"error", err,
	)
	return Fix{At: f.Default, Approximate: true}
}
