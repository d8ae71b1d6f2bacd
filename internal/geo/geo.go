// Package geo provides a single-shot request for the user's position.
package geo

import (
	"context"
	"errors"
	"fmt"
)

// Code is the reason a position request failed; values match the browser
// Geolocation API's GeolocationPositionError codes.
type Code int

const (
	PermissionDenied    Code = 1
	PositionUnavailable Code = 2
	Timeout             Code = 3
)

// Error is a failed position request
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	var reason string
	switch e.Code {
	case PermissionDenied:
		reason = "permission denied"
	case PositionUnavailable:
		reason = "position unavailable"
	case Timeout:
		reason = "timeout"
	default:
		reason = fmt.Sprintf("code %d", int(e.Code))
	}
	if e.Err != nil {
		return fmt.Sprintf("geolocation: %s: %v", reason, e.Err)
	}
	return "geolocation: " + reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors with the same code, so errors.Is(err, ErrTimeout) works
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrPermissionDenied    = &Error{Code: PermissionDenied}
	ErrPositionUnavailable = &Error{Code: PositionUnavailable}
	ErrTimeout             = &Error{Code: Timeout}

	// ErrUnsupported means there is no way to locate the user at all
	ErrUnsupported = errors.New("geolocation is not supported")
)

// Position is a point on the globe in decimal degrees
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Result is the single outcome of a Locate call
type Result struct {
	Position Position
	Err      error
}

// Locator resolves the user's position. Locate delivers exactly one Result
// and then closes the channel.
type Locator interface {
	Locate(ctx context.Context) <-chan Result
}

// FromCode converts a failure code reported by a browser into an error.
// Unknown codes yield an Error that matches none of the sentinels.
func FromCode(code int) error {
	return &Error{Code: Code(code)}
}

// Await blocks until l delivers its result
func Await(ctx context.Context, l Locator) (Position, error) {
	if l == nil {
		return Position{}, ErrUnsupported
	}
	res, ok := <-l.Locate(ctx)
	if !ok {
		return Position{}, ErrPositionUnavailable
	}
	return res.Position, res.Err
}
