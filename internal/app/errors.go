package app

import (
	"errors"
	"fmt"

	"github.com/awaistahir/skycast/internal/geo"
)

// User-facing messages shown in the error banner
const (
	MsgBlankCity         = "Please enter a city name"
	MsgLocationFailed    = "Could not retrieve weather data for your location. Please try again later."
	MsgUnsupported       = "Geolocation is not supported by your browser"
	MsgPermissionDenied  = "You denied the request for geolocation"
	MsgUnavailable       = "Location information is unavailable"
	MsgTimeout           = "The request to get your location timed out"
	MsgGeolocationFailed = "Failed to get your location"
)

// CityNotFoundMessage is the banner shown when a city lookup fails
func CityNotFoundMessage(city string) string {
	return fmt.Sprintf(`Could not find weather data for "%s". Please check the city name and try again.`, city)
}

// ErrBlankCity is the cause of a ValidationError for empty input
var ErrBlankCity = errors.New("city name is blank")

// ValidationError rejects input before any request is made
type ValidationError struct {
	Input string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %q: %v", e.Input, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LookupError is a failed lookup: Message is the banner text, Err the cause
type LookupError struct {
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// GeolocationMessage maps a position failure to its banner text
func GeolocationMessage(err error) string {
	switch {
	case errors.Is(err, geo.ErrUnsupported):
		return MsgUnsupported
	case errors.Is(err, geo.ErrPermissionDenied):
		return MsgPermissionDenied
	case errors.Is(err, geo.ErrPositionUnavailable):
		return MsgUnavailable
	case errors.Is(err, geo.ErrTimeout):
		return MsgTimeout
	default:
		return MsgGeolocationFailed
	}
}
