package weather

import "fmt"

// FetchError reports a non-success HTTP status from the provider
type FetchError struct {
	Op         string // "weather" or "forecast"
	StatusCode int
	Status     string // status text, e.g. "Not Found"
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("unable to fetch %s data: %s", e.Op, e.Status)
}

// DecodeError reports a response body that does not match the endpoint schema
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decoding response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
