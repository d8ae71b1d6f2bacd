package geo

import (
	"context"
	"errors"
)

// Fixed is a Locator that answers with a configured position
type Fixed struct {
	position *Position
}

// NewFixed creates a locator; a nil position means none is configured
func NewFixed(position *Position) *Fixed {
	return &Fixed{position: position}
}

// Locate implements Locator
func (f *Fixed) Locate(ctx context.Context) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		out <- f.resolve(ctx)
	}()
	return out
}

func (f *Fixed) resolve(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Result{Err: &Error{Code: Timeout, Err: err}}
		}
		return Result{Err: &Error{Code: PositionUnavailable, Err: err}}
	}
	if f.position == nil {
		return Result{Err: ErrPositionUnavailable}
	}
	return Result{Position: *f.position}
}
