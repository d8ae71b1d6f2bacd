package geo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFromCode(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{1, ErrPermissionDenied},
		{2, ErrPositionUnavailable},
		{3, ErrTimeout},
	}

	for _, tt := range tests {
		err := FromCode(tt.code)
		if !errors.Is(err, tt.want) {
			t.Errorf("FromCode(%d) = %v, want %v", tt.code, err, tt.want)
		}
	}

	unknown := FromCode(42)
	for _, sentinel := range []error{ErrPermissionDenied, ErrPositionUnavailable, ErrTimeout} {
		if errors.Is(unknown, sentinel) {
			t.Errorf("FromCode(42) matched %v", sentinel)
		}
	}
}

func TestFixedLocate(t *testing.T) {
	pos := &Position{Latitude: 51.5074, Longitude: -0.1278}

	got, err := Await(context.Background(), NewFixed(pos))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != *pos {
		t.Errorf("got %+v, want %+v", got, *pos)
	}
}

func TestFixedLocateSingleShot(t *testing.T) {
	ch := NewFixed(&Position{}).Locate(context.Background())

	if _, ok := <-ch; !ok {
		t.Fatal("expected one result")
	}
	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed after one result")
	}
}

func TestFixedLocateFailures(t *testing.T) {
	expired, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		locator Locator
		want    error
	}{
		{"not configured", context.Background(), NewFixed(nil), ErrPositionUnavailable},
		{"deadline exceeded", expired, NewFixed(&Position{}), ErrTimeout},
		{"no locator", context.Background(), nil, ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Await(tt.ctx, tt.locator)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}
