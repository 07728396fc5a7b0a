// Package persist defines the outbound ports for durable CSV storage.
// The core writes through after each mutation and tolerates adapter
// failure: the in-memory store stays authoritative, the error is reported.
package persist

import (
	"context"
	"errors"
)

// ErrNotFound reports a file the backend has never stored. Initial load
// treats it as "fall back to seed data", not as a failure.
var ErrNotFound = errors.New("file not found")

type (
	// Writer stores serialized CSV content under a file name.
	Writer interface {
		Write(ctx context.Context, fileName, content string) error
	}

	// Reader fetches previously stored CSV content. Used only during
	// initial load and verification.
	Reader interface {
		Read(ctx context.Context, fileName string) (string, error)
	}

	// Backend is a full read/write store.
	Backend interface {
		Writer
		Reader
	}
)
