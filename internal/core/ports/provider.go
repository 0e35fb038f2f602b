// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"time"
)

// MetadataProvider is the abstraction over the external package metadata
// source. It returns the raw "Key: Value" text for a package; parsing lives
// in the domain so the resolver core is testable with a fake provider.
//
//go:generate mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks
type MetadataProvider interface {
	// Lookup queries the metadata source for a package name.
	// A missing package yields domain.ErrPackageNotFound; an exceeded
	// deadline yields domain.ErrLookupTimeout.
	Lookup(ctx context.Context, name string) ([]byte, error)

	// SetTimeout adjusts the per-lookup deadline applied when the caller's
	// context has none.
	SetTimeout(d time.Duration)
}
