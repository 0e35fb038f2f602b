package ports

import "go.trai.ch/licheck/internal/core/domain"

// RecordCache stores fetched package records for the lifetime of a process
// (or a test). It is an explicit dependency rather than a hidden singleton so
// tests get an isolated cache each.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type RecordCache interface {
	// Get returns the cached record for a normalized package name.
	Get(name string) (domain.PackageRecord, bool)

	// Put stores a record keyed by its normalized name.
	Put(rec domain.PackageRecord)
}
