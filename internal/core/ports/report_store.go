package ports

import "go.trai.ch/licheck/internal/core/domain"

// ReportStore persists resolved closure reports.
//
//go:generate mockgen -source=report_store.go -destination=mocks/mock_report_store.go -package=mocks
type ReportStore interface {
	// Put writes the report below the given root directory.
	Put(root string, report domain.Report) error
}
