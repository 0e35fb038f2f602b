// Package report persists resolved closure reports below .licheck/.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/licheck/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ReportStore using a JSON file per root directory.
type Store struct{}

// NewStore creates a new report store.
func NewStore() *Store {
	return &Store{}
}

// Put writes the report to <root>/.licheck/report.json.
func (s *Store) Put(root string, rep domain.Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrReportMarshalFailed.Error())
	}

	path := domain.DefaultReportPath(root)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrReportCreateFailed.Error())
	}

	//nolint:gosec // path is constructed from a trusted root and fixed names
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrReportWriteFailed.Error())
	}

	return nil
}
