package domain

import "path/filepath"

const (
	// LicheckDirName is the name of the internal metadata directory.
	LicheckDirName = ".licheck"

	// ReportFileName is the name of the closure report file.
	ReportFileName = "report.json"

	// PolicyFileName is the name of the policy configuration file.
	PolicyFileName = "licheck.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultReportPath returns the report location relative to a root directory.
func DefaultReportPath(root string) string {
	return filepath.Join(root, LicheckDirName, ReportFileName)
}
