package domain

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// ReportEntry is the resolved metadata snapshot for one package in the closure.
type ReportEntry struct {
	Version string `json:"version"`
	License string `json:"license"`
}

// Report is a reproducible snapshot of a resolved dependency closure:
// the root package, every transitive dependency with its effective
// (override-applied) license, and a digest for drift detection.
type Report struct {
	// Package is the normalized root package name.
	Package string `json:"package"`

	// Version is the root package's installed version.
	Version string `json:"version"`

	// License is the root package's effective license string.
	License string `json:"license"`

	// Packages maps closure member names to their resolved metadata.
	Packages map[string]ReportEntry `json:"packages"`

	// Digest fingerprints the closure contents. Two runs with the same
	// resolved packages, versions and licenses produce the same digest.
	Digest string `json:"digest"`
}

// NewReport assembles a Report and computes its digest.
func NewReport(pkg, version, license string, packages map[string]ReportEntry) Report {
	r := Report{
		Package:  pkg,
		Version:  version,
		License:  license,
		Packages: packages,
	}
	r.Digest = r.computeDigest()
	return r
}

// computeDigest hashes the sorted closure contents with xxhash64.
// Sorting makes the digest independent of resolution order.
func (r *Report) computeDigest() string {
	names := make([]string, 0, len(r.Packages))
	for name := range r.Packages {
		names = append(names, name)
	}
	sort.Strings(names)

	h := xxhash.New()
	_, _ = fmt.Fprintf(h, "%s@%s:%s\n", r.Package, r.Version, r.License)
	for _, name := range names {
		entry := r.Packages[name]
		_, _ = fmt.Fprintf(h, "%s@%s:%s\n", name, entry.Version, entry.License)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
