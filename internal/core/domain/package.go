// Package domain contains the core domain models and business logic for
// dependency resolution and license validation.
package domain

import (
	"bufio"
	"bytes"
	"strings"
)

// requiresSeparator is the separator pip uses between dependency names
// in the "Requires" field.
const requiresSeparator = ", "

// maxRecordLine bounds a single metadata line. Some packages put their
// entire license text into the License field, which blows past the default
// bufio.Scanner limit of 64KB.
const maxRecordLine = 1 << 20

// PackageRecord holds the metadata of a single installed package.
// Records are immutable once parsed.
type PackageRecord struct {
	// Name is the normalized package name.
	Name string

	// Version is the installed version string.
	Version string

	// License is the raw license string as declared by the package.
	// Empty if the package declares no license.
	License string

	// Requires lists the normalized names of the package's direct
	// dependencies, in declaration order.
	Requires []string
}

// NormalizeName canonicalizes a package name for use as a cache and map key.
// pip treats underscores and hyphens as equivalent and names as
// case-insensitive, so both are unified here.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "_", "-")
	return strings.ToLower(name)
}

// ParseRecord parses the raw output of a metadata lookup into a PackageRecord.
// The input consists of "Key: Value" lines; lines without a separator or with
// an empty value are ignored. Unknown keys are skipped.
func ParseRecord(name string, raw []byte) PackageRecord {
	rec := PackageRecord{Name: NormalizeName(name)}

	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordLine)
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), ": ")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch key {
		case "Version":
			rec.Version = value
		case "License":
			rec.License = value
		case "Requires":
			for _, dep := range strings.Split(value, requiresSeparator) {
				if dep = NormalizeName(dep); dep != "" {
					rec.Requires = append(rec.Requires, dep)
				}
			}
		}
	}

	return rec
}

// DependencySet maps package names to their direct dependency lists.
// It grows monotonically during resolution and preserves insertion order,
// which defines the resolution order used by the validator.
type DependencySet struct {
	deps  map[string][]string
	order []string
}

// NewDependencySet creates a new empty DependencySet.
func NewDependencySet() *DependencySet {
	return &DependencySet{
		deps: make(map[string][]string),
	}
}

// Add records a package with its direct dependency list.
// Adding a name twice is a no-op so the set never shrinks or reorders.
func (s *DependencySet) Add(name string, deps []string) {
	if _, exists := s.deps[name]; exists {
		return
	}
	s.deps[name] = deps
	s.order = append(s.order, name)
}

// Has reports whether the package has already been discovered.
func (s *DependencySet) Has(name string) bool {
	_, exists := s.deps[name]
	return exists
}

// Direct returns the direct dependency list recorded for the package.
func (s *DependencySet) Direct(name string) []string {
	return s.deps[name]
}

// Names returns all discovered package names in insertion order.
func (s *DependencySet) Names() []string {
	return s.order
}

// Len returns the number of discovered packages.
func (s *DependencySet) Len() int {
	return len(s.order)
}
