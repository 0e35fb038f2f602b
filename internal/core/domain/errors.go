package domain

import (
	"errors"
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrBadLicense is returned when the license text itself contains unacceptable clauses.
	ErrBadLicense = zerr.New("license contains unacceptable clauses")

	// ErrInconsistentLicense is returned for licenses whose terms contradict each other.
	ErrInconsistentLicense = zerr.Wrap(ErrBadLicense, "license contradicts itself")

	// ErrAmbiguousLicense is returned for licenses whose wording cannot be unambiguously interpreted.
	ErrAmbiguousLicense = zerr.Wrap(ErrBadLicense, "license wording cannot be unambiguously interpreted")

	// ErrJokeLicense is returned for joke or satire licenses.
	ErrJokeLicense = zerr.Wrap(ErrBadLicense, "license is a joke or satire")

	// ErrSoftwareSpecific is returned for license text that only applies to its original project.
	ErrSoftwareSpecific = zerr.Wrap(ErrBadLicense, "license wording only applies to a specific project")

	// ErrPublicDomainDedication is returned for public domain dedications, which are not licenses.
	ErrPublicDomainDedication = zerr.Wrap(ErrBadLicense, "public domain dedications are not licenses")

	// ErrViralLicense is returned when copyleft terms restrict the larger work.
	ErrViralLicense = zerr.New("viral license places restrictions on larger works")

	// ErrLGPLLinking is returned for LGPL, whose linking exception has unclear
	// applicability in interpreted ecosystems.
	ErrLGPLLinking = zerr.Wrap(ErrViralLicense, "applicability of the LGPL linking exception to interpreted languages is unclear")

	// ErrNoDerivatives is returned for licenses that permit only contributions
	// to the original work.
	ErrNoDerivatives = zerr.Wrap(ErrViralLicense, "license permits only contributions to the original work")

	// ErrUnknownLicense is returned when a package declares no recognizable license
	// and the policy does not tolerate unknown or non-free licenses.
	ErrUnknownLicense = zerr.New("license unknown, no permissions given")

	// ErrPackageNotFound is returned when the metadata provider cannot resolve a package name.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrLookupTimeout is returned when a metadata lookup exceeds its deadline.
	ErrLookupTimeout = zerr.New("metadata lookup timed out")

	// ErrLookupFailed is returned when the metadata provider fails for a reason
	// other than a missing package.
	ErrLookupFailed = zerr.New("metadata lookup failed")

	// ErrNoPackageSpecified is returned when no root package is given on the
	// command line or in the policy file.
	ErrNoPackageSpecified = zerr.New("no package specified")

	// ErrConfigReadFailed is returned when the policy file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read policy file")

	// ErrConfigParseFailed is returned when the policy file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse policy file")

	// ErrReportMarshalFailed is returned when the closure report cannot be marshaled.
	ErrReportMarshalFailed = zerr.New("failed to marshal report")

	// ErrReportCreateFailed is returned when the report directory cannot be created.
	ErrReportCreateFailed = zerr.New("failed to create report directory")

	// ErrReportWriteFailed is returned when the closure report cannot be written.
	ErrReportWriteFailed = zerr.New("failed to write report")
)

// violationRoots are the sentinel families that represent a license policy
// verdict rather than an operational failure.
var violationRoots = []error{ErrBadLicense, ErrViralLicense, ErrUnknownLicense}

// IsViolation reports whether the error is a license policy violation, as
// opposed to a resolution or infrastructure failure. The CLI uses this to
// pick the exit code.
func IsViolation(err error) bool {
	for _, root := range violationRoots {
		if errors.Is(err, root) {
			return true
		}
	}
	return false
}

// NewViolation builds a policy violation error of the given kind, carrying the
// offending package and its canonical license both in the message and as
// metadata.
func NewViolation(kind error, pkg, license, reason string) error {
	err := zerr.Wrap(kind, fmt.Sprintf("%s is licensed under %q: %s", pkg, license, reason))
	err = zerr.With(err, "package", pkg)
	return zerr.With(err, "license", license)
}
