// Package validator applies a license policy to a package's resolved
// dependency closure. It is constructed per run, with the root package and
// policy fixed at creation.
package validator

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/licheck/internal/core/domain"
	"go.trai.ch/licheck/internal/core/ports"
	"go.trai.ch/licheck/internal/engine/resolver"
)

type Validator struct {
	res    *resolver.Resolver
	logger ports.Logger
	root   string
	policy domain.Policy
}

// New creates a validator for one root package under one policy. The root
// name is normalized once here so every downstream lookup agrees on the key.
func New(res *resolver.Resolver, logger ports.Logger, root string, policy domain.Policy) *Validator {
	return &Validator{
		res:    res,
		logger: logger,
		root:   domain.NormalizeName(root),
		policy: policy,
	}
}

// Root returns the normalized root package name.
func (v *Validator) Root() string {
	return v.root
}

// OwnVersion returns the installed version of the root package.
func (v *Validator) OwnVersion(ctx context.Context) (string, error) {
	rec, err := v.res.FetchRecord(ctx, v.root)
	if err != nil {
		return "", err
	}
	return rec.Version, nil
}

// OwnLicense returns the effective license of the root package, with any
// override applied.
func (v *Validator) OwnLicense(ctx context.Context) (string, error) {
	rec, err := v.res.FetchRecord(ctx, v.root)
	if err != nil {
		return "", err
	}
	return v.policy.EffectiveLicense(v.root, rec.License), nil
}

// DirectDependencies returns the root package's first-level dependencies.
func (v *Validator) DirectDependencies(ctx context.Context) ([]string, error) {
	return v.res.DirectDependencies(ctx, v.root)
}

// TransitiveDependencies returns the full dependency closure of the root.
func (v *Validator) TransitiveDependencies(ctx context.Context) (*domain.DependencySet, error) {
	return v.res.TransitiveDependencies(ctx, v.root)
}

// Versions maps every closure member to its installed version.
func (v *Validator) Versions(ctx context.Context) (map[string]string, error) {
	return v.res.Versions(ctx, v.root)
}

// Licenses maps every closure member to its effective license, with policy
// overrides applied.
func (v *Validator) Licenses(ctx context.Context) (map[string]string, error) {
	raw, err := v.res.Licenses(ctx, v.root)
	if err != nil {
		return nil, err
	}
	effective := make(map[string]string, len(raw))
	for name, license := range raw {
		effective[name] = v.policy.EffectiveLicense(name, license)
	}
	return effective, nil
}

// Validate checks the root package and its entire closure against the policy.
// It stops at the first violation so the caller gets a single, specific
// verdict rather than a pile of repeated ones.
func (v *Validator) Validate(ctx context.Context) error {
	set, err := v.res.TransitiveDependencies(ctx, v.root)
	if err != nil {
		return err
	}

	candidates := append([]string{v.root}, set.Names()...)
	for _, name := range candidates {
		if v.policy.Whitelisted(name) {
			v.logger.Info(fmt.Sprintf("skipping whitelisted package %s", name))
			continue
		}

		rec, err := v.res.FetchRecord(ctx, name)
		if err != nil {
			return err
		}

		effective := v.policy.EffectiveLicense(name, rec.License)
		if err := v.checkLicense(name, effective); err != nil {
			return err
		}
	}
	return nil
}

// checkLicense applies the policy to one package's effective license string.
//
// The substring branches are mutually exclusive and checked from most to
// least specific: "lgpl" must be recognized before "gpl" matches it, and the
// matched branch alone decides the verdict. A token that trips no branch is
// accepted only if it is a known permissive license or the policy tolerates
// unknown ones.
func (v *Validator) checkLicense(name, effective string) error {
	canonical := domain.NormalizeLicense(effective)
	token := strings.ToLower(canonical)

	switch {
	case strings.Contains(token, "lgpl"):
		if !v.policy.AllowLGPL {
			return domain.NewViolation(domain.ErrLGPLLinking, name, canonical,
				"the LGPL linking exception is of unclear applicability here")
		}
	case strings.Contains(token, "gpl"):
		if !v.policy.AllowViral {
			return domain.NewViolation(domain.ErrViralLicense, name, canonical,
				"copyleft terms would restrict the larger work")
		}
	case strings.Contains(token, "unlicense"):
		if !v.policy.AllowUnlicense {
			return domain.NewViolation(domain.ErrInconsistentLicense, name, canonical,
				"the Unlicense contradicts itself")
		}
	case strings.Contains(token, "public domain"):
		if !v.policy.AllowPublicDomain {
			return domain.NewViolation(domain.ErrPublicDomainDedication, name, canonical,
				"public domain dedications are not licenses")
		}
	default:
		if !v.policy.AllowNonfree && !v.policy.AllowUnknown && !domain.Permissive(token) {
			return domain.NewViolation(domain.ErrUnknownLicense, name, canonical,
				"no recognized permissions are granted")
		}
	}

	v.logger.Info(fmt.Sprintf("checked %s: %s", name, canonical))
	return nil
}

// Report assembles a reproducible snapshot of the resolved closure with
// effective licenses. It does not apply the policy verdicts.
func (v *Validator) Report(ctx context.Context) (domain.Report, error) {
	rec, err := v.res.FetchRecord(ctx, v.root)
	if err != nil {
		return domain.Report{}, err
	}

	set, err := v.res.TransitiveDependencies(ctx, v.root)
	if err != nil {
		return domain.Report{}, err
	}

	packages := make(map[string]domain.ReportEntry, set.Len())
	for _, name := range set.Names() {
		dep, err := v.res.FetchRecord(ctx, name)
		if err != nil {
			return domain.Report{}, err
		}
		packages[name] = domain.ReportEntry{
			Version: dep.Version,
			License: v.policy.EffectiveLicense(name, dep.License),
		}
	}

	root := v.policy.EffectiveLicense(v.root, rec.License)
	return domain.NewReport(v.root, rec.Version, root, packages), nil
}
