// Package app implements the application layer for licheck.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"go.trai.ch/licheck/internal/core/domain"
	"go.trai.ch/licheck/internal/core/ports"
	"go.trai.ch/licheck/internal/engine/resolver"
	"go.trai.ch/licheck/internal/engine/validator"
	"go.trai.ch/licheck/internal/ui/style"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	policyLoader ports.PolicyLoader
	resolver     *resolver.Resolver
	provider     ports.MetadataProvider
	store        ports.ReportStore
	logger       ports.Logger
	out          io.Writer
}

// New creates a new App instance.
func New(
	loader ports.PolicyLoader,
	res *resolver.Resolver,
	provider ports.MetadataProvider,
	store ports.ReportStore,
	log ports.Logger,
) *App {
	return &App{
		policyLoader: loader,
		resolver:     res,
		provider:     provider,
		store:        store,
		logger:       log,
		out:          os.Stdout,
	}
}

// WithOutput redirects the user-facing output stream.
// This is primarily used for testing.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// CheckOptions configuration for the Check method. The Allow pointers
// distinguish a flag the user set from one left at its default, so the
// command line can override the policy file in either direction.
type CheckOptions struct {
	Timeout   time.Duration
	Overrides map[string]string
	Whitelist []string

	AllowNonfree      *bool
	AllowViral        *bool
	AllowUnknown      *bool
	AllowUnlicense    *bool
	AllowLGPL         *bool
	AllowAmbiguous    *bool
	AllowPublicDomain *bool
}

// Check validates the license of a package and its full dependency closure
// against the effective policy: the policy file first, then command line
// settings on top.
func (a *App) Check(ctx context.Context, pkgName string, opts CheckOptions) error {
	root, policy, err := a.effectivePolicy(pkgName, opts)
	if err != nil {
		return err
	}

	if opts.Timeout > 0 {
		a.provider.SetTimeout(opts.Timeout)
	}

	v := validator.New(a.resolver, a.logger, root, policy)
	if err := v.Validate(ctx); err != nil {
		return zerr.Wrap(err, fmt.Sprintf("license check failed for %s", root))
	}

	set, err := v.TransitiveDependencies(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.out, "%s %s\n",
		style.OKStyle.Render(style.Check),
		fmt.Sprintf("licenses fine: %s and %d dependencies", v.Root(), set.Len()))
	return nil
}

// DepsOptions configuration for the Deps method.
type DepsOptions struct {
	Versions    bool
	Licenses    bool
	WriteReport bool
	Timeout     time.Duration
}

// Deps resolves and prints the transitive dependency closure of a package,
// optionally annotated with versions and effective licenses, and optionally
// persisted as a report for drift detection.
func (a *App) Deps(ctx context.Context, pkgName string, opts DepsOptions) error {
	root, policy, err := a.effectivePolicy(pkgName, CheckOptions{})
	if err != nil {
		return err
	}

	if opts.Timeout > 0 {
		a.provider.SetTimeout(opts.Timeout)
	}

	v := validator.New(a.resolver, a.logger, root, policy)
	set, err := v.TransitiveDependencies(ctx)
	if err != nil {
		return zerr.Wrap(err, fmt.Sprintf("failed to resolve dependencies of %s", root))
	}

	if err := a.printClosure(ctx, v, set, opts); err != nil {
		return err
	}

	if opts.WriteReport {
		report, err := v.Report(ctx)
		if err != nil {
			return err
		}
		if err := a.store.Put(".", report); err != nil {
			return err
		}
		a.logger.Info(fmt.Sprintf("wrote report for %s (digest %s)", root, report.Digest))
	}
	return nil
}

// effectivePolicy loads the policy file and layers the command line settings
// on top. The root package falls back from the argument to the policy file.
func (a *App) effectivePolicy(pkgName string, opts CheckOptions) (string, domain.Policy, error) {
	cfg, err := a.policyLoader.Load(".")
	if err != nil {
		return "", domain.Policy{}, zerr.Wrap(err, "failed to load configuration")
	}

	root := pkgName
	if root == "" {
		root = cfg.Package
	}
	if root == "" {
		return "", domain.Policy{}, domain.ErrNoPackageSpecified
	}

	policy := cfg.Policy
	for name, license := range opts.Overrides {
		policy.SetOverride(name, license)
	}
	for _, name := range opts.Whitelist {
		policy.AddWhitelist(name)
	}

	setIfSet(&policy.AllowNonfree, opts.AllowNonfree)
	setIfSet(&policy.AllowViral, opts.AllowViral)
	setIfSet(&policy.AllowUnknown, opts.AllowUnknown)
	setIfSet(&policy.AllowUnlicense, opts.AllowUnlicense)
	setIfSet(&policy.AllowLGPL, opts.AllowLGPL)
	setIfSet(&policy.AllowAmbiguous, opts.AllowAmbiguous)
	setIfSet(&policy.AllowPublicDomain, opts.AllowPublicDomain)

	return root, policy, nil
}

func setIfSet(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// printClosure renders the closure listing, one dependency per line in
// name order, with optional version and license columns.
func (a *App) printClosure(ctx context.Context, v *validator.Validator, set *domain.DependencySet, opts DepsOptions) error {
	var versions, licenses map[string]string
	var err error

	if opts.Versions {
		if versions, err = v.Versions(ctx); err != nil {
			return err
		}
	}
	if opts.Licenses {
		if licenses, err = v.Licenses(ctx); err != nil {
			return err
		}
	}

	names := append([]string(nil), set.Names()...)
	sort.Strings(names)
	for _, name := range names {
		line := style.PackageStyle.Render(name)
		if opts.Versions {
			line += " " + style.DimStyle.Render(versions[name])
		}
		if opts.Licenses {
			license := licenses[name]
			if license == "" {
				line += " " + style.FailStyle.Render("(no license)")
			} else {
				line += " " + style.OKStyle.Render(domain.NormalizeLicense(license))
			}
		}
		_, _ = fmt.Fprintln(a.out, line)
	}
	return nil
}
