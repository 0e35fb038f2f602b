package domain

// Policy holds the caller's license tolerance settings for one validation run.
// It is immutable for the lifetime of the run.
type Policy struct {
	// overrides maps normalized package names to a forced license string,
	// used when a package omits or misstates its license metadata.
	overrides map[string]string

	// whitelist holds normalized package names exempt from license checks.
	whitelist map[string]struct{}

	AllowNonfree      bool
	AllowViral        bool
	AllowUnknown      bool
	AllowUnlicense    bool
	AllowLGPL         bool
	AllowAmbiguous    bool
	AllowPublicDomain bool
}

// DefaultPolicy returns the baseline policy: everything disallowed except
// public domain dedications.
func DefaultPolicy() Policy {
	return Policy{
		overrides:         make(map[string]string),
		whitelist:         make(map[string]struct{}),
		AllowPublicDomain: true,
	}
}

// SetOverride forces a license string for a package, taking precedence over
// its fetched metadata.
func (p *Policy) SetOverride(name, license string) {
	if p.overrides == nil {
		p.overrides = make(map[string]string)
	}
	p.overrides[NormalizeName(name)] = license
}

// Override returns the forced license for a package, if one is set.
func (p *Policy) Override(name string) (string, bool) {
	license, ok := p.overrides[NormalizeName(name)]
	return license, ok
}

// AddWhitelist exempts a package from license checking.
func (p *Policy) AddWhitelist(name string) {
	if p.whitelist == nil {
		p.whitelist = make(map[string]struct{})
	}
	p.whitelist[NormalizeName(name)] = struct{}{}
}

// Whitelisted reports whether the package is exempt from license checks.
func (p *Policy) Whitelisted(name string) bool {
	_, ok := p.whitelist[NormalizeName(name)]
	return ok
}

// EffectiveLicense applies the override mapping to a fetched license string.
func (p *Policy) EffectiveLicense(name, fetched string) string {
	if forced, ok := p.Override(name); ok {
		return forced
	}
	return fetched
}

// RunConfig is the validated content of a policy file: the policy itself plus
// an optional default root package.
type RunConfig struct {
	Package string
	Policy  Policy
}
