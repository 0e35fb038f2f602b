// Package config provides the policy configuration loader for licheck.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/licheck/internal/core/domain"
	"go.trai.ch/licheck/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.PolicyLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load walks up from cwd looking for licheck.yaml. A missing file yields the
// default policy; a present but unreadable or malformed file is an error.
func (l *Loader) Load(cwd string) (domain.RunConfig, error) {
	cfg := domain.RunConfig{Policy: domain.DefaultPolicy()}

	path, found := findPolicyFile(cwd)
	if !found {
		l.Logger.Info("no " + domain.PolicyFileName + " found, using default policy")
		return cfg, nil
	}

	//nolint:gosec // path comes from walking the caller's own directory tree
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file PolicyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	cfg.Package = domain.NormalizeName(file.Package)
	applyFile(&cfg.Policy, &file)
	l.Logger.Info("loaded policy from " + path)
	return cfg, nil
}

// findPolicyFile walks up from cwd to the filesystem root looking for the
// policy file.
func findPolicyFile(cwd string) (string, bool) {
	dir := cwd
	for {
		path := filepath.Join(dir, domain.PolicyFileName)
		if _, err := os.Stat(path); err == nil {
			return path, true
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", false
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func applyFile(p *domain.Policy, file *PolicyFile) {
	for name, license := range file.Overrides {
		p.SetOverride(name, license)
	}
	for _, name := range file.Whitelist {
		p.AddWhitelist(name)
	}

	setIfPresent(&p.AllowNonfree, file.Allow.Nonfree)
	setIfPresent(&p.AllowViral, file.Allow.Viral)
	setIfPresent(&p.AllowUnknown, file.Allow.Unknown)
	setIfPresent(&p.AllowUnlicense, file.Allow.Unlicense)
	setIfPresent(&p.AllowLGPL, file.Allow.LGPL)
	setIfPresent(&p.AllowAmbiguous, file.Allow.Ambiguous)
	setIfPresent(&p.AllowPublicDomain, file.Allow.PublicDomain)
}

func setIfPresent(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
