package validator_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/licheck/internal/adapters/memcache"
	"go.trai.ch/licheck/internal/core/domain"
	"go.trai.ch/licheck/internal/core/ports/mocks"
	"go.trai.ch/licheck/internal/engine/resolver"
	"go.trai.ch/licheck/internal/engine/validator"
	"go.uber.org/mock/gomock"
)

// pkg describes one package in a test universe.
type pkg struct {
	version  string
	license  string
	requires []string
}

// setupValidatorTest builds a validator over a map-backed metadata universe.
// Unknown names resolve to ErrPackageNotFound, like a real `pip show` miss.
func setupValidatorTest(t *testing.T, universe map[string]pkg, root string, policy domain.Policy) *validator.Validator {
	t.Helper()
	ctrl := gomock.NewController(t)

	provider := mocks.NewMockMetadataProvider(ctrl)
	provider.EXPECT().Lookup(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, name string) ([]byte, error) {
			p, ok := universe[name]
			if !ok {
				return nil, domain.ErrPackageNotFound
			}
			out := fmt.Sprintf("Name: %s\nVersion: %s\nLicense: %s\nRequires: %s\n",
				name, p.version, p.license, strings.Join(p.requires, ", "))
			return []byte(out), nil
		}).AnyTimes()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	res := resolver.New(provider, memcache.New(), logger)
	return validator.New(res, logger, root, policy)
}

func TestValidator_Validate_PermissiveClosure(t *testing.T) {
	universe := map[string]pkg{
		"app":   {version: "1.0", license: "MIT", requires: []string{"lib-a", "lib-b"}},
		"lib-a": {version: "0.1", license: "Apache 2.0"},
		"lib-b": {version: "0.2", license: "BSD 3-Clause", requires: []string{"lib-c"}},
		"lib-c": {version: "0.3", license: "ISC License"},
	}
	v := setupValidatorTest(t, universe, "app", domain.DefaultPolicy())

	require.NoError(t, v.Validate(context.Background()))
}

func TestValidator_Validate_ChecksRootItself(t *testing.T) {
	universe := map[string]pkg{
		"app": {version: "1.0", license: "GPLv3"},
	}
	v := setupValidatorTest(t, universe, "app", domain.DefaultPolicy())

	err := v.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrViralLicense))
	assert.Contains(t, err.Error(), "app")
}

func TestValidator_Validate_ViralDependency(t *testing.T) {
	universe := map[string]pkg{
		"app":      {version: "1.0", license: "MIT", requires: []string{"copyleft"}},
		"copyleft": {version: "2.0", license: "GNU General Public License v2"},
	}
	v := setupValidatorTest(t, universe, "app", domain.DefaultPolicy())

	err := v.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrViralLicense))
	assert.False(t, errors.Is(err, domain.ErrLGPLLinking))
	assert.True(t, domain.IsViolation(err))
}

func TestValidator_Validate_AllowViral(t *testing.T) {
	universe := map[string]pkg{
		"app":      {version: "1.0", license: "MIT", requires: []string{"copyleft"}},
		"copyleft": {version: "2.0", license: "GNU General Public License v2"},
	}
	policy := domain.DefaultPolicy()
	policy.AllowViral = true
	v := setupValidatorTest(t, universe, "app", policy)

	require.NoError(t, v.Validate(context.Background()))
}

func TestValidator_Validate_LGPLBeforeGPL(t *testing.T) {
	universe := map[string]pkg{
		"app":    {version: "1.0", license: "MIT", requires: []string{"linker"}},
		"linker": {version: "0.5", license: "LGPLv2.1"},
	}

	// Without the toggle, LGPL fails with its own specific error, which is
	// still part of the viral family.
	v := setupValidatorTest(t, universe, "app", domain.DefaultPolicy())
	err := v.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLGPLLinking))
	assert.True(t, errors.Is(err, domain.ErrViralLicense))

	// With AllowLGPL the package passes outright. The "gpl" substring in
	// "lgpl" must not reach the viral branch.
	policy := domain.DefaultPolicy()
	policy.AllowLGPL = true
	v = setupValidatorTest(t, universe, "app", policy)
	require.NoError(t, v.Validate(context.Background()))
}

func TestValidator_Validate_LGPLLongForm(t *testing.T) {
	universe := map[string]pkg{
		"app":    {version: "1.0", license: "MIT", requires: []string{"linker"}},
		"linker": {version: "0.5", license: "GNU Lesser General Public License"},
	}

	v := setupValidatorTest(t, universe, "app", domain.DefaultPolicy())
	err := v.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLGPLLinking))

	policy := domain.DefaultPolicy()
	policy.AllowLGPL = true
	v = setupValidatorTest(t, universe, "app", policy)
	require.NoError(t, v.Validate(context.Background()))
}

func TestValidator_Validate_Unlicense(t *testing.T) {
	universe := map[string]pkg{
		"app":   {version: "1.0", license: "MIT", requires: []string{"loose"}},
		"loose": {version: "0.1", license: "The Unlicense"},
	}

	v := setupValidatorTest(t, universe, "app", domain.DefaultPolicy())
	err := v.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInconsistentLicense))
	assert.True(t, errors.Is(err, domain.ErrBadLicense))

	policy := domain.DefaultPolicy()
	policy.AllowUnlicense = true
	v = setupValidatorTest(t, universe, "app", policy)
	require.NoError(t, v.Validate(context.Background()))
}

func TestValidator_Validate_PublicDomain(t *testing.T) {
	universe := map[string]pkg{
		"app":   {version: "1.0", license: "MIT", requires: []string{"dedic"}},
		"dedic": {version: "0.1", license: "Public Domain"},
	}

	// The default policy tolerates public domain dedications.
	v := setupValidatorTest(t, universe, "app", domain.DefaultPolicy())
	require.NoError(t, v.Validate(context.Background()))

	policy := domain.DefaultPolicy()
	policy.AllowPublicDomain = false
	v = setupValidatorTest(t, universe, "app", policy)
	err := v.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPublicDomainDedication))
	assert.True(t, errors.Is(err, domain.ErrBadLicense))
}

func TestValidator_Validate_UnknownLicense(t *testing.T) {
	universe := map[string]pkg{
		"app":     {version: "1.0", license: "MIT", requires: []string{"mystery"}},
		"mystery": {version: "0.1", license: "Proprietary EULA"},
	}

	v := setupValidatorTest(t, universe, "app", domain.DefaultPolicy())
	err := v.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownLicense))

	for _, toggle := range []func(*domain.Policy){
		func(p *domain.Policy) { p.AllowUnknown = true },
		func(p *domain.Policy) { p.AllowNonfree = true },
	} {
		policy := domain.DefaultPolicy()
		toggle(&policy)
		v = setupValidatorTest(t, universe, "app", policy)
		require.NoError(t, v.Validate(context.Background()))
	}
}

func TestValidator_Validate_EmptyLicenseIsUnknown(t *testing.T) {
	universe := map[string]pkg{
		"app":   {version: "1.0", license: "MIT", requires: []string{"blank"}},
		"blank": {version: "0.1", license: ""},
	}
	v := setupValidatorTest(t, universe, "app", domain.DefaultPolicy())

	err := v.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownLicense))
}

func TestValidator_Validate_WhitelistSkipsPackage(t *testing.T) {
	universe := map[string]pkg{
		"app":      {version: "1.0", license: "MIT", requires: []string{"copyleft"}},
		"copyleft": {version: "2.0", license: "GPLv3"},
	}
	policy := domain.DefaultPolicy()
	policy.AddWhitelist("Copyleft")
	v := setupValidatorTest(t, universe, "app", policy)

	require.NoError(t, v.Validate(context.Background()))
}

func TestValidator_Validate_OverrideRewritesLicense(t *testing.T) {
	universe := map[string]pkg{
		"app":   {version: "1.0", license: "MIT", requires: []string{"blank"}},
		"blank": {version: "0.1", license: ""},
	}
	policy := domain.DefaultPolicy()
	policy.SetOverride("blank", "MIT")
	v := setupValidatorTest(t, universe, "app", policy)

	require.NoError(t, v.Validate(context.Background()))

	licenses, err := v.Licenses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "MIT", licenses["blank"])
}

func TestValidator_Validate_MissingDependencyFails(t *testing.T) {
	universe := map[string]pkg{
		"app": {version: "1.0", license: "MIT", requires: []string{"ghost"}},
	}
	v := setupValidatorTest(t, universe, "app", domain.DefaultPolicy())

	err := v.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPackageNotFound))
	assert.False(t, domain.IsViolation(err))
}

func TestValidator_OwnLicenseAndVersion(t *testing.T) {
	universe := map[string]pkg{
		"app": {version: "3.2.1", license: "Apache 2.0"},
	}
	policy := domain.DefaultPolicy()
	v := setupValidatorTest(t, universe, "app", policy)

	version, err := v.OwnVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3.2.1", version)

	license, err := v.OwnLicense(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Apache 2.0", license)

	policy.SetOverride("app", "MIT")
	v = setupValidatorTest(t, universe, "app", policy)
	license, err = v.OwnLicense(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "MIT", license)
}

func TestValidator_Report(t *testing.T) {
	universe := map[string]pkg{
		"app":   {version: "1.0", license: "MIT", requires: []string{"lib-a"}},
		"lib-a": {version: "0.1", license: "", requires: nil},
	}
	policy := domain.DefaultPolicy()
	policy.SetOverride("lib-a", "BSD")
	v := setupValidatorTest(t, universe, "app", policy)

	report, err := v.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "app", report.Package)
	assert.Equal(t, "1.0", report.Version)
	assert.Equal(t, "MIT", report.License)
	assert.Equal(t, domain.ReportEntry{Version: "0.1", License: "BSD"}, report.Packages["lib-a"])
	assert.NotEmpty(t, report.Digest)
}
