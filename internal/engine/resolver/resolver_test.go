package resolver_test

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
	"go.uber.org/mock/gomock"
)

type resolverTestMocks struct {
	provider *mocks.MockMetadataProvider
	logger   *mocks.MockLogger
	cache    *memcache.Cache
}

// setupResolverTest creates a resolver with a mock provider and a real
// in-memory cache.
func setupResolverTest(t *testing.T) (*resolver.Resolver, resolverTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := resolverTestMocks{
		provider: mocks.NewMockMetadataProvider(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		cache:    memcache.New(),
	}

	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	r := resolver.New(m.provider, m.cache, m.logger)
	return r, m
}

// pipOutput renders fake `pip show` output for a package.
func pipOutput(name, version, license string, requires ...string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Version: %s\n", version)
	if license != "" {
		fmt.Fprintf(&b, "License: %s\n", license)
	}
	fmt.Fprintf(&b, "Requires: %s\n", strings.Join(requires, ", "))
	return []byte(b.String())
}

// expectLookup wires a one-shot provider expectation for a package.
func expectLookup(m resolverTestMocks, name string, out []byte) {
	m.provider.EXPECT().Lookup(gomock.Any(), name).Return(out, nil).Times(1)
}

func TestResolver_FetchRecord_CachesResult(t *testing.T) {
	r, m := setupResolverTest(t)
	expectLookup(m, "requests", pipOutput("requests", "2.31.0", "Apache 2.0", "idna"))

	first, err := r.FetchRecord(context.Background(), "Requests")
	require.NoError(t, err)
	assert.Equal(t, "2.31.0", first.Version)

	// Second fetch is served from the cache; the provider expectation
	// above allows exactly one call.
	second, err := r.FetchRecord(context.Background(), "requests")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolver_FetchRecord_PropagatesNotFound(t *testing.T) {
	r, m := setupResolverTest(t)
	m.provider.EXPECT().Lookup(gomock.Any(), "no-such-pkg").
		Return(nil, domain.ErrPackageNotFound).Times(1)

	_, err := r.FetchRecord(context.Background(), "no-such-pkg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPackageNotFound))
}

func TestResolver_DirectDependencies_ExcludesSelf(t *testing.T) {
	r, m := setupResolverTest(t)
	expectLookup(m, "loopy", pipOutput("loopy", "1.0", "MIT", "loopy", "other"))

	deps, err := r.DirectDependencies(context.Background(), "loopy")
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, deps)
}

func TestResolver_TransitiveDependencies(t *testing.T) {
	r, m := setupResolverTest(t)
	expectLookup(m, "root", pipOutput("root", "1.0", "MIT", "pkg-a", "pkg-b"))
	expectLookup(m, "pkg-a", pipOutput("pkg-a", "0.1", "MIT", "pkg-c"))
	expectLookup(m, "pkg-b", pipOutput("pkg-b", "0.2", "BSD"))
	expectLookup(m, "pkg-c", pipOutput("pkg-c", "0.3", "ISC"))

	set, err := r.TransitiveDependencies(context.Background(), "root")
	require.NoError(t, err)

	assert.Equal(t, []string{"pkg-a", "pkg-b", "pkg-c"}, set.Names())
	assert.Equal(t, []string{"pkg-c"}, set.Direct("pkg-a"))
	assert.Empty(t, set.Direct("pkg-b"))
}

func TestResolver_TransitiveDependencies_Idempotent(t *testing.T) {
	r, m := setupResolverTest(t)
	expectLookup(m, "root", pipOutput("root", "1.0", "MIT", "pkg-a"))
	expectLookup(m, "pkg-a", pipOutput("pkg-a", "0.1", "MIT"))

	first, err := r.TransitiveDependencies(context.Background(), "root")
	require.NoError(t, err)

	// All records are cached now; a second resolution must not touch the
	// provider again.
	second, err := r.TransitiveDependencies(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, first.Names(), second.Names())
}

func TestResolver_TransitiveDependencies_CycleTerminates(t *testing.T) {
	r, m := setupResolverTest(t)
	expectLookup(m, "root", pipOutput("root", "1.0", "MIT", "pkg-a"))
	expectLookup(m, "pkg-a", pipOutput("pkg-a", "0.1", "MIT", "pkg-b"))
	expectLookup(m, "pkg-b", pipOutput("pkg-b", "0.2", "MIT", "pkg-a"))

	set, err := r.TransitiveDependencies(context.Background(), "root")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pkg-a", "pkg-b"}, set.Names())
}

func TestResolver_TransitiveDependencies_FailsOnMissingDependency(t *testing.T) {
	r, m := setupResolverTest(t)
	expectLookup(m, "root", pipOutput("root", "1.0", "MIT", "type-o"))
	m.provider.EXPECT().Lookup(gomock.Any(), "type-o").
		Return(nil, domain.ErrPackageNotFound).Times(1)

	// A mistyped dependency name must surface as a hard failure, not as an
	// empty record with an unknown license.
	_, err := r.TransitiveDependencies(context.Background(), "root")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPackageNotFound))
}

func TestResolver_VersionsAndLicenses(t *testing.T) {
	r, m := setupResolverTest(t)
	expectLookup(m, "root", pipOutput("root", "1.0", "MIT", "pkg-a", "pkg-b"))
	expectLookup(m, "pkg-a", pipOutput("pkg-a", "0.1", "Apache 2.0"))
	expectLookup(m, "pkg-b", pipOutput("pkg-b", "0.2", ""))

	versions, err := r.Versions(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"pkg-a": "0.1", "pkg-b": "0.2"}, versions)

	licenses, err := r.Licenses(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"pkg-a": "Apache 2.0", "pkg-b": ""}, licenses)
}
