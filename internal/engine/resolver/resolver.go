// Package resolver computes transitive dependency closures from installed
// package metadata.
package resolver

import (
	"context"
	"fmt"

	"go.trai.ch/licheck/internal/core/domain"
	"go.trai.ch/licheck/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// Resolver fetches package records through a MetadataProvider and expands
// "requires" edges breadth-first into a DependencySet. Fetched records are
// kept in the injected cache, so repeated resolutions cost no further
// provider queries.
type Resolver struct {
	provider ports.MetadataProvider
	cache    ports.RecordCache
	logger   ports.Logger
	group    singleflight.Group
}

// New creates a Resolver with the given provider, cache and logger.
func New(provider ports.MetadataProvider, cache ports.RecordCache, logger ports.Logger) *Resolver {
	return &Resolver{
		provider: provider,
		cache:    cache,
		logger:   logger,
	}
}

// FetchRecord returns the metadata record for a package, consulting the cache
// first. Concurrent fetches of the same name are collapsed into a single
// provider query.
func (r *Resolver) FetchRecord(ctx context.Context, name string) (domain.PackageRecord, error) {
	key := domain.NormalizeName(name)
	if rec, ok := r.cache.Get(key); ok {
		return rec, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		// A concurrent caller may have populated the cache while this
		// call waited on the flight group.
		if rec, ok := r.cache.Get(key); ok {
			return rec, nil
		}

		raw, err := r.provider.Lookup(ctx, key)
		if err != nil {
			return domain.PackageRecord{}, err
		}

		rec := domain.ParseRecord(key, raw)
		r.cache.Put(rec)
		return rec, nil
	})
	if err != nil {
		return domain.PackageRecord{}, err
	}
	return v.(domain.PackageRecord), nil
}

// DirectDependencies returns the package's direct dependency names, with
// self-references dropped so a package requiring itself cannot loop.
func (r *Resolver) DirectDependencies(ctx context.Context, name string) ([]string, error) {
	key := domain.NormalizeName(name)
	rec, err := r.FetchRecord(ctx, key)
	if err != nil {
		return nil, err
	}

	deps := make([]string, 0, len(rec.Requires))
	for _, dep := range rec.Requires {
		if dep != key {
			deps = append(deps, dep)
		}
	}
	return deps, nil
}

// TransitiveDependencies computes the full dependency closure of root by
// iterative breadth-first expansion. The root itself is excluded from the
// initial frontier; cycles terminate because membership is checked against
// the accumulated set, not just the previous frontier.
func (r *Resolver) TransitiveDependencies(ctx context.Context, root string) (*domain.DependencySet, error) {
	rootKey := domain.NormalizeName(root)

	frontier, err := r.DirectDependencies(ctx, rootKey)
	if err != nil {
		return nil, err
	}

	set := domain.NewDependencySet()
	for len(frontier) > 0 {
		for _, name := range frontier {
			if set.Has(name) {
				continue
			}
			deps, err := r.DirectDependencies(ctx, name)
			if err != nil {
				return nil, err
			}
			set.Add(name, deps)
		}

		var next []string
		queued := make(map[string]struct{})
		for _, name := range set.Names() {
			for _, dep := range set.Direct(name) {
				if set.Has(dep) {
					continue
				}
				if _, ok := queued[dep]; ok {
					continue
				}
				queued[dep] = struct{}{}
				next = append(next, dep)
			}
		}
		frontier = next
	}

	r.logger.Info(fmt.Sprintf("resolved %d transitive dependencies for %s", set.Len(), rootKey))
	return set, nil
}

// Versions maps every closure member to its installed version.
func (r *Resolver) Versions(ctx context.Context, root string) (map[string]string, error) {
	set, err := r.TransitiveDependencies(ctx, root)
	if err != nil {
		return nil, err
	}

	versions := make(map[string]string, set.Len())
	for _, name := range set.Names() {
		rec, err := r.FetchRecord(ctx, name)
		if err != nil {
			return nil, err
		}
		versions[name] = rec.Version
	}
	return versions, nil
}

// Licenses maps every closure member to its raw declared license string.
// Packages that declare no license map to the empty string.
func (r *Resolver) Licenses(ctx context.Context, root string) (map[string]string, error) {
	set, err := r.TransitiveDependencies(ctx, root)
	if err != nil {
		return nil, err
	}

	licenses := make(map[string]string, set.Len())
	for _, name := range set.Names() {
		rec, err := r.FetchRecord(ctx, name)
		if err != nil {
			return nil, err
		}
		licenses[name] = rec.License
	}
	return licenses, nil
}
