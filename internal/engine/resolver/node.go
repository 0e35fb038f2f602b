package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/licheck/internal/adapters/logger"
	"go.trai.ch/licheck/internal/adapters/memcache"
	"go.trai.ch/licheck/internal/adapters/pip"
	"go.trai.ch/licheck/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			pip.NodeID,
			memcache.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			provider, err := graft.Dep[ports.MetadataProvider](ctx)
			if err != nil {
				return nil, err
			}

			cache, err := graft.Dep[ports.RecordCache](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(provider, cache, log), nil
		},
	})
}
