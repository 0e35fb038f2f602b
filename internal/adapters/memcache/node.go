package memcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/licheck/internal/core/ports"
)

// NodeID is the unique identifier for the record cache Graft node.
const NodeID graft.ID = "adapter.record_cache"

func init() {
	graft.Register(graft.Node[ports.RecordCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RecordCache, error) {
			return New(), nil
		},
	})
}
