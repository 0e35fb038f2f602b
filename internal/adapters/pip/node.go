package pip

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/licheck/internal/core/ports"
)

// NodeID is the unique identifier for the pip provider Graft node.
const NodeID graft.ID = "adapter.pip_provider"

func init() {
	graft.Register(graft.Node[ports.MetadataProvider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MetadataProvider, error) {
			return New(), nil
		},
	})
}
