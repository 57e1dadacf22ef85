package navigator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/genie/internal/adapters/logger"
	"go.trai.ch/genie/internal/core/ports"
)

// NodeID is the unique identifier for the navigator Graft node.
const NodeID graft.ID = "adapter.navigator"

func init() {
	graft.Register(graft.Node[ports.Navigator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Navigator, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
