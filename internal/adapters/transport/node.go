package transport

import (
	"context"

	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/genie/internal/adapters/config"
	"go.trai.ch/genie/internal/adapters/logger"
	"go.trai.ch/genie/internal/adapters/navigator"
	"go.trai.ch/genie/internal/adapters/telemetry"
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/genie/internal/core/ports"
)

// NodeID is the unique identifier for the transport Graft node.
const NodeID graft.ID = "adapter.transport"

func init() {
	graft.Register(graft.Node[ports.Transport]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ResolvedNodeID,
			navigator.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runTransportNode,
	})
}

func runTransportNode(ctx context.Context) (ports.Transport, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}
	nav, err := graft.Dep[ports.Navigator](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[trace.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	return New(cfg, nav, log, WithTracer(tracer))
}
