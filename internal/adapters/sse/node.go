package sse

import (
	"context"

	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/genie/internal/adapters/logger"
	"go.trai.ch/genie/internal/adapters/telemetry"
	"go.trai.ch/genie/internal/adapters/transport"
	"go.trai.ch/genie/internal/core/ports"
)

// NodeID is the unique identifier for the stream dialer Graft node.
const NodeID graft.ID = "adapter.sse"

func init() {
	graft.Register(graft.Node[ports.StreamDialer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{transport.NodeID, logger.NodeID, telemetry.NodeID},
		Run: func(ctx context.Context) (ports.StreamDialer, error) {
			tr, err := graft.Dep[ports.Transport](ctx)
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
			return NewDialer(tr, log, tracer), nil
		},
	})
}
