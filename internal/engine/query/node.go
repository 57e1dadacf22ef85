package query

import (
	"context"

	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/genie/internal/adapters/config"
	"go.trai.ch/genie/internal/adapters/logger"
	"go.trai.ch/genie/internal/adapters/telemetry"
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/genie/internal/core/ports"
)

// NodeID is the unique identifier for the query coordinator Graft node.
const NodeID graft.ID = "engine.query"

func init() {
	graft.Register(graft.Node[*Coordinator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ResolvedNodeID, logger.NodeID, telemetry.NodeID},
		Run: func(ctx context.Context) (*Coordinator, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
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
			return New(
				WithDefaultStaleAfter(cfg.StaleAfter),
				WithLogger(log),
				WithTracer(tracer),
			), nil
		},
	})
}
