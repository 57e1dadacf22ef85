package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/genie/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/genie/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/genie/internal/adapters/navigator" //nolint:depguard // Wired in app layer
	"go.trai.ch/genie/internal/adapters/sse"       //nolint:depguard // Wired in app layer
	"go.trai.ch/genie/internal/adapters/transport" //nolint:depguard // Wired in app layer
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/genie/internal/core/ports"
	"go.trai.ch/genie/internal/engine/query"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			transport.NodeID,
			sse.NodeID,
			query.NodeID,
			navigator.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.ResolvedNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	tr, err := graft.Dep[ports.Transport](ctx)
	if err != nil {
		return nil, err
	}

	dialer, err := graft.Dep[ports.StreamDialer](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[*query.Coordinator](ctx)
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

	return New(tr, dialer, cache, nav, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(application, log, cfg), nil
}
