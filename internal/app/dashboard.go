package app

import (
	"context"

	"go.trai.ch/genie/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// Dashboard is the landing view: the signed-in user with their apps and the featured apps.
type Dashboard struct {
	User     *domain.LoginUser
	Mine     *AppPage
	Featured *AppPage
}

// Dashboard loads the current user, the first page of the user's apps and the first page of
// featured apps concurrently.
func (a *App) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := a.CurrentUser(ctx)
		d.User = user
		return err
	})
	g.Go(func() error {
		page, err := a.MyApps(ctx, domain.AppQuery{})
		d.Mine = page
		return err
	})
	g.Go(func() error {
		page, err := a.FeaturedApps(ctx, domain.AppQuery{})
		d.Featured = page
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}
