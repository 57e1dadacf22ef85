package app

import (
	"context"
	"net/url"
	"strconv"

	"go.trai.ch/genie/internal/adapters/transport"
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/genie/internal/engine/query"
	"go.trai.ch/zerr"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// AppPage is a page of apps.
type AppPage = domain.Page[domain.App]

// App returns the detail of app id. The read is disabled for id zero, so it only serves what
// is already cached.
func (a *App) App(ctx context.Context, id int64) (*domain.App, error) {
	app, err := query.Read(ctx, a.cache, AppKey(id), func(ctx context.Context) (*domain.App, error) {
		raw, err := a.transport.Get(ctx, "/app/get/vo", url.Values{"id": {strconv.FormatInt(id, 10)}})
		if err != nil {
			return nil, err
		}
		return transport.Decode[*domain.App](raw)
	}, query.Enabled(id != 0))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to load app"), "app_id", id)
	}
	return app, nil
}

// MyApps returns a page of the signed-in user's apps.
func (a *App) MyApps(ctx context.Context, q domain.AppQuery) (*AppPage, error) {
	q = withPageDefaults(q)
	page, err := a.listApps(ctx, MyAppsKey(q), "/app/my/list/page/vo", q)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list my apps")
	}
	return page, nil
}

// FeaturedApps returns a page of featured apps.
func (a *App) FeaturedApps(ctx context.Context, q domain.AppQuery) (*AppPage, error) {
	q = withPageDefaults(q)
	page, err := a.listApps(ctx, FeaturedAppsKey(q), "/app/good/list/page/vo", q)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list featured apps")
	}
	return page, nil
}

func (a *App) listApps(ctx context.Context, key domain.QueryKey, path string, q domain.AppQuery) (*AppPage, error) {
	return query.Read(ctx, a.cache, key, func(ctx context.Context) (*AppPage, error) {
		raw, err := a.transport.Post(ctx, path, q)
		if err != nil {
			return nil, err
		}
		return transport.Decode[*AppPage](raw)
	})
}

func withPageDefaults(q domain.AppQuery) domain.AppQuery {
	if q.Current <= 0 {
		q.Current = defaultPage
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultPageSize
	}
	return q
}

// CreateApp creates an app from an initial prompt and returns its id.
func (a *App) CreateApp(ctx context.Context, req domain.AppAddRequest) (int64, error) {
	if req.InitPrompt == "" {
		return 0, domain.ErrMissingPrompt
	}
	if !req.CodeGenType.Valid() {
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidCodeGenType, "invalid app"), "type", string(req.CodeGenType))
	}

	id, err := query.Mutate(ctx, a.cache, createAppMutation(), func(ctx context.Context) (int64, error) {
		raw, err := a.transport.Post(ctx, "/app/add", req)
		if err != nil {
			return 0, err
		}
		return transport.Decode[int64](raw)
	})
	if err != nil {
		return 0, zerr.Wrap(err, "failed to create app")
	}
	return id, nil
}

// UpdateApp changes an app's name or cover.
func (a *App) UpdateApp(ctx context.Context, req domain.AppUpdateRequest) error {
	if req.ID <= 0 {
		return domain.ErrInvalidAppID
	}

	_, err := query.Mutate(ctx, a.cache, updateAppMutation(req.ID), func(ctx context.Context) (bool, error) {
		raw, err := a.transport.Post(ctx, "/app/update", req)
		if err != nil {
			return false, err
		}
		return transport.Decode[bool](raw)
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to update app"), "app_id", req.ID)
	}
	return nil
}

// DeleteApp deletes an app.
func (a *App) DeleteApp(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidAppID
	}

	_, err := query.Mutate(ctx, a.cache, deleteAppMutation(id), func(ctx context.Context) (bool, error) {
		raw, err := a.transport.Post(ctx, "/app/delete", domain.IDRequest{ID: id})
		if err != nil {
			return false, err
		}
		return transport.Decode[bool](raw)
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to delete app"), "app_id", id)
	}
	return nil
}

// DeployApp deploys an app and returns the URL it is served at.
func (a *App) DeployApp(ctx context.Context, id int64) (string, error) {
	if id <= 0 {
		return "", domain.ErrInvalidAppID
	}

	deployed, err := query.Mutate(ctx, a.cache, deployAppMutation(id), func(ctx context.Context) (string, error) {
		raw, err := a.transport.Post(ctx, "/app/deploy", domain.IDRequest{ID: id})
		if err != nil {
			return "", err
		}
		return transport.Decode[string](raw)
	})
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to deploy app"), "app_id", id)
	}
	return deployed, nil
}

// DownloadURL returns the URL of an app's source archive.
func (a *App) DownloadURL(id int64) string {
	return a.transport.URL("/app/download/"+strconv.FormatInt(id, 10), nil)
}

// DeployedURL returns the URL a deployed app is served at.
func (a *App) DeployedURL(deployKey string) string {
	return a.transport.URL("/static/"+url.PathEscape(deployKey)+"/index.html", nil)
}
