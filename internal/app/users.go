package app

import (
	"context"
	"time"

	"go.trai.ch/genie/internal/adapters/transport"
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/genie/internal/engine/query"
	"go.trai.ch/zerr"
)

const currentUserStaleAfter = 5 * time.Minute

// CurrentUser returns the signed-in user. A nil user means the session is anonymous.
func (a *App) CurrentUser(ctx context.Context) (*domain.LoginUser, error) {
	user, err := query.Read(ctx, a.cache, CurrentUserKey(), func(ctx context.Context) (*domain.LoginUser, error) {
		raw, err := a.transport.Get(ctx, "/user/get/login", nil)
		if err != nil {
			return nil, err
		}
		return transport.Decode[*domain.LoginUser](raw)
	}, query.StaleAfter(currentUserStaleAfter))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load current user")
	}
	return user, nil
}

// Login signs in and stores the returned user as the current user.
func (a *App) Login(ctx context.Context, account, password string) (*domain.LoginUser, error) {
	if account == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := query.Mutate(ctx, a.cache, loginMutation(), func(ctx context.Context) (*domain.LoginUser, error) {
		raw, err := a.transport.Post(ctx, "/user/login", domain.LoginRequest{
			UserAccount:  account,
			UserPassword: password,
		})
		if err != nil {
			return nil, err
		}
		return transport.Decode[*domain.LoginUser](raw)
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "login failed"), "account", account)
	}

	a.cache.SetData(CurrentUserKey(), user)
	return user, nil
}

// Register creates an account and returns its id. It does not sign in.
func (a *App) Register(ctx context.Context, account, password, confirm string) (int64, error) {
	if account == "" || password == "" {
		return 0, domain.ErrMissingCredentials
	}
	if password != confirm {
		return 0, domain.ErrPasswordMismatch
	}

	id, err := query.Mutate(ctx, a.cache, registerMutation(), func(ctx context.Context) (int64, error) {
		raw, err := a.transport.Post(ctx, "/user/register", domain.RegisterRequest{
			UserAccount:   account,
			UserPassword:  password,
			CheckPassword: confirm,
		})
		if err != nil {
			return 0, err
		}
		return transport.Decode[int64](raw)
	})
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "registration failed"), "account", account)
	}
	return id, nil
}

// Logout ends the session and discards every cached entry.
func (a *App) Logout(ctx context.Context) error {
	_, err := query.Mutate(ctx, a.cache, logoutMutation(), func(ctx context.Context) (bool, error) {
		raw, err := a.transport.Post(ctx, "/user/logout", nil)
		if err != nil {
			return false, err
		}
		return transport.Decode[bool](raw)
	})
	if err != nil {
		return zerr.Wrap(err, "logout failed")
	}

	a.cache.ClearAll()
	return nil
}

// SessionCookie returns the session the transport currently holds, empty if none.
func (a *App) SessionCookie() string {
	type sessionHolder interface {
		SessionCookie() string
	}
	if sh, ok := a.transport.(sessionHolder); ok {
		return sh.SessionCookie()
	}
	return ""
}
