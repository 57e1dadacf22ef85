package query_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/genie/internal/engine/query"
)

func TestTypedRead(t *testing.T) {
	c := query.New()

	got, err := query.Read(context.Background(), c, appKey, func(_ context.Context) (*domain.App, error) {
		return &domain.App{ID: 1, AppName: "X"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, &domain.App{ID: 1, AppName: "X"}, got)

	cached, err := query.Read(context.Background(), c, appKey, func(_ context.Context) (*domain.App, error) {
		t.Fatal("fresh value must be served from cache")
		return nil, nil
	}, query.StaleAfter(1<<62))
	require.NoError(t, err)
	assert.Same(t, got, cached)
}

func TestTypedRead_NilValue(t *testing.T) {
	c := query.New()

	got, err := query.Read(context.Background(), c, userKey, func(_ context.Context) (*domain.LoginUser, error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTypedRead_TypeMismatch(t *testing.T) {
	c := query.New()
	c.SetData(appKey, "not an app")

	_, err := query.Read(context.Background(), c, appKey, func(_ context.Context) (*domain.App, error) {
		return nil, nil
	}, query.Enabled(false))
	require.ErrorIs(t, err, domain.ErrCacheTypeMismatch)
}

func TestTypedRead_Error(t *testing.T) {
	c := query.New()
	failure := errors.New("boom")

	got, err := query.Read(context.Background(), c, appKey, func(_ context.Context) (int, error) {
		return 7, failure
	})
	require.ErrorIs(t, err, failure)
	assert.Zero(t, got)
}

func TestTypedMutate(t *testing.T) {
	c := query.New()
	c.SetData(appKey, &domain.App{ID: 1})

	url, err := query.Mutate(context.Background(), c, domain.NewMutation("deploy app", appKey),
		func(_ context.Context) (string, error) {
			return "http://localhost/static/abc/index.html", nil
		})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/static/abc/index.html", url)

	entry, _ := c.Entry(appKey)
	assert.True(t, entry.Invalidated)
}
