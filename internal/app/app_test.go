package app_test

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/genie/internal/app"
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/genie/internal/core/ports/mocks"
	"go.trai.ch/genie/internal/engine/query"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app       *app.App
	transport *mocks.MockTransport
	dialer    *mocks.MockStreamDialer
	navigator *mocks.MockNavigator
	cache     *query.Coordinator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	f := &fixture{
		transport: mocks.NewMockTransport(ctrl),
		dialer:    mocks.NewMockStreamDialer(ctrl),
		navigator: mocks.NewMockNavigator(ctrl),
		cache:     query.New(query.WithDefaultStaleAfter(time.Minute)),
	}
	f.app = app.New(f.transport, f.dialer, f.cache, f.navigator, log)
	return f
}

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestCurrentUser_CachedForFiveMinutes(t *testing.T) {
	f := newFixture(t)
	user := &domain.LoginUser{ID: 1, UserAccount: "ada", UserName: "Ada"}

	f.transport.EXPECT().Get(gomock.Any(), "/user/get/login", gomock.Nil()).Return(raw(t, user), nil).Times(1)

	got, err := f.app.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user, got)

	again, err := f.app.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Same(t, got, again)

	entry, ok := f.cache.Entry(app.CurrentUserKey())
	require.True(t, ok)
	assert.Equal(t, "5m0s", entry.StaleAfter.String())
}

func TestCurrentUser_UnauthorizedIsSurfaced(t *testing.T) {
	f := newFixture(t)

	f.transport.EXPECT().Get(gomock.Any(), "/user/get/login", gomock.Nil()).
		Return(nil, &domain.RequestError{Kind: domain.KindUnauthorized, StatusCode: 401}).Times(1)

	_, err := f.app.CurrentUser(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestLogin_SetsCurrentUser(t *testing.T) {
	f := newFixture(t)
	user := &domain.LoginUser{ID: 1, UserAccount: "ada"}

	f.transport.EXPECT().
		Post(gomock.Any(), "/user/login", domain.LoginRequest{UserAccount: "ada", UserPassword: "secret"}).
		Return(raw(t, user), nil).Times(1)

	got, err := f.app.Login(context.Background(), "ada", "secret")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	current, err := f.app.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Same(t, got, current)
}

func TestLogin_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.Login(context.Background(), "", "secret")
	require.ErrorIs(t, err, domain.ErrMissingCredentials)
	_, err = f.app.Login(context.Background(), "ada", "")
	require.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestLogin_ApplicationError(t *testing.T) {
	f := newFixture(t)

	f.transport.EXPECT().Post(gomock.Any(), "/user/login", gomock.Any()).
		Return(nil, &domain.RequestError{Kind: domain.KindApplication, Code: 40000, Reason: "wrong password"})

	_, err := f.app.Login(context.Background(), "ada", "nope")
	require.ErrorIs(t, err, domain.ErrApplication)
	assert.Contains(t, err.Error(), "wrong password")
	assert.Empty(t, f.cache.Keys())
}

func TestRegister(t *testing.T) {
	t.Run("returns new id", func(t *testing.T) {
		f := newFixture(t)
		f.transport.EXPECT().
			Post(gomock.Any(), "/user/register", domain.RegisterRequest{
				UserAccount: "ada", UserPassword: "12345678", CheckPassword: "12345678",
			}).
			Return(json.RawMessage(`42`), nil)

		id, err := f.app.Register(context.Background(), "ada", "12345678", "12345678")
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("rejects mismatched confirmation", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.app.Register(context.Background(), "ada", "12345678", "87654321")
		require.ErrorIs(t, err, domain.ErrPasswordMismatch)
	})
}

func TestLogout_ClearsCache(t *testing.T) {
	f := newFixture(t)
	user := &domain.LoginUser{ID: 1}

	gomock.InOrder(
		f.transport.EXPECT().Get(gomock.Any(), "/user/get/login", gomock.Nil()).Return(raw(t, user), nil),
		f.transport.EXPECT().Post(gomock.Any(), "/user/logout", gomock.Nil()).Return(json.RawMessage(`true`), nil),
		f.transport.EXPECT().Get(gomock.Any(), "/user/get/login", gomock.Nil()).Return(json.RawMessage(`null`), nil),
	)

	_, err := f.app.CurrentUser(context.Background())
	require.NoError(t, err)
	f.cache.SetData(app.AppKey(3), &domain.App{ID: 3})

	require.NoError(t, f.app.Logout(context.Background()))
	assert.Empty(t, f.cache.Keys())

	current, err := f.app.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestLogout_FailureKeepsCache(t *testing.T) {
	f := newFixture(t)
	f.cache.SetData(app.CurrentUserKey(), &domain.LoginUser{ID: 1})

	f.transport.EXPECT().Post(gomock.Any(), "/user/logout", gomock.Nil()).
		Return(nil, &domain.RequestError{Kind: domain.KindServerError, StatusCode: 500})

	err := f.app.Logout(context.Background())
	require.ErrorIs(t, err, domain.ErrServerError)
	assert.Len(t, f.cache.Keys(), 1)
}

func TestApp_Detail(t *testing.T) {
	f := newFixture(t)

	f.transport.EXPECT().Get(gomock.Any(), "/app/get/vo", url.Values{"id": {"1"}}).
		Return(json.RawMessage(`{"id":1,"appName":"X"}`), nil).Times(1)

	got, err := f.app.App(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &domain.App{ID: 1, AppName: "X"}, got)

	entry, ok := f.cache.Entry(app.AppKey(1))
	require.True(t, ok)
	assert.Equal(t, domain.StatusResolved, entry.Status)
}

func TestApp_DisabledWithoutID(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.App(context.Background(), 0)
	require.ErrorIs(t, err, domain.ErrQueryDisabled)
}

func TestApp_ApplicationError(t *testing.T) {
	f := newFixture(t)

	f.transport.EXPECT().Get(gomock.Any(), "/app/get/vo", gomock.Any()).
		Return(nil, &domain.RequestError{Kind: domain.KindApplication, Code: 1, Reason: "bad request"})

	_, err := f.app.App(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrApplication)

	var reqErr *domain.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "bad request", reqErr.Message())

	entry, _ := f.cache.Entry(app.AppKey(1))
	assert.Equal(t, domain.StatusErrored, entry.Status)
}

func TestMyApps_AppliesPageDefaults(t *testing.T) {
	f := newFixture(t)
	page := app.AppPage{Records: []domain.App{{ID: 1}, {ID: 2}}, Total: 2, Current: 1, Size: 10}

	want := domain.AppQuery{PageRequest: domain.PageRequest{Current: 1, PageSize: 10}, AppName: "todo"}
	f.transport.EXPECT().Post(gomock.Any(), "/app/my/list/page/vo", want).Return(raw(t, page), nil).Times(1)

	got, err := f.app.MyApps(context.Background(), domain.AppQuery{AppName: "todo"})
	require.NoError(t, err)
	assert.Equal(t, &page, got)

	// The same logical parameters hit the same cache entry.
	_, err = f.app.MyApps(context.Background(), want)
	require.NoError(t, err)

	_, ok := f.cache.Entry(app.MyAppsKey(want))
	assert.True(t, ok)
}

func TestFeaturedApps(t *testing.T) {
	f := newFixture(t)

	f.transport.EXPECT().Post(gomock.Any(), "/app/good/list/page/vo", gomock.Any()).
		Return(json.RawMessage(`{"records":[{"id":9}],"total":1}`), nil)

	got, err := f.app.FeaturedApps(context.Background(), domain.AppQuery{})
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	assert.Equal(t, int64(9), got.Records[0].ID)
}

func TestCreateApp(t *testing.T) {
	f := newFixture(t)
	listQuery := domain.AppQuery{}
	f.cache.SetData(app.MyAppsKey(listQuery), &app.AppPage{})
	f.cache.SetData(app.AppKey(5), &domain.App{ID: 5})

	req := domain.AppAddRequest{InitPrompt: "a todo app", CodeGenType: domain.CodeGenMultiFile}
	f.transport.EXPECT().Post(gomock.Any(), "/app/add", req).Return(json.RawMessage(`77`), nil)

	id, err := f.app.CreateApp(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(77), id)

	listEntry, _ := f.cache.Entry(app.MyAppsKey(listQuery))
	assert.True(t, listEntry.Invalidated)
	detailEntry, _ := f.cache.Entry(app.AppKey(5))
	assert.False(t, detailEntry.Invalidated)
}

func TestCreateApp_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.CreateApp(context.Background(), domain.AppAddRequest{})
	require.ErrorIs(t, err, domain.ErrMissingPrompt)

	_, err = f.app.CreateApp(context.Background(), domain.AppAddRequest{InitPrompt: "x", CodeGenType: "react"})
	require.ErrorIs(t, err, domain.ErrInvalidCodeGenType)
}

func TestUpdateApp_InvalidatesDetailAndLists(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)

		gomock.InOrder(
			f.transport.EXPECT().Get(gomock.Any(), "/app/get/vo", gomock.Any()).
				Return(json.RawMessage(`{"id":1,"appName":"X"}`), nil),
			f.transport.EXPECT().Post(gomock.Any(), "/app/update",
				domain.AppUpdateRequest{ID: 1, AppName: "Y"}).Return(json.RawMessage(`true`), nil),
			f.transport.EXPECT().Get(gomock.Any(), "/app/get/vo", gomock.Any()).
				Return(json.RawMessage(`{"id":1,"appName":"Y"}`), nil),
		)

		_, err := f.app.App(context.Background(), 1)
		require.NoError(t, err)
		f.cache.SetData(app.FeaturedAppsKey(domain.AppQuery{}), &app.AppPage{})
		f.cache.SetData(app.AppKey(2), &domain.App{ID: 2})

		require.NoError(t, f.app.UpdateApp(context.Background(), domain.AppUpdateRequest{ID: 1, AppName: "Y"}))

		for _, key := range []domain.QueryKey{app.AppKey(1), app.FeaturedAppsKey(domain.AppQuery{})} {
			entry, _ := f.cache.Entry(key)
			assert.True(t, entry.Invalidated, key.String())
		}
		other, _ := f.cache.Entry(app.AppKey(2))
		assert.False(t, other.Invalidated)

		// The stale value is shown while the refetch runs.
		shown, err := f.app.App(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "X", shown.AppName)

		synctest.Wait()
		refreshed, err := f.app.App(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Y", refreshed.AppName)
	})
}

func TestUpdateApp_FailureLeavesCacheUnchanged(t *testing.T) {
	f := newFixture(t)
	f.cache.SetData(app.AppKey(1), &domain.App{ID: 1})
	before, _ := f.cache.Entry(app.AppKey(1))

	f.transport.EXPECT().Post(gomock.Any(), "/app/update", gomock.Any()).
		Return(nil, &domain.RequestError{Kind: domain.KindApplication, Code: 1, Reason: "bad request"})

	err := f.app.UpdateApp(context.Background(), domain.AppUpdateRequest{ID: 1, AppName: "Y"})
	require.ErrorIs(t, err, domain.ErrApplication)

	after, _ := f.cache.Entry(app.AppKey(1))
	assert.Equal(t, before, after)
}

func TestDeleteApp(t *testing.T) {
	f := newFixture(t)
	f.cache.SetData(app.AppKey(4), &domain.App{ID: 4})

	f.transport.EXPECT().Post(gomock.Any(), "/app/delete", domain.IDRequest{ID: 4}).Return(json.RawMessage(`true`), nil)

	require.NoError(t, f.app.DeleteApp(context.Background(), 4))
	entry, _ := f.cache.Entry(app.AppKey(4))
	assert.True(t, entry.Invalidated)

	require.ErrorIs(t, f.app.DeleteApp(context.Background(), 0), domain.ErrInvalidAppID)
}

func TestDeployApp(t *testing.T) {
	f := newFixture(t)
	f.cache.SetData(app.AppKey(4), &domain.App{ID: 4})

	f.transport.EXPECT().Post(gomock.Any(), "/app/deploy", domain.IDRequest{ID: 4}).
		Return(json.RawMessage(`"http://localhost:8123/api/static/abc/index.html"`), nil)

	deployed, err := f.app.DeployApp(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8123/api/static/abc/index.html", deployed)

	entry, _ := f.cache.Entry(app.AppKey(4))
	assert.True(t, entry.Invalidated)
}

func TestURLs(t *testing.T) {
	f := newFixture(t)

	f.transport.EXPECT().URL("/app/download/4", gomock.Nil()).Return("http://api/app/download/4")
	f.transport.EXPECT().URL("/static/abc/index.html", gomock.Nil()).Return("http://api/static/abc/index.html")

	assert.Equal(t, "http://api/app/download/4", f.app.DownloadURL(4))
	assert.Equal(t, "http://api/static/abc/index.html", f.app.DeployedURL("abc"))
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)

	f.transport.EXPECT().Get(gomock.Any(), "/user/get/login", gomock.Nil()).
		Return(json.RawMessage(`{"id":1,"userAccount":"ada"}`), nil)
	f.transport.EXPECT().Post(gomock.Any(), "/app/my/list/page/vo", gomock.Any()).
		Return(json.RawMessage(`{"records":[{"id":1}],"total":1}`), nil)
	f.transport.EXPECT().Post(gomock.Any(), "/app/good/list/page/vo", gomock.Any()).
		Return(json.RawMessage(`{"records":[{"id":2},{"id":3}],"total":2}`), nil)

	d, err := f.app.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ada", d.User.UserAccount)
	assert.Len(t, d.Mine.Records, 1)
	assert.Len(t, d.Featured.Records, 2)
	assert.Len(t, f.cache.Keys(), 3)
}

func TestDashboard_PropagatesFailure(t *testing.T) {
	f := newFixture(t)

	f.transport.EXPECT().Get(gomock.Any(), "/user/get/login", gomock.Nil()).
		Return(nil, &domain.RequestError{Kind: domain.KindUnauthorized, StatusCode: 401})
	f.transport.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(json.RawMessage(`{"records":[]}`), nil).AnyTimes()

	_, err := f.app.Dashboard(context.Background())
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestEnter(t *testing.T) {
	f := newFixture(t)
	f.navigator.EXPECT().SetCurrentPath("/apps/7")

	f.app.Enter("/apps/7")
}
