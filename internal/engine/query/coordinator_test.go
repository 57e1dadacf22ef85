package query_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/genie/internal/engine/query"
)

var (
	appKey  = domain.NewQueryKey("app", 1)
	appsKey = domain.NewQueryKey("apps")
	myKey   = domain.NewQueryKey("apps", "my", map[string]any{"current": 1, "pageSize": 20})
	userKey = domain.NewQueryKey("user", "current")
)

type app struct {
	ID   int
	Name string
}

// countingFetcher returns value and counts invocations.
func countingFetcher(calls *atomic.Int32, value any) query.Fetcher {
	return func(_ context.Context) (any, error) {
		calls.Add(1)
		return value, nil
	}
}

func TestRead_StoresResolvedValue(t *testing.T) {
	c := query.New()
	var calls atomic.Int32

	got, err := c.Read(context.Background(), appKey, countingFetcher(&calls, app{ID: 1, Name: "X"}))
	require.NoError(t, err)
	assert.Equal(t, app{ID: 1, Name: "X"}, got)

	entry, ok := c.Entry(appKey)
	require.True(t, ok)
	assert.Equal(t, domain.StatusResolved, entry.Status)
	assert.Equal(t, app{ID: 1, Name: "X"}, entry.Value)
	assert.NoError(t, entry.Err)
	assert.False(t, entry.FetchedAt.IsZero())
	assert.False(t, entry.Fetching)
}

func TestRead_ConcurrentReadsShareOneFetch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := query.New()
		var calls atomic.Int32
		release := make(chan struct{})

		fetch := func(_ context.Context) (any, error) {
			calls.Add(1)
			<-release
			return "value", nil
		}

		var wg sync.WaitGroup
		results := make([]any, 5)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := c.Read(context.Background(), appKey, fetch)
				assert.NoError(t, err)
				results[i] = v
			}()
		}

		synctest.Wait()
		entry, _ := c.Entry(appKey)
		assert.Equal(t, domain.StatusPending, entry.Status)
		assert.True(t, entry.Fetching)

		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		for _, r := range results {
			assert.Equal(t, "value", r)
		}
	})
}

func TestRead_FreshValueSkipsFetcher(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := query.New()
		var calls atomic.Int32

		for range 3 {
			_, err := c.Read(context.Background(), userKey, countingFetcher(&calls, "me"), query.StaleAfter(5*time.Minute))
			require.NoError(t, err)
			time.Sleep(time.Minute)
		}

		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestRead_StaleValue(t *testing.T) {
	t.Run("must refresh waits for new value", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			c := query.New()
			var calls atomic.Int32
			fetch := func(_ context.Context) (any, error) {
				return int(calls.Add(1)), nil
			}

			_, err := c.Read(context.Background(), appKey, fetch, query.StaleAfter(time.Minute))
			require.NoError(t, err)

			time.Sleep(2 * time.Minute)
			got, err := c.Read(context.Background(), appKey, fetch,
				query.StaleAfter(time.Minute), query.Policy(query.MustRefresh))
			require.NoError(t, err)
			assert.Equal(t, 2, got)
		})
	})

	t.Run("use if stale serves old value and refreshes in background", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			c := query.New()
			var calls atomic.Int32
			fetch := func(_ context.Context) (any, error) {
				return int(calls.Add(1)), nil
			}

			_, err := c.Read(context.Background(), appKey, fetch, query.StaleAfter(time.Minute))
			require.NoError(t, err)

			time.Sleep(2 * time.Minute)
			got, err := c.Read(context.Background(), appKey, fetch, query.StaleAfter(time.Minute))
			require.NoError(t, err)
			assert.Equal(t, 1, got)

			synctest.Wait()
			assert.Equal(t, int32(2), calls.Load())
			entry, _ := c.Entry(appKey)
			assert.Equal(t, 2, entry.Value)
			assert.False(t, entry.IsStale(time.Now()))
		})
	})
}

func TestRead_DefaultStaleAfter(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := query.New(query.WithDefaultStaleAfter(time.Hour))
		var calls atomic.Int32

		_, err := c.Read(context.Background(), appKey, countingFetcher(&calls, "a"))
		require.NoError(t, err)

		entry, _ := c.Entry(appKey)
		assert.Equal(t, time.Hour, entry.StaleAfter)

		time.Sleep(30 * time.Minute)
		_, err = c.Read(context.Background(), appKey, countingFetcher(&calls, "a"), query.Policy(query.MustRefresh))
		require.NoError(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestRead_FailureIsTerminalByDefault(t *testing.T) {
	c := query.New()
	var calls atomic.Int32
	appErr := &domain.RequestError{Kind: domain.KindApplication, Code: 1, Reason: "bad request"}

	_, err := c.Read(context.Background(), appKey, func(_ context.Context) (any, error) {
		calls.Add(1)
		return nil, appErr
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrApplication)
	assert.Equal(t, "bad request", err.Error())
	assert.Equal(t, int32(1), calls.Load())

	entry, _ := c.Entry(appKey)
	assert.Equal(t, domain.StatusErrored, entry.Status)
	assert.Equal(t, appErr, entry.Err)

	got, err := c.Read(context.Background(), appKey, countingFetcher(&calls, "recovered"))
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRead_ErrorKeepsPreviousValue(t *testing.T) {
	c := query.New()
	var calls atomic.Int32

	_, err := c.Read(context.Background(), appKey, countingFetcher(&calls, "v1"))
	require.NoError(t, err)
	c.Invalidate(appKey)

	_, err = c.Read(context.Background(), appKey, func(_ context.Context) (any, error) {
		return nil, errors.New("boom")
	}, query.Policy(query.MustRefresh))
	require.Error(t, err)

	entry, _ := c.Entry(appKey)
	assert.Equal(t, domain.StatusErrored, entry.Status)
	assert.Equal(t, "v1", entry.Value)
	assert.True(t, entry.HasValue())
}

func TestRead_Retry(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := query.New()
		var calls atomic.Int32
		start := time.Now()

		got, err := c.Read(context.Background(), appKey, func(_ context.Context) (any, error) {
			if calls.Add(1) < 3 {
				return nil, errors.New("flaky")
			}
			return "ok", nil
		}, query.Retry(3, time.Second))

		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, int32(3), calls.Load())
		assert.Equal(t, 2*time.Second, time.Since(start))
	})
}

func TestRead_RetryExhausted(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := query.New()
		var calls atomic.Int32
		failure := errors.New("down")

		_, err := c.Read(context.Background(), appKey, func(_ context.Context) (any, error) {
			calls.Add(1)
			return nil, failure
		}, query.Retry(2, time.Second))

		require.ErrorIs(t, err, failure)
		assert.Equal(t, int32(3), calls.Load())
	})
}

func TestRead_Disabled(t *testing.T) {
	c := query.New()
	var calls atomic.Int32

	_, err := c.Read(context.Background(), appKey, countingFetcher(&calls, "x"), query.Enabled(false))
	require.ErrorIs(t, err, domain.ErrQueryDisabled)
	assert.Equal(t, int32(0), calls.Load())

	c.SetData(appKey, "seeded")
	got, err := c.Read(context.Background(), appKey, countingFetcher(&calls, "x"), query.Enabled(false))
	require.NoError(t, err)
	assert.Equal(t, "seeded", got)
	assert.Equal(t, int32(0), calls.Load())
}

func TestRead_ZeroKey(t *testing.T) {
	c := query.New()
	_, err := c.Read(context.Background(), domain.QueryKey{}, countingFetcher(new(atomic.Int32), nil))
	require.ErrorIs(t, err, domain.ErrInvalidQueryKey)
}

func TestRead_CallerCancellationDoesNotAbortFetch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := query.New()
		release := make(chan struct{})
		ctx, cancel := context.WithCancel(context.Background())

		errCh := make(chan error, 1)
		go func() {
			_, err := c.Read(ctx, appKey, func(fetchCtx context.Context) (any, error) {
				<-release
				return "late", fetchCtx.Err()
			})
			errCh <- err
		}()

		synctest.Wait()
		cancel()
		assert.ErrorIs(t, <-errCh, context.Canceled)

		close(release)
		synctest.Wait()

		entry, _ := c.Entry(appKey)
		assert.Equal(t, domain.StatusResolved, entry.Status)
		assert.Equal(t, "late", entry.Value)
	})
}

func TestMutate_InvalidatesMatchingKeys(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := query.New()
		var calls atomic.Int32

		for _, k := range []domain.QueryKey{appKey, myKey, userKey} {
			_, err := c.Read(context.Background(), k, countingFetcher(&calls, k.String()), query.StaleAfter(time.Hour))
			require.NoError(t, err)
		}
		require.Equal(t, int32(3), calls.Load())

		update := domain.NewMutation("update app", appKey, appsKey)
		got, err := c.Mutate(context.Background(), update, func(_ context.Context) (any, error) {
			return true, nil
		})
		require.NoError(t, err)
		assert.Equal(t, true, got)

		for _, k := range []domain.QueryKey{appKey, myKey} {
			entry, _ := c.Entry(k)
			assert.True(t, entry.Invalidated, k.String())
			assert.True(t, entry.IsStale(time.Now()), k.String())
			assert.Equal(t, k.String(), entry.Value, "value kept for display")
		}
		userEntry, _ := c.Entry(userKey)
		assert.False(t, userEntry.Invalidated)

		got, err = c.Read(context.Background(), appKey, countingFetcher(&calls, "refetched"),
			query.StaleAfter(time.Hour), query.Policy(query.MustRefresh))
		require.NoError(t, err)
		assert.Equal(t, "refetched", got)
		assert.Equal(t, int32(4), calls.Load())

		entry, _ := c.Entry(appKey)
		assert.False(t, entry.Invalidated)
	})
}

func TestMutate_InvalidationTriggersBackgroundRefetch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := query.New()
		var calls atomic.Int32

		_, err := c.Read(context.Background(), appKey, countingFetcher(&calls, "old"), query.StaleAfter(time.Hour))
		require.NoError(t, err)

		_, err = c.Mutate(context.Background(), domain.NewMutation("update app", appKey),
			func(_ context.Context) (any, error) { return nil, nil })
		require.NoError(t, err)

		got, err := c.Read(context.Background(), appKey, countingFetcher(&calls, "new"), query.StaleAfter(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "old", got)

		synctest.Wait()
		assert.Equal(t, int32(2), calls.Load())
		entry, _ := c.Entry(appKey)
		assert.Equal(t, "new", entry.Value)
	})
}

func TestMutate_FailureLeavesCacheUntouched(t *testing.T) {
	c := query.New()
	var calls atomic.Int32

	_, err := c.Read(context.Background(), appKey, countingFetcher(&calls, "v"), query.StaleAfter(time.Hour))
	require.NoError(t, err)
	before, _ := c.Entry(appKey)

	appErr := &domain.RequestError{Kind: domain.KindApplication, Code: 1, Reason: "bad request"}
	_, err = c.Mutate(context.Background(), domain.NewMutation("update app", appKey, appsKey),
		func(_ context.Context) (any, error) { return nil, appErr })
	require.ErrorIs(t, err, domain.ErrApplication)
	assert.Equal(t, "bad request", err.Error())

	after, _ := c.Entry(appKey)
	assert.Equal(t, before, after)
}

func TestInvalidate_DuringFetchLeavesResultStale(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := query.New()
		release := make(chan struct{})

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = c.Read(context.Background(), appKey, func(_ context.Context) (any, error) {
				<-release
				return "fetched before write", nil
			}, query.StaleAfter(time.Hour))
		}()

		synctest.Wait()
		assert.Equal(t, 1, c.Invalidate(appsKey, appKey))
		close(release)
		<-done

		entry, _ := c.Entry(appKey)
		assert.Equal(t, domain.StatusResolved, entry.Status)
		assert.Equal(t, "fetched before write", entry.Value)
		assert.True(t, entry.IsStale(time.Now()))
	})
}

func TestSetData_WinsOverInFlightFetch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := query.New()
		release := make(chan struct{})

		var got any
		done := make(chan struct{})
		go func() {
			defer close(done)
			got, _ = c.Read(context.Background(), userKey, func(_ context.Context) (any, error) {
				<-release
				return "anonymous", nil
			})
		}()

		synctest.Wait()
		c.SetData(userKey, "signed in")
		close(release)
		<-done

		assert.Equal(t, "signed in", got)
		entry, _ := c.Entry(userKey)
		assert.Equal(t, "signed in", entry.Value)
	})
}

func TestClearAll(t *testing.T) {
	c := query.New()
	var calls atomic.Int32

	for _, k := range []domain.QueryKey{appKey, myKey, userKey} {
		_, err := c.Read(context.Background(), k, countingFetcher(&calls, "v"), query.StaleAfter(time.Hour))
		require.NoError(t, err)
	}
	require.Len(t, c.Keys(), 3)

	c.ClearAll()
	assert.Empty(t, c.Keys())
	_, ok := c.Entry(appKey)
	assert.False(t, ok)

	_, err := c.Read(context.Background(), appKey, countingFetcher(&calls, "v"), query.StaleAfter(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int32(4), calls.Load())
}

func TestClearAll_DuringFetch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := query.New()
		var calls atomic.Int32
		release := make(chan struct{})

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = c.Read(context.Background(), userKey, func(_ context.Context) (any, error) {
				calls.Add(1)
				<-release
				return "before logout", nil
			})
		}()

		synctest.Wait()
		c.ClearAll()

		got, err := c.Read(context.Background(), userKey, countingFetcher(&calls, "after logout"))
		require.NoError(t, err)
		assert.Equal(t, "after logout", got)

		close(release)
		<-done

		entry, ok := c.Entry(userKey)
		require.True(t, ok)
		assert.Equal(t, "after logout", entry.Value)
		assert.Equal(t, int32(2), calls.Load())
	})
}

func TestKeys_Sorted(t *testing.T) {
	c := query.New()
	c.SetData(userKey, 1)
	c.SetData(appKey, 2)
	c.SetData(appsKey, 3)

	keys := c.Keys()
	require.Len(t, keys, 3)
	assert.Equal(t, []string{`["app",1]`, `["apps"]`, `["user","current"]`},
		[]string{keys[0].String(), keys[1].String(), keys[2].String()})
}

func TestCoordinators_AreIndependent(t *testing.T) {
	a := query.New()
	b := query.New()

	a.SetData(appKey, "a")
	_, ok := b.Entry(appKey)
	assert.False(t, ok)

	b.ClearAll()
	entry, ok := a.Entry(appKey)
	require.True(t, ok)
	assert.Equal(t, "a", entry.Value)
}
