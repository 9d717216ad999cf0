package query_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauthier-se/Checkpoint/internal/query"
)

const ttl = 5 * time.Minute

func TestResolve_FreshValueSkipsFetch(t *testing.T) {
	c := query.New()
	key := query.NewKey("auth", "me")
	var calls atomic.Int32

	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		return "alice", nil
	}

	v, err := query.Resolve(context.Background(), c, key, ttl, fetch)
	require.NoError(t, err)
	assert.Equal(t, "alice", v)

	v, err = query.Resolve(context.Background(), c, key, ttl, fetch)
	require.NoError(t, err)
	assert.Equal(t, "alice", v)
	assert.Equal(t, int32(1), calls.Load(), "second call within the freshness window must not fetch")
}

func TestResolve_FreshnessWindowExpires(t *testing.T) {
	now := time.Now()
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	c := query.New(query.WithClock(clock))
	key := query.NewKey("auth", "me")
	var calls atomic.Int32

	fetch := func(context.Context) (int, error) {
		calls.Add(1)
		return int(calls.Load()), nil
	}

	_, err := query.Resolve(context.Background(), c, key, ttl, fetch)
	require.NoError(t, err)

	mu.Lock()
	now = now.Add(ttl + time.Second)
	mu.Unlock()

	v, err := query.Resolve(context.Background(), c, key, ttl, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "stale-by-time entry must refetch")
	assert.Equal(t, int32(2), calls.Load())
}

func TestInvalidate_ForcesExactlyOneRefetch(t *testing.T) {
	c := query.New()
	key := query.NewKey("library", "me")
	var calls atomic.Int32

	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		return "v", nil
	}

	_, err := query.Resolve(context.Background(), c, key, ttl, fetch)
	require.NoError(t, err)

	c.Invalidate(key)
	_, ok := c.Lookup(key)
	assert.False(t, ok, "invalidated entry must not be served as fresh")

	_, err = query.Resolve(context.Background(), c, key, ttl, fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())

	_, err = query.Resolve(context.Background(), c, key, ttl, fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "refetched entry is fresh again")
}

func TestResolve_ConcurrentCallersShareOneFetch(t *testing.T) {
	c := query.New()
	key := query.NewKey("auth", "me")

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const callers = 8
	results := make([]string, callers)
	errs := make([]error, callers)
	var started, done sync.WaitGroup
	started.Add(callers)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer done.Done()
			started.Done()
			results[i], errs[i] = query.Resolve(context.Background(), c, key, ttl, fetch)
		}(i)
	}
	started.Wait()
	// Give every caller a chance to reach the flight before releasing it.
	time.Sleep(10 * time.Millisecond)
	close(release)
	done.Wait()

	assert.Equal(t, int32(1), calls.Load(), "all callers must attach to one outbound fetch")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i])
	}
}

func TestResolve_FlightSurvivesFirstCallerCancellation(t *testing.T) {
	c := query.New()
	key := query.NewKey("auth", "me")

	fetchEntered := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		close(fetchEntered)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-release:
			return "shared", nil
		}
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, _ = query.Resolve(firstCtx, c, key, ttl, fetch)
	}()
	<-fetchEntered

	secondDone := make(chan struct{})
	var v string
	var err error
	go func() {
		defer close(secondDone)
		v, err = query.Resolve(context.Background(), c, key, ttl, fetch)
	}()
	// Give the second caller a chance to join the flight, then tear down the
	// request that started it.
	time.Sleep(10 * time.Millisecond)
	cancelFirst()
	time.Sleep(10 * time.Millisecond)
	close(release)
	<-firstDone
	<-secondDone

	require.NoError(t, err, "a joined caller must not inherit the initiator's cancellation")
	assert.Equal(t, "shared", v)

	cached, ok := query.Lookup[string](c, key)
	require.True(t, ok, "the detached flight must still populate the cache")
	assert.Equal(t, "shared", cached)
}

func TestSet_WinsOverInFlightFetch(t *testing.T) {
	c := query.New()
	key := query.NewKey("auth", "me")

	fetchEntered := make(chan struct{})
	release := make(chan struct{})
	fetch := func(context.Context) (string, error) {
		close(fetchEntered)
		<-release
		return "from-fetch", nil
	}

	resolved := make(chan struct{})
	go func() {
		defer close(resolved)
		_, _ = query.Resolve(context.Background(), c, key, ttl, fetch)
	}()

	<-fetchEntered
	c.Set(key, "from-set", ttl)
	close(release)
	<-resolved

	v, ok := query.Lookup[string](c, key)
	require.True(t, ok)
	assert.Equal(t, "from-set", v, "a direct write must not be overwritten by a late fetch result")
}

func TestResolve_ErrorPropagatesAndLeavesNoFreshValue(t *testing.T) {
	c := query.New()
	key := query.NewKey("games", "1")
	boom := errors.New("upstream down")

	_, err := query.Resolve(context.Background(), c, key, ttl, func(context.Context) (string, error) {
		return "", boom
	})
	require.ErrorIs(t, err, boom)

	_, ok := c.Lookup(key)
	assert.False(t, ok)
}

func TestSubscribe_DeliversWriteAndInvalidateEvents(t *testing.T) {
	c := query.New()
	key := query.NewKey("auth", "me")
	events, cancel := c.Subscribe("")
	defer cancel()

	c.Set(key, "v", ttl)
	ev := <-events
	assert.Equal(t, key, ev.Key)
	assert.False(t, ev.Invalidated)

	c.Invalidate(key)
	ev = <-events
	assert.Equal(t, key, ev.Key)
	assert.True(t, ev.Invalidated)
}

func TestSubscribe_PrefixFiltersEvents(t *testing.T) {
	c := query.New()
	events, cancel := c.Subscribe(query.NewKey("library"))
	defer cancel()

	c.Set(query.NewKey("games", "page", "0"), "v", ttl)
	c.Set(query.NewKey("library", "s-1"), "v", ttl)

	ev := <-events
	assert.Equal(t, query.NewKey("library", "s-1"), ev.Key)
	select {
	case ev = <-events:
		t.Fatalf("unexpected extra event for %q", ev.Key)
	default:
	}
}

func TestLookup_NilPointerIsAResolvedValue(t *testing.T) {
	c := query.New()
	key := query.NewKey("auth", "me")

	c.Set(key, (*string)(nil), ttl)
	v, ok := query.Lookup[*string](c, key)
	require.True(t, ok, "resolved nil is a valid cached state, not a miss")
	assert.Nil(t, v)
}
