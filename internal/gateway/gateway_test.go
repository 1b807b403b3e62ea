package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskpanel/internal/query"
	"taskpanel/internal/task"
	"taskpanel/internal/testutil"
)

func batch(n int) []task.Task {
	out := make([]task.Task, n)
	for i := range out {
		out[i] = task.Task{ID: string(rune('a' + i)), Title: "t", Status: task.StatusPending, Priority: task.PriorityMedium}
	}
	return out
}

func TestFetchServesRepeatedKeyFromCache(t *testing.T) {
	svc := &testutil.MockService{}
	svc.On("ListTasks", mock.Anything, 0, 100).Return(task.Page{Data: batch(3), Count: 3}, nil).Once()

	gw := New(svc, NewCache(time.Minute), 0)
	key := KeyFor(query.Default())

	first, err := gw.Fetch(context.Background(), key)
	require.NoError(t, err)
	second, err := gw.Fetch(context.Background(), key)
	require.NoError(t, err)

	assert.Len(t, first.Tasks, 3)
	assert.Equal(t, first, second)
	svc.AssertNumberOfCalls(t, "ListTasks", 1)
}

func TestFetchIssuesOneReadPerDistinctKey(t *testing.T) {
	svc := &testutil.MockService{}
	svc.On("ListTasks", mock.Anything, 0, 50).Return(task.Page{Data: batch(2), Count: 2}, nil)

	gw := New(svc, NewCache(time.Minute), 50)
	state := query.Default()

	for _, s := range []query.ViewState{
		state,
		state.WithPage(2),
		state.WithStatus(task.FilterStatus(task.StatusPending)),
		state,
	} {
		_, err := gw.Fetch(context.Background(), KeyFor(s))
		require.NoError(t, err)
	}

	svc.AssertNumberOfCalls(t, "ListTasks", 3)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	svc := &testutil.MockService{}
	svc.On("ListTasks", mock.Anything, 0, 100).Return(task.Page{Data: batch(1), Count: 1}, nil).Once()
	svc.On("ListTasks", mock.Anything, 0, 100).Return(task.Page{Data: batch(2), Count: 2}, nil).Once()

	gw := New(svc, NewCache(time.Minute), 100)
	keyA := KeyFor(query.Default())
	keyB := KeyFor(query.Default().WithPage(2))

	_, err := gw.Fetch(context.Background(), keyA)
	require.NoError(t, err)
	gw.cache.Set(keyB, Result{})

	gw.Invalidate()
	assert.Zero(t, gw.cache.Len())

	res, err := gw.Fetch(context.Background(), keyA)
	require.NoError(t, err)
	assert.Len(t, res.Tasks, 2)
	svc.AssertExpectations(t)
}

func TestFetchReportsTruncation(t *testing.T) {
	svc := &testutil.MockService{}
	svc.On("ListTasks", mock.Anything, 0, 2).Return(task.Page{Data: batch(2), Count: 7}, nil)

	gw := New(svc, NewCache(time.Minute), 2)
	res, err := gw.Fetch(context.Background(), KeyFor(query.Default()))
	require.NoError(t, err)

	assert.True(t, res.Truncated)
	assert.Equal(t, 7, res.Count)
}

func TestFetchErrorIsNotCached(t *testing.T) {
	svc := &testutil.MockService{}
	boom := errors.New("connection refused")
	svc.On("ListTasks", mock.Anything, 0, 100).Return(task.Page{}, boom).Once()
	svc.On("ListTasks", mock.Anything, 0, 100).Return(task.Page{Data: batch(1), Count: 1}, nil).Once()

	gw := New(svc, NewCache(time.Minute), 100)
	key := KeyFor(query.Default())

	_, err := gw.Fetch(context.Background(), key)
	assert.ErrorIs(t, err, boom)

	res, err := gw.Fetch(context.Background(), key)
	require.NoError(t, err)
	assert.Len(t, res.Tasks, 1)
}

func TestCacheExpiry(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	c := NewCache(30 * time.Second)
	c.now = func() time.Time { return now }

	key := KeyFor(query.Default())
	c.Set(key, Result{Count: 1})

	_, ok := c.Get(key)
	assert.True(t, ok)

	now = now.Add(31 * time.Second)
	_, ok = c.Get(key)
	assert.False(t, ok)
}

func TestCacheInvalidateOnlyTouchesResource(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set(Key{Resource: ResourceTasks, Page: 1}, Result{})
	c.Set(Key{Resource: ResourceTasks, Page: 2}, Result{})
	c.Set(Key{Resource: "users", Page: 1}, Result{})

	assert.Equal(t, 2, c.Invalidate(ResourceTasks))
	assert.Equal(t, 1, c.Len())
}

func TestInvalidateDuringFetchIsNotCached(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	svc := &testutil.MockService{}
	svc.On("ListTasks", mock.Anything, 0, 100).
		Return(task.Page{Data: batch(1), Count: 1}, nil).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).Once()
	svc.On("ListTasks", mock.Anything, 0, 100).Return(task.Page{Data: batch(2), Count: 2}, nil).Once()

	gw := New(svc, NewCache(time.Minute), 0)
	key := KeyFor(query.Default())

	done := make(chan Result)
	go func() {
		res, err := gw.Fetch(context.Background(), key)
		assert.NoError(t, err)
		done <- res
	}()

	<-started
	gw.Invalidate()
	close(release)
	old := <-done
	assert.Len(t, old.Tasks, 1)

	fresh, err := gw.Fetch(context.Background(), key)
	require.NoError(t, err)
	assert.Len(t, fresh.Tasks, 2)
	svc.AssertNumberOfCalls(t, "ListTasks", 2)
}

func TestCacheSetIfCurrent(t *testing.T) {
	c := NewCache(time.Minute)
	key := KeyFor(query.Default())

	epoch := c.Epoch()
	c.Invalidate(ResourceTasks)
	assert.False(t, c.SetIfCurrent(key, Result{Count: 1}, epoch))
	assert.Equal(t, 0, c.Len())

	assert.True(t, c.SetIfCurrent(key, Result{Count: 1}, c.Epoch()))
	_, ok := c.Get(key)
	assert.True(t, ok)
}
