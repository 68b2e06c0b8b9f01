// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package listview_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/listview"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/pagination"
)

const waitFor = 2 * time.Second

// recorder collects callbacks from a controller.
type recorder struct {
	mu      sync.Mutex
	urls    []listview.Query
	errs    []error
	changes chan listview.State[string]
}

func newRecorder() *recorder {
	return &recorder{changes: make(chan listview.State[string], 16)}
}

func (r *recorder) options(debounce time.Duration) listview.Options[string] {
	return listview.Options[string]{
		Debounce: debounce,
		OnURLChange: func(query listview.Query) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.urls = append(r.urls, query)
		},
		OnError: func(err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.errs = append(r.errs, err)
		},
		OnChange: func(state listview.State[string]) { r.changes <- state },
	}
}

func (r *recorder) next(t *testing.T) listview.State[string] {
	t.Helper()
	select {
	case state := <-r.changes:
		return state
	case <-time.After(waitFor):
		t.Fatal("no state change")
		return listview.State[string]{}
	}
}

func (r *recorder) urlHistory() []listview.Query {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]listview.Query(nil), r.urls...)
}

func pageOf(query listview.Query) listview.Result[string] {
	meta := pagination.NewMeta(query.Page, query.RowsPerPage, 100)
	return listview.Result[string]{Items: []string{query.Encode()}, Meta: &meta}
}

/*
TestController_InitialFetch verifies that Start loads the seeded query.
*/
func TestController_InitialFetch(t *testing.T) {
	rec := newRecorder()
	initial := listview.Query{Page: 2, RowsPerPage: 10}

	ctrl := listview.New(func(ctx context.Context, query listview.Query) (listview.Result[string], error) {
		return pageOf(query), nil
	}, initial, rec.options(0))
	defer ctrl.Close()

	ctrl.Start(context.Background())
	state := rec.next(t)

	assert.Equal(t, initial, state.Query)
	assert.Equal(t, []string{"page=2&rowsPerPage=10"}, state.Items)
	require.NotNil(t, state.Meta)
	assert.Equal(t, 10, state.Meta.TotalPages)
	assert.False(t, state.Loading)
}

/*
TestController_RowsPerPageResetsPage covers changing 10 to 25 while on page 3.
*/
func TestController_RowsPerPageResetsPage(t *testing.T) {
	rec := newRecorder()
	var fetched []listview.Query
	var mu sync.Mutex

	ctrl := listview.New(func(ctx context.Context, query listview.Query) (listview.Result[string], error) {
		mu.Lock()
		fetched = append(fetched, query)
		mu.Unlock()
		return pageOf(query), nil
	}, listview.Query{Page: 3, RowsPerPage: 10}, rec.options(0))
	defer ctrl.Close()

	ctrl.Start(context.Background())
	rec.next(t)

	ctrl.SetRowsPerPage(25)
	state := rec.next(t)

	want := listview.Query{Page: 1, RowsPerPage: 25}
	assert.Equal(t, want, state.Query)
	assert.Equal(t, []listview.Query{want}, rec.urlHistory())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []listview.Query{{Page: 3, RowsPerPage: 10}, want}, fetched)
}

/*
TestController_FetchFailure leaves an empty list without metadata.
*/
func TestController_FetchFailure(t *testing.T) {
	rec := newRecorder()
	fail := errors.New("backend down")

	ctrl := listview.New(func(ctx context.Context, query listview.Query) (listview.Result[string], error) {
		if query.Page == 2 {
			return listview.Result[string]{}, fail
		}
		return pageOf(query), nil
	}, listview.DefaultQuery(), rec.options(0))
	defer ctrl.Close()

	ctrl.Start(context.Background())
	require.NotNil(t, rec.next(t).Meta)

	ctrl.SetPage(2)
	state := rec.next(t)

	assert.NotNil(t, state.Items)
	assert.Empty(t, state.Items)
	assert.Nil(t, state.Meta)
	assert.ErrorIs(t, state.Err, fail)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []error{fail}, rec.errs)
}

/*
TestController_LastIssuedWins discards a slow response for a superseded query.
*/
func TestController_LastIssuedWins(t *testing.T) {
	rec := newRecorder()
	release := make(chan struct{})
	var staleDone atomic.Bool

	ctrl := listview.New(func(ctx context.Context, query listview.Query) (listview.Result[string], error) {
		if query.Page == 1 {
			<-release
			defer staleDone.Store(true)
		}
		return pageOf(query), nil
	}, listview.DefaultQuery(), rec.options(0))
	defer ctrl.Close()

	ctrl.Start(context.Background())
	ctrl.SetPage(2)

	state := rec.next(t)
	assert.Equal(t, 2, state.Query.Page)

	close(release)
	require.Eventually(t, staleDone.Load, waitFor, 5*time.Millisecond)

	assert.Never(t, func() bool { return len(rec.changes) > 0 }, 100*time.Millisecond, 5*time.Millisecond)
	assert.Equal(t, 2, ctrl.State().Query.Page)
	assert.Equal(t, []string{"page=2&rowsPerPage=10"}, ctrl.State().Items)
}

/*
TestController_SearchDebounce mirrors every keystroke but fetches once.
*/
func TestController_SearchDebounce(t *testing.T) {
	rec := newRecorder()
	var calls atomic.Int32
	var searched atomic.Value

	ctrl := listview.New(func(ctx context.Context, query listview.Query) (listview.Result[string], error) {
		calls.Add(1)
		searched.Store(query.Search)
		return pageOf(query), nil
	}, listview.Query{Page: 4, RowsPerPage: 10}, rec.options(30*time.Millisecond))
	defer ctrl.Close()

	ctrl.SetSearch("s")
	ctrl.SetSearch("sh")
	ctrl.SetSearch("shoe")

	urls := rec.urlHistory()
	require.Len(t, urls, 3)
	assert.Equal(t, listview.Query{Page: 1, RowsPerPage: 10, Search: "shoe"}, urls[2])
	assert.Equal(t, "shoe", ctrl.Query().Search)

	state := rec.next(t)
	assert.Equal(t, "shoe", state.Query.Search)
	assert.Equal(t, "shoe", searched.Load())

	assert.Never(t, func() bool { return calls.Load() > 1 }, 100*time.Millisecond, 5*time.Millisecond)
}

/*
TestController_NoOpChanges verifies that unchanged values neither fetch nor mirror.
*/
func TestController_NoOpChanges(t *testing.T) {
	rec := newRecorder()
	var calls atomic.Int32

	ctrl := listview.New(func(ctx context.Context, query listview.Query) (listview.Result[string], error) {
		calls.Add(1)
		return pageOf(query), nil
	}, listview.DefaultQuery(), rec.options(time.Millisecond))
	defer ctrl.Close()

	ctrl.SetPage(1)
	ctrl.SetRowsPerPage(10)
	ctrl.SetSearch("")

	assert.Empty(t, rec.urlHistory())
	assert.Never(t, func() bool { return calls.Load() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

/*
TestController_Load fetches synchronously.
*/
func TestController_Load(t *testing.T) {
	ctrl := listview.New(func(ctx context.Context, query listview.Query) (listview.Result[string], error) {
		return listview.Result[string]{Items: nil}, nil
	}, listview.Query{Page: 0}, listview.Options[string]{})
	defer ctrl.Close()

	state := ctrl.Load(context.Background())

	assert.Equal(t, listview.DefaultQuery(), state.Query)
	assert.NotNil(t, state.Items)
	assert.Nil(t, state.Meta)
	assert.NoError(t, state.Err)
}

/*
TestController_Close discards responses that resolve after closing.
*/
func TestController_Close(t *testing.T) {
	rec := newRecorder()
	release := make(chan struct{})

	ctrl := listview.New(func(ctx context.Context, query listview.Query) (listview.Result[string], error) {
		<-release
		return pageOf(query), nil
	}, listview.DefaultQuery(), rec.options(0))

	ctrl.Start(context.Background())
	ctrl.Close()
	close(release)

	assert.Never(t, func() bool { return len(rec.changes) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
	ctrl.SetPage(3)
	assert.Empty(t, rec.urlHistory())
}
