// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package listview owns the pagination, page-size and search state of a list view.

One generic [Controller] serves the users, products and orders tables. It is
parametrized by the resource fetch function only.

Behavior:

  - Every change to the query is mirrored to the URL immediately.
  - Page and page-size changes fetch immediately; search changes fetch after
    a quiescence window (200ms by default).
  - Each fetch carries a monotonically increasing token. Only the response to
    the latest issued token is applied; older responses are discarded even if
    they resolve later (last-issued-wins). Superseded requests are not aborted.
  - A failed fetch leaves an empty list and no pagination metadata, and is
    reported through OnError. It never panics or stops the controller.
*/
package listview

import (
	"context"
	"sync"
	"time"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/pagination"
)

// Result is the output of one fetch. A nil Meta means "pagination unknown";
// the view shows the items without page controls.
type Result[T any] struct {
	Items []T              `json:"items"`
	Meta  *pagination.Meta `json:"meta,omitempty"`
}

// FetchFunc loads one page of a resource.
type FetchFunc[T any] func(ctx context.Context, query Query) (Result[T], error)

// State is what the view renders.
type State[T any] struct {
	Query   Query            `json:"query"`
	Items   []T              `json:"items"`
	Meta    *pagination.Meta `json:"meta"`
	Loading bool             `json:"loading"`
	Err     error            `json:"-"`
}

// Options configures a [Controller].
type Options[T any] struct {
	// Debounce is the search quiescence window. Zero means 200ms.
	Debounce time.Duration
	// OnURLChange receives the query every time it changes, before any fetch.
	OnURLChange func(query Query)
	// OnError receives fetch failures of applied (not superseded) responses.
	OnError func(err error)
	// OnChange receives the state after every applied response.
	OnChange func(state State[T])
}

// Controller is the state owner of one list view. It is safe for concurrent use.
type Controller[T any] struct {
	fetch   FetchFunc[T]
	options Options[T]

	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	query    Query
	state    State[T]
	issued   uint64
	debounce *time.Timer
	closed   bool
}

// New creates a controller seeded with initial (usually parsed from the URL).
// Invalid values fall back to [DefaultQuery].
func New[T any](fetch FetchFunc[T], initial Query, options Options[T]) *Controller[T] {
	if options.Debounce <= 0 {
		options.Debounce = constants.DefaultSearchDebounce
	}
	if !initial.Valid() {
		initial = DefaultQuery()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller[T]{
		fetch:   fetch,
		options: options,
		ctx:     ctx,
		cancel:  cancel,
		query:   initial,
		state:   State[T]{Query: initial, Items: []T{}},
	}
}

// Start binds background fetches to ctx and issues the initial fetch.
func (controller *Controller[T]) Start(ctx context.Context) {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}
	controller.cancel()
	controller.ctx, controller.cancel = context.WithCancel(ctx)
	controller.mu.Unlock()

	controller.issue()
}

// SetPage moves to page and fetches it.
func (controller *Controller[T]) SetPage(page int) {
	controller.change(func(query Query) Query { return query.WithPage(page) }, false)
}

// SetRowsPerPage changes the page size, resets to page 1 and fetches.
func (controller *Controller[T]) SetRowsPerPage(rowsPerPage int) {
	controller.change(func(query Query) Query { return query.WithRowsPerPage(rowsPerPage) }, false)
}

// SetSearch changes the search term and resets to page 1. The URL is updated
// at once; the fetch waits for the debounce window to pass without another
// search change.
func (controller *Controller[T]) SetSearch(search string) {
	controller.change(func(query Query) Query { return query.WithSearch(search) }, true)
}

// Refresh refetches the current query, e.g. after a mutation.
func (controller *Controller[T]) Refresh() {
	controller.issue()
}

// Load fetches the current query synchronously and returns the resulting
// state. If a newer fetch is issued meanwhile, the newer state wins.
func (controller *Controller[T]) Load(ctx context.Context) State[T] {
	token, query, ok := controller.next()
	if !ok {
		return controller.State()
	}

	result, err := controller.fetch(ctx, query)
	controller.apply(token, query, result, err)
	return controller.State()
}

// State returns a copy of the current view state.
func (controller *Controller[T]) State() State[T] {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.snapshot()
}

// Query returns the current (URL) query, which may be ahead of State().Query
// while a search is debouncing.
func (controller *Controller[T]) Query() Query {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.query
}

// Close stops pending debounces and discards every in-flight response.
func (controller *Controller[T]) Close() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	controller.closed = true
	if controller.debounce != nil {
		controller.debounce.Stop()
	}
	controller.cancel()
}

// # Internals

// change applies mutate, mirrors the URL and schedules the fetch.
func (controller *Controller[T]) change(mutate func(Query) Query, debounced bool) {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}

	next := mutate(controller.query)
	if next == controller.query {
		controller.mu.Unlock()
		return
	}
	controller.query = next

	if controller.debounce != nil {
		controller.debounce.Stop()
		controller.debounce = nil
	}
	if debounced {
		controller.debounce = time.AfterFunc(controller.options.Debounce, controller.issue)
	}
	controller.mu.Unlock()

	if controller.options.OnURLChange != nil {
		controller.options.OnURLChange(next)
	}
	if !debounced {
		controller.issue()
	}
}

// next reserves a token for a fetch of the current query.
func (controller *Controller[T]) next() (uint64, Query, bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.closed {
		return 0, Query{}, false
	}

	controller.issued++
	controller.state.Loading = true
	return controller.issued, controller.query, true
}

// issue starts a background fetch of the current query.
func (controller *Controller[T]) issue() {
	token, query, ok := controller.next()
	if !ok {
		return
	}

	controller.mu.Lock()
	ctx := controller.ctx
	controller.mu.Unlock()

	go func() {
		result, err := controller.fetch(ctx, query)
		controller.apply(token, query, result, err)
	}()
}

// apply stores a response if its token is still the latest issued.
func (controller *Controller[T]) apply(token uint64, query Query, result Result[T], err error) {
	controller.mu.Lock()
	if controller.closed || token != controller.issued {
		controller.mu.Unlock()
		return
	}

	controller.state.Query = query
	controller.state.Loading = false
	controller.state.Err = err

	if err != nil {
		controller.state.Items = []T{}
		controller.state.Meta = nil
	} else {
		controller.state.Items = result.Items
		if controller.state.Items == nil {
			controller.state.Items = []T{}
		}
		controller.state.Meta = result.Meta
	}

	state := controller.snapshot()
	controller.mu.Unlock()

	if err != nil && controller.options.OnError != nil {
		controller.options.OnError(err)
	}
	if controller.options.OnChange != nil {
		controller.options.OnChange(state)
	}
}

// snapshot copies the state. Callers hold mu.
func (controller *Controller[T]) snapshot() State[T] {
	state := controller.state
	state.Items = append([]T{}, controller.state.Items...)
	if controller.state.Meta != nil {
		meta := *controller.state.Meta
		state.Meta = &meta
	}
	return state
}
