// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package guard decides whether a route may render for the current session.

The decision is a pure function of the route kind and the session state, plus
a one-shot flag: a [Guard] fires at most one redirect during its lifetime and
answers [Wait] afterwards, so rapid state churn can never produce a redirect
loop. The server builds one guard per request; the console builds one per
command.

	kind         Bootstrapping  Authenticated      Unauthenticated
	PublicOnly   Wait           Redirect(home)     Allow
	Protected    Wait           Allow              Redirect(login)
	Entry        Wait           Redirect(home)     Redirect(login)
*/
package guard

import (
	"fmt"
	"sync"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/session"
)

// RouteKind classifies a route for the guard.
type RouteKind int

const (
	// PublicOnly routes (login, password reset) are for signed-out visitors.
	PublicOnly RouteKind = iota
	// Protected routes (the dashboard) require a principal.
	Protected
	// Entry is the root route; it always forwards somewhere.
	Entry
)

// String implements [fmt.Stringer].
func (kind RouteKind) String() string {
	switch kind {
	case PublicOnly:
		return "public_only"
	case Protected:
		return "protected"
	case Entry:
		return "entry"
	default:
		return fmt.Sprintf("RouteKind(%d)", int(kind))
	}
}

// Action is what the caller must do.
type Action int

const (
	// Wait means render nothing (or a loading indicator) yet.
	Wait Action = iota
	// Allow means render the route.
	Allow
	// Redirect means navigate to [Decision.Target].
	Redirect
)

// String implements [fmt.Stringer].
func (action Action) String() string {
	switch action {
	case Wait:
		return "wait"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	default:
		return fmt.Sprintf("Action(%d)", int(action))
	}
}

// Decision is the outcome of one evaluation.
type Decision struct {
	Action Action
	Target string
}

// Paths are the redirect targets.
type Paths struct {
	Login string
	Home  string
}

// DefaultPaths are the dashboard's login and home routes.
var DefaultPaths = Paths{Login: constants.PathLogin, Home: constants.PathDashboard}

// Guard evaluates one mount of one route.
type Guard struct {
	kind  RouteKind
	paths Paths

	mu    sync.Mutex
	fired bool
}

// New creates a guard for a route of the given kind using [DefaultPaths].
func New(kind RouteKind) *Guard {
	return NewWithPaths(kind, DefaultPaths)
}

// NewWithPaths creates a guard with custom redirect targets.
func NewWithPaths(kind RouteKind, paths Paths) *Guard {
	return &Guard{kind: kind, paths: paths}
}

// Evaluate returns the decision for state. After a redirect has fired once,
// every later evaluation returns [Wait].
func (guard *Guard) Evaluate(state session.State) Decision {
	guard.mu.Lock()
	defer guard.mu.Unlock()

	if guard.fired {
		return Decision{Action: Wait}
	}

	decision := decide(guard.kind, state, guard.paths)
	if decision.Action == Redirect {
		guard.fired = true
	}
	return decision
}

// Fired reports whether the guard has already redirected.
func (guard *Guard) Fired() bool {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	return guard.fired
}

func decide(kind RouteKind, state session.State, paths Paths) Decision {
	switch state {
	case session.Authenticated:
		if kind == Protected {
			return Decision{Action: Allow}
		}
		return Decision{Action: Redirect, Target: paths.Home}

	case session.Unauthenticated:
		if kind == PublicOnly {
			return Decision{Action: Allow}
		}
		return Decision{Action: Redirect, Target: paths.Login}

	default:
		return Decision{Action: Wait}
	}
}
