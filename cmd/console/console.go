// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/order"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/product"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/stats"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/subscription"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/guard"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/listview"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/session"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/account"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/auth"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/convert"
)

const help = `commands:
  login <email> <password>   sign in
  logout                     sign out
  me                         show the signed-in account
  stats                      dashboard counters
  subscription               subscription countdown
  users | products | orders  open a list view
  page <n>                   go to page n of the open list
  rows <n>                   change the page size of the open list
  search [term...]           filter the open list (debounced)
  refresh                    reload the open list
  help                       this text
  quit                       exit
`

// listView is the type-independent surface of a [listview.Controller].
type listView interface {
	SetPage(page int)
	SetRowsPerPage(rowsPerPage int)
	SetSearch(search string)
	Refresh()
	Close()
}

// command is one console verb.
type command struct {
	kind guard.RouteKind
	run  func(ctx context.Context, args []string) error
}

// console reads one command per line and prints results and notifications.
type console struct {
	in       io.Reader
	out      io.Writer
	debounce time.Duration

	mu sync.Mutex

	store         *session.Store
	auth          *auth.Service
	accounts      *account.Service
	products      *product.Service
	orders        *order.Service
	stats         *stats.Service
	subscriptions *subscription.Service

	list listView
}

func newConsole(in io.Reader, out io.Writer, debounce time.Duration) *console {
	return &console{in: in, out: out, debounce: debounce}
}

// Write lets the console serve as the notification writer. List refreshes
// print from background goroutines, so every write is serialized.
func (ui *console) Write(p []byte) (int, error) {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.out.Write(p)
}

func (ui *console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(ui, format, args...)
}

func (ui *console) printJSON(value any) {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		ui.printf("[error] %v\n", err)
		return
	}
	ui.printf("%s\n", encoded)
}

// Run executes commands until EOF, "quit" or ctx cancellation.
func (ui *console) Run(ctx context.Context) error {
	defer ui.closeList()

	commands := ui.commands()
	scanner := bufio.NewScanner(ui.in)

	ui.printf("fb-admin console (%s)\n", ui.store.State())
	for {
		ui.printf("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		name, args := fields[0], fields[1:]
		switch name {
		case "quit", "exit":
			return nil
		case "help":
			ui.printf(help)
			continue
		}

		cmd, ok := commands[name]
		if !ok {
			ui.printf("unknown command %q, try help\n", name)
			continue
		}

		// One guard per command, like one guard per route mount.
		decision := guard.New(cmd.kind).Evaluate(ui.store.State())
		switch decision.Action {
		case guard.Wait:
			ui.printf("session is still loading\n")
			continue
		case guard.Redirect:
			ui.printf("not available here, go to %s\n", decision.Target)
			continue
		}

		// Other failures were already reported through the notifier.
		if err := cmd.run(ctx, args); errors.Is(err, errUsage) {
			ui.printf("usage error, try help\n")
		}
	}
}

var errUsage = errors.New("console: usage")

func (ui *console) commands() map[string]command {
	return map[string]command{
		"login": {guard.PublicOnly, func(ctx context.Context, args []string) error {
			if len(args) != 2 {
				return errUsage
			}
			user, err := ui.auth.Login(ctx, auth.LoginForm{Email: args[0], Password: args[1]})
			if err != nil {
				return err
			}
			ui.printf("signed in as %s (%s)\n", user.Name, user.Role)
			return nil
		}},
		"logout": {guard.Protected, func(ctx context.Context, args []string) error {
			ui.closeList()
			return ui.auth.Logout(ctx)
		}},
		"me": {guard.Protected, func(ctx context.Context, args []string) error {
			user, err := ui.auth.Me(ctx)
			if err != nil {
				return err
			}
			ui.printJSON(user)
			return nil
		}},
		"stats": {guard.Protected, func(ctx context.Context, args []string) error {
			counters, err := ui.stats.Get(ctx)
			if err != nil {
				return err
			}
			ui.printJSON(counters)
			return nil
		}},
		"subscription": {guard.Protected, func(ctx context.Context, args []string) error {
			status, err := ui.subscriptions.Status(ctx)
			if err != nil {
				return err
			}
			if status == nil || status.Band() == subscription.BandHidden {
				ui.printf("no subscription expiry\n")
				return nil
			}
			ui.printf("%s: %s remaining\n", status.Band(), status.Remaining())
			return nil
		}},
		"users": {guard.Protected, func(ctx context.Context, args []string) error {
			ui.open(ctx, "users", newList(ui, ui.accounts.Fetcher(account.Filter{}), ui.debounce))
			return nil
		}},
		"products": {guard.Protected, func(ctx context.Context, args []string) error {
			ui.open(ctx, "products", newList(ui, ui.products.Fetcher(product.Filter{}), ui.debounce))
			return nil
		}},
		"orders": {guard.Protected, func(ctx context.Context, args []string) error {
			ui.open(ctx, "orders", newList(ui, ui.orders.Fetcher(order.Filter{}), ui.debounce))
			return nil
		}},
		"page": {guard.Protected, ui.withNumber(func(list listView, n int) { list.SetPage(n) })},
		"rows": {guard.Protected, ui.withNumber(func(list listView, n int) { list.SetRowsPerPage(n) })},
		"search": {guard.Protected, func(ctx context.Context, args []string) error {
			list := ui.current()
			if list == nil {
				return errUsage
			}
			list.SetSearch(strings.Join(args, " "))
			return nil
		}},
		"refresh": {guard.Protected, func(ctx context.Context, args []string) error {
			list := ui.current()
			if list == nil {
				return errUsage
			}
			list.Refresh()
			return nil
		}},
	}
}

func (ui *console) withNumber(apply func(list listView, n int)) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		list := ui.current()
		if list == nil || len(args) != 1 {
			return errUsage
		}
		n := convert.ToIntD(args[0], 0)
		if n < 1 {
			return errUsage
		}
		apply(list, n)
		return nil
	}
}

// # List Views

// newList builds a controller that prints every applied state. The URL a
// browser would show is printed as soon as the query changes.
func newList[T any](ui *console, fetch listview.FetchFunc[T], debounce time.Duration) *listview.Controller[T] {
	return listview.New(fetch, listview.DefaultQuery(), listview.Options[T]{
		Debounce: debounce,
		OnURLChange: func(query listview.Query) {
			ui.printf("?%s\n", query.Encode())
		},
		OnChange: func(state listview.State[T]) {
			if state.Err != nil {
				ui.printf("(empty)\n")
				return
			}
			for _, item := range state.Items {
				encoded, err := json.Marshal(item)
				if err != nil {
					continue
				}
				ui.printf("%s\n", encoded)
			}
			if state.Meta != nil {
				ui.printf("page %d/%d, %d total\n", state.Meta.Page, state.Meta.TotalPages, state.Meta.Total)
			}
		},
	})
}

// open replaces the current list view and starts it.
func (ui *console) open(ctx context.Context, name string, list interface {
	listView
	Start(ctx context.Context)
}) {
	ui.closeList()

	ui.mu.Lock()
	ui.list = list
	ui.mu.Unlock()

	ui.printf("%s\n", name)
	list.Start(ctx)
}

func (ui *console) current() listView {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.list
}

func (ui *console) closeList() {
	ui.mu.Lock()
	list := ui.list
	ui.list = nil
	ui.mu.Unlock()

	if list != nil {
		list.Close()
	}
}
