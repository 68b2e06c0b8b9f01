// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package notify carries transient, user-facing notifications ("toasts").

Resource services report every failure and every successful mutation as a
[Notification]. Where it ends up depends on the caller:

  - Dashboard server: a per-request [Sink] drained into the page view-model, or
    persisted as a flash when the request ends in a redirect.
  - Console: a [Writer] printing straight to the terminal.
*/
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/storage"
)

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is a single transient message.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives notifications.
type Notifier interface {
	Notify(notification Notification)
}

// Success sends a success notification to notifier.
func Success(notifier Notifier, message string) {
	notifier.Notify(Notification{Level: LevelSuccess, Message: message})
}

// Error sends an error notification to notifier.
func Error(notifier Notifier, message string) {
	notifier.Notify(Notification{Level: LevelError, Message: message})
}

// Info sends an informational notification to notifier.
func Info(notifier Notifier, message string) {
	notifier.Notify(Notification{Level: LevelInfo, Message: message})
}

// SuccessOr sends message as a success notification, or fallback when the
// backend sent no message.
func SuccessOr(notifier Notifier, message, fallback string) {
	if message == "" {
		message = fallback
	}
	Success(notifier, message)
}

// Failure reports err with the server message, or fallback when the error
// carries none, and returns err unchanged so callers can rethrow it.
func Failure(notifier Notifier, err error, fallback string) error {
	Error(notifier, apperr.MessageOr(err, fallback))
	return err
}

// # Discard

type discard struct{}

func (discard) Notify(Notification) {}

// Discard drops every notification.
var Discard Notifier = discard{}

// # Writer

// Writer prints notifications as single lines, e.g. "[error] Order not found".
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter creates a [Writer] printing to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Notify prints notification.
func (writer *Writer) Notify(notification Notification) {
	writer.mu.Lock()
	defer writer.mu.Unlock()
	_, _ = fmt.Fprintf(writer.out, "[%s] %s\n", notification.Level, notification.Message)
}

// # Sink

// Sink buffers the notifications of one dashboard request.
//
// # Flash
//
// A redirect ends the request before anything is rendered. [Sink.Persist]
// moves pending notifications into the session storage under "@flash", and
// [Sink.Restore] brings them back on the next request of the same browser.
type Sink struct {
	mu      sync.Mutex
	pending []Notification
	flash   storage.Storage
}

// NewSink creates a sink. flash may be nil, in which case Persist is a no-op.
func NewSink(flash storage.Storage) *Sink {
	return &Sink{flash: flash}
}

// Notify buffers notification.
func (sink *Sink) Notify(notification Notification) {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.pending = append(sink.pending, notification)
}

// Drain returns and clears the buffered notifications. It never returns nil.
func (sink *Sink) Drain() []Notification {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	drained := sink.pending
	sink.pending = nil
	if drained == nil {
		drained = []Notification{}
	}
	return drained
}

// Persist moves buffered notifications into the flash slot, appending to any
// flash not yet shown.
func (sink *Sink) Persist(ctx context.Context) error {
	if sink.flash == nil {
		return nil
	}

	pending := sink.Drain()
	if len(pending) == 0 {
		return nil
	}

	existing, err := sink.readFlash(ctx)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(append(existing, pending...))
	if err != nil {
		return fmt.Errorf("notify: encode flash: %w", err)
	}

	if err := sink.flash.Set(ctx, constants.StorageKeyFlash, string(encoded)); err != nil {
		return fmt.Errorf("notify: persist flash: %w", err)
	}
	return nil
}

// Restore loads the flash left by a previous redirect in front of the buffer
// and clears it from storage.
func (sink *Sink) Restore(ctx context.Context) error {
	if sink.flash == nil {
		return nil
	}

	flashed, err := sink.readFlash(ctx)
	if err != nil {
		return err
	}
	if len(flashed) == 0 {
		return nil
	}

	if err := sink.flash.Delete(ctx, constants.StorageKeyFlash); err != nil {
		return fmt.Errorf("notify: clear flash: %w", err)
	}

	sink.mu.Lock()
	sink.pending = append(flashed, sink.pending...)
	sink.mu.Unlock()
	return nil
}

// readFlash decodes the stored flash. A missing or corrupt slot is empty.
func (sink *Sink) readFlash(ctx context.Context) ([]Notification, error) {
	raw, err := sink.flash.Get(ctx, constants.StorageKeyFlash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("notify: read flash: %w", err)
	}

	var flashed []Notification
	if err := json.Unmarshal([]byte(raw), &flashed); err != nil {
		return nil, nil
	}
	return flashed, nil
}
