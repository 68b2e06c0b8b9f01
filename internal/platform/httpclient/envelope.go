// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
)

// Envelope is the backend response wrapper {"message": "...", "data": ...}.
type Envelope struct {
	// Message is the server's human-readable outcome, used for success notifications.
	Message string `json:"message"`
	// Data is the raw payload, decoded on demand with [Envelope.Decode].
	Data json.RawMessage `json:"data"`
}

// HasData reports whether the envelope carries a non-null payload.
func (envelope *Envelope) HasData() bool {
	if envelope == nil {
		return false
	}
	trimmed := bytes.TrimSpace(envelope.Data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// Decode unmarshals Data into target. A missing payload leaves target untouched.
//
// Returns a [apperr.KindClient] error when the payload does not match target.
func (envelope *Envelope) Decode(target any) error {
	if !envelope.HasData() {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return apperr.Client(fmt.Errorf("decode response data: %w", err))
	}
	return nil
}

// MessageOr returns the server message, or fallback when it is empty.
func (envelope *Envelope) MessageOr(fallback string) string {
	if envelope == nil || envelope.Message == "" {
		return fallback
	}
	return envelope.Message
}

// decodeEnvelope reads a 2xx body. An empty body is an empty envelope.
func decodeEnvelope(body io.Reader) (*Envelope, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	envelope := &Envelope{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return envelope, nil
	}

	if err := json.Unmarshal(raw, envelope); err != nil {
		return nil, fmt.Errorf("decode response envelope: %w", err)
	}
	return envelope, nil
}

// # Failure bodies

// failureBody is the backend error shape. "errors" varies between endpoints.
type failureBody struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

// decodeFailure extracts the message and per-field errors of an error body.
// Anything unreadable yields an empty message so the default applies.
func decodeFailure(body io.Reader) (string, []apperr.FieldError) {
	raw, err := io.ReadAll(body)
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return "", nil
	}

	var failure failureBody
	if err := json.Unmarshal(raw, &failure); err != nil {
		return "", nil
	}

	message := failure.Message
	if message == "" {
		message = failure.Error
	}
	return message, decodeFieldErrors(failure.Errors)
}

// decodeFieldErrors accepts the three shapes seen from the backend:
//
//	[{"field": "email", "message": "taken"}]   (also "path"/"param" and "msg")
//	{"email": "taken"} or {"email": {"message": "taken"}}
//	["email is taken"]
func decodeFieldErrors(raw json.RawMessage) []apperr.FieldError {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		details := make([]apperr.FieldError, 0, len(list))
		for _, item := range list {
			if detail, ok := decodeFieldError("", item); ok {
				details = append(details, detail)
			}
		}
		return details
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err == nil {
		fields := make([]string, 0, len(object))
		for field := range object {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		details := make([]apperr.FieldError, 0, len(object))
		for _, field := range fields {
			if detail, ok := decodeFieldError(field, object[field]); ok {
				details = append(details, detail)
			}
		}
		return details
	}

	return nil
}

// decodeFieldError decodes one entry, either a bare string or an object.
func decodeFieldError(field string, raw json.RawMessage) (apperr.FieldError, bool) {
	var message string
	if err := json.Unmarshal(raw, &message); err == nil {
		return apperr.FieldError{Field: field, Message: message}, true
	}

	var entry struct {
		Field   string `json:"field"`
		Path    string `json:"path"`
		Param   string `json:"param"`
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return apperr.FieldError{}, false
	}

	for _, candidate := range []string{entry.Field, entry.Path, entry.Param} {
		if candidate != "" {
			field = candidate
			break
		}
	}
	if entry.Message == "" {
		entry.Message = entry.Msg
	}
	return apperr.FieldError{Field: field, Message: entry.Message}, true
}
