// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package identity defines the user record shared by the session and the user
management pages.

The same shape describes the authenticated principal (staff member signed in to
the dashboard) and the accounts that principal manages. All identities are
issued by the backend; the dashboard never invents one.
*/
package identity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/money"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/sec"
)

// # Domain Entities

// User is an account as returned by the backend.
type User struct {
	ID       string         `json:"_id"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Role     sec.UserRole   `json:"role"`
	Status   Status         `json:"status"`
	Currency money.Currency `json:"currency,omitempty"`
	Image    string         `json:"image,omitempty"`

	// MaxManagedUsers caps how many accounts this principal may administer.
	MaxManagedUsers *int  `json:"maxManagedUsers,omitempty"`
	CanSeeAllOrders *bool `json:"canSeeAllOrders,omitempty"`

	// Subscription expiry, present for admins managed by a super admin.
	SubscriptionExpiryDate *time.Time `json:"subscriptionExpiryDate,omitempty"`
	IsExpired              *bool      `json:"isExpired,omitempty"`
	DaysRemaining          *int       `json:"daysRemaining,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// DisplayCurrency returns the currency prices are shown in for this user.
func (user User) DisplayCurrency() money.Currency {
	return user.Currency.OrDefault()
}

// HasSubscriptionExpiry reports whether the account is subject to an expiry date.
func (user User) HasSubscriptionExpiry() bool {
	return user.SubscriptionExpiryDate != nil
}

// # Status

// Status is the lifecycle state of an account.
type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
	StatusDeleted Status = "deleted"
)

// Statuses lists every account status.
var Statuses = []Status{StatusActive, StatusBlocked, StatusDeleted}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusBlocked, StatusDeleted:
		return true
	}
	return false
}

// ParseStatus validates a status string.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if !status.Valid() {
		return "", fmt.Errorf("identity: unknown user status %q", raw)
	}
	return status, nil
}

// # References

// Ref is a reference to a user embedded in another resource.
//
// # Wire Format
//
// The backend sends either the bare identifier or a populated summary object,
// depending on the endpoint. Both decode into Ref; only ID is guaranteed.
type Ref struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UnmarshalJSON accepts a string identifier or a summary object.
func (ref *Ref) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*ref = Ref{ID: id}
		return nil
	}

	type plain Ref
	var summary plain
	if err := json.Unmarshal(data, &summary); err != nil {
		return fmt.Errorf("identity: user reference must be a string or object: %w", err)
	}
	*ref = Ref(summary)
	return nil
}

// Populated reports whether the backend sent the summary object.
func (ref Ref) Populated() bool {
	return ref.Name != "" || ref.Email != ""
}

// Label returns the best human-readable name for the reference.
func (ref Ref) Label() string {
	switch {
	case ref.Name != "":
		return ref.Name
	case ref.Email != "":
		return ref.Email
	default:
		return ref.ID
	}
}
