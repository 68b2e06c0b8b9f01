// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package subscription tracks the expiry of admin accounts.

Every admin may carry an expiry date set by a super admin. The signed-in
admin sees a countdown refreshed by a [Poller]; super admins list and edit
every admin's expiry.
*/
package subscription

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/pointer"
)

// DateLayout is the wire format of expiry dates sent to the backend.
const DateLayout = "2006-01-02"

// # Bands

// Band is the display urgency of a subscription.
type Band string

const (
	BandHidden   Band = "hidden"
	BandExpired  Band = "expired"
	BandHealthy  Band = "healthy"
	BandWarning  Band = "warning"
	BandCritical Band = "critical"
)

const (
	healthyAfterDays = 7
	warningAfterDays = 3
)

// BandOf classifies a subscription. Days above 7 are healthy, above 3 a
// warning, anything less critical.
func BandOf(hasExpiry, isExpired bool, daysRemaining int) Band {
	switch {
	case !hasExpiry:
		return BandHidden
	case isExpired:
		return BandExpired
	case daysRemaining > healthyAfterDays:
		return BandHealthy
	case daysRemaining > warningAfterDays:
		return BandWarning
	default:
		return BandCritical
	}
}

// # Domain Entities

// Status is the signed-in principal's own subscription.
type Status struct {
	HasExpiry     bool       `json:"hasExpiry"`
	Role          string     `json:"role"`
	ExpiryDate    *time.Time `json:"expiryDate,omitempty"`
	IsExpired     bool       `json:"isExpired,omitempty"`
	DaysRemaining *int       `json:"daysRemaining,omitempty"`
}

// Band classifies the status for display.
func (status Status) Band() Band {
	return BandOf(status.HasExpiry, status.IsExpired, pointer.Val(status.DaysRemaining))
}

// Remaining renders the countdown, e.g. "1 day" or "12 days".
func (status Status) Remaining() string {
	return remaining(status.DaysRemaining)
}

// Admin is an admin account with its subscription, as listed for super admins.
type Admin struct {
	ID                     string     `json:"_id"`
	Name                   string     `json:"name"`
	Email                  string     `json:"email"`
	SubscriptionExpiryDate *time.Time `json:"subscriptionExpiryDate"`
	Status                 string     `json:"status"`
	CreatedAt              *time.Time `json:"createdAt,omitempty"`
	IsExpired              bool       `json:"isExpired"`
	DaysRemaining          *int       `json:"daysRemaining"`
}

// Band classifies the admin's subscription. No expiry date means hidden.
func (admin Admin) Band() Band {
	return BandOf(admin.SubscriptionExpiryDate != nil, admin.IsExpired, pointer.Val(admin.DaysRemaining))
}

func remaining(value *int) string {
	switch n := pointer.Val(value); {
	case n <= 0:
		return ""
	case n == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", n)
	}
}

// # Expiry Dates

// Expiry is the new expiry date of an admin. The zero value removes the expiry.
type Expiry struct {
	date *time.Time
}

// NoExpiry removes the expiry date.
func NoExpiry() Expiry { return Expiry{} }

// ExpiresOn sets the expiry to the calendar day of date.
func ExpiresOn(date time.Time) Expiry {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return Expiry{date: &day}
}

// ParseExpiry reads a yyyy-mm-dd date. A blank string removes the expiry.
func ParseExpiry(raw string) (Expiry, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NoExpiry(), nil
	}

	date, err := time.Parse(DateLayout, raw)
	if err != nil {
		return Expiry{}, fmt.Errorf("subscription: expiry date must be %s: %w", DateLayout, err)
	}
	return ExpiresOn(date), nil
}

// Extend moves current forward by the given number of days. Without a current
// expiry it counts from now.
func Extend(current *time.Time, byDays int, now time.Time) Expiry {
	base := now
	if current != nil {
		base = *current
	}
	return ExpiresOn(base.AddDate(0, 0, byDays))
}

// Date returns the expiry day, or nil when the expiry is removed.
func (expiry Expiry) Date() *time.Time {
	return expiry.date
}

// String renders the wire value, empty when the expiry is removed.
func (expiry Expiry) String() string {
	if expiry.date == nil {
		return ""
	}
	return expiry.date.Format(DateLayout)
}

// MarshalJSON renders the date string, or null.
func (expiry Expiry) MarshalJSON() ([]byte, error) {
	if expiry.date == nil {
		return []byte("null"), nil
	}
	return json.Marshal(expiry.String())
}
