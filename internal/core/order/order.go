// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package order manages customer orders.

# Architecture

  - Entities: [Order] and [Item], with decimal money fields.
  - Backend: GET /orders, GET/PATCH /orders/:id, PATCH /orders/:id/status.
  - Totals: the backend computes the total of record; [ComputeTotal] reproduces
    it for the edit preview and for consistency checks.
*/
package order

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/validate"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/slice"
)

// # Domain Entities

// ProductRef is the product of an order line. The backend sends either the
// bare identifier or a summary object.
type ProductRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

// UnmarshalJSON accepts a string identifier or a summary object.
func (ref *ProductRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*ref = ProductRef{ID: id}
		return nil
	}

	type plain ProductRef
	var summary plain
	if err := json.Unmarshal(data, &summary); err != nil {
		return fmt.Errorf("order: product reference must be a string or object: %w", err)
	}
	*ref = ProductRef(summary)
	return nil
}

// Item is one order line.
type Item struct {
	Product ProductRef      `json:"prod_id"`
	Count   int             `json:"count"`
	Size    string          `json:"size,omitempty"`
	Color   string          `json:"color,omitempty"`
	Price   decimal.Decimal `json:"price"`
}

// LineTotal returns price × count.
func (item Item) LineTotal() decimal.Decimal {
	return item.Price.Mul(decimal.NewFromInt(int64(item.Count)))
}

// Order is a customer order as returned by the backend.
type Order struct {
	ID             string          `json:"_id"`
	User           identity.Ref    `json:"user"`
	Items          []Item          `json:"items"`
	Address        string          `json:"address"`
	PhoneNumber    string          `json:"phoneNumber"`
	UserName       string          `json:"userName"`
	Shipping       decimal.Decimal `json:"shipping"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
	Status         Status          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	CreatedByAdmin *identity.Ref   `json:"createdByAdmin,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// # Totals

// Subtotal returns the sum of price × count over items.
func Subtotal(items []Item) decimal.Decimal {
	return slice.Reduce(items, decimal.Zero, func(subtotal decimal.Decimal, item Item) decimal.Decimal {
		return subtotal.Add(item.LineTotal())
	})
}

// ComputeTotal returns subtotal + shipping − discount, clamped at zero.
func ComputeTotal(items []Item, shipping, discount decimal.Decimal) decimal.Decimal {
	total := Subtotal(items).Add(shipping).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// ExpectedTotal recomputes the total from the order lines.
func (order Order) ExpectedTotal() decimal.Decimal {
	return ComputeTotal(order.Items, order.Shipping, order.Discount)
}

// TotalConsistent reports whether the server total matches the order lines.
func (order Order) TotalConsistent() bool {
	return order.Total.Equal(order.ExpectedTotal())
}

// # Status

// Status is the fulfilment state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every order status in fulfilment order.
var Statuses = []Status{StatusPending, StatusPaid, StatusShipped, StatusCompleted, StatusCancelled}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus validates a status string.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if !status.Valid() {
		return "", fmt.Errorf("order: unknown status %q", raw)
	}
	return status, nil
}

// # Filters

const (
	FieldItems     = "items"
	FieldShipping  = "shipping"
	FieldDiscount  = "discount"
	FieldStatus    = "status"
	FieldUser      = "user"
	FieldSort      = "sort"
	FieldSortBy    = "sortBy"
	FieldStartDate = "startDate"
	FieldEndDate   = "endDate"
)

// Filter narrows the orders list. Blank fields are not sent.
type Filter struct {
	Status    Status
	User      string
	Sort      string
	SortBy    string
	StartDate string
	EndDate   string
}

// ParseFilter reads the filter from a dashboard query string.
func ParseFilter(values url.Values) Filter {
	return Filter{
		Status:    Status(values.Get(FieldStatus)),
		User:      values.Get(FieldUser),
		Sort:      values.Get(FieldSort),
		SortBy:    values.Get(FieldSortBy),
		StartDate: values.Get(FieldStartDate),
		EndDate:   values.Get(FieldEndDate),
	}
}

// Apply adds the non-blank filter fields to values.
func (filter Filter) Apply(values url.Values) {
	set := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			values.Set(key, value)
		}
	}

	set(FieldStatus, string(filter.Status))
	set(FieldUser, filter.User)
	set(FieldSort, filter.Sort)
	set(FieldSortBy, filter.SortBy)
	set(FieldStartDate, filter.StartDate)
	set(FieldEndDate, filter.EndDate)
}

// # Forms

// UpdateForm is the order edit form.
type UpdateForm struct {
	Items       []Item          `json:"items"`
	UserName    string          `json:"userName"`
	PhoneNumber string          `json:"phoneNumber"`
	Address     string          `json:"address"`
	Shipping    decimal.Decimal `json:"shipping"`
	Discount    decimal.Decimal `json:"discount"`
	Notes       string          `json:"notes"`
	Status      Status          `json:"status"`
}

// Total previews the total the backend will compute for the form.
func (form UpdateForm) Total() decimal.Decimal {
	return ComputeTotal(form.Items, form.Shipping, form.Discount)
}

// Validate checks the lines, the money fields and the status.
func (form UpdateForm) Validate() error {
	validator := &validate.Validator{}

	for index, item := range form.Items {
		field := fmt.Sprintf("%s[%d]", FieldItems, index)
		validator.Custom(field+".prod_id", item.Product.ID == "", "Product is required")
		validator.Custom(field+".count", item.Count < 1, "Must be at least 1")
		validator.NonNegative(field+".price", item.Price)
	}

	validator.NonNegative(FieldShipping, form.Shipping)
	validator.NonNegative(FieldDiscount, form.Discount)

	if form.Status != "" {
		validator.Custom(FieldStatus, !form.Status.Valid(), "Unknown status")
	}

	return validator.Err()
}

type wireItem struct {
	Product string      `json:"prod_id"`
	Count   int         `json:"count"`
	Size    string      `json:"size,omitempty"`
	Color   string      `json:"color,omitempty"`
	Price   json.Number `json:"price"`
}

// MarshalJSON sends product references as identifiers and money as numbers.
func (form UpdateForm) MarshalJSON() ([]byte, error) {
	items := make([]wireItem, 0, len(form.Items))
	for _, item := range form.Items {
		items = append(items, wireItem{
			Product: item.Product.ID,
			Count:   item.Count,
			Size:    item.Size,
			Color:   item.Color,
			Price:   json.Number(item.Price.String()),
		})
	}

	return json.Marshal(struct {
		Items       []wireItem  `json:"items"`
		UserName    string      `json:"userName"`
		PhoneNumber string      `json:"phoneNumber"`
		Address     string      `json:"address"`
		Shipping    json.Number `json:"shipping"`
		Discount    json.Number `json:"discount"`
		Notes       string      `json:"notes"`
		Status      Status      `json:"status,omitempty"`
	}{
		Items:       items,
		UserName:    form.UserName,
		PhoneNumber: form.PhoneNumber,
		Address:     form.Address,
		Shipping:    json.Number(form.Shipping.String()),
		Discount:    json.Number(form.Discount.String()),
		Notes:       form.Notes,
		Status:      form.Status,
	})
}
