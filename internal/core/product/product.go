// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package product manages the shop catalog.

# Architecture

  - Entities: [Product] with a decimal price transported as a string.
  - Backend: GET/POST/PATCH /products, PATCH /products/:id/status and
    DELETE /products/product/:id.
  - Images: a product form carries either an image URL or an attached file;
    the latter switches the request body to multipart.
*/
package product

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/validate"
)

// # Domain Entities

// Product is a catalog entry as returned by the backend.
type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
	Sizes       []string        `json:"sizes,omitempty"`
	Status      Status          `json:"status"`

	// VisibleToUsers restricts the product to these principals. Empty means everyone.
	VisibleToUsers []string `json:"visibleToUsers,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// VisibleTo reports whether the product is shown to the principal with userID.
func (product Product) VisibleTo(userID string) bool {
	if len(product.VisibleToUsers) == 0 {
		return true
	}
	for _, id := range product.VisibleToUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// # Status

// Status is the lifecycle state of a product.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)

// Statuses lists every product status.
var Statuses = []Status{StatusActive, StatusInactive, StatusDeleted}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	}
	return false
}

// ParseStatus validates a status string.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if !status.Valid() {
		return "", fmt.Errorf("product: unknown status %q", raw)
	}
	return status, nil
}

// # Filters

const (
	FieldName           = "name"
	FieldImage          = "image"
	FieldCategory       = "category"
	FieldPrice          = "price"
	FieldDescription    = "description"
	FieldColors         = "colors"
	FieldSizes          = "sizes"
	FieldVisibleToUsers = "visibleToUsers"
	FieldStatus         = "status"
	FieldSort           = "sort"
	FieldSortBy         = "sortBy"
)

// Filter narrows the products list. Blank fields are not sent.
type Filter struct {
	Category string
	Status   Status
	Sort     string
	SortBy   string
}

// ParseFilter reads the filter from a dashboard query string.
func ParseFilter(values url.Values) Filter {
	return Filter{
		Category: values.Get(FieldCategory),
		Status:   Status(values.Get(FieldStatus)),
		Sort:     values.Get(FieldSort),
		SortBy:   values.Get(FieldSortBy),
	}
}

// Apply adds the non-blank filter fields to values.
func (filter Filter) Apply(values url.Values) {
	if strings.TrimSpace(filter.Category) != "" {
		values.Set(FieldCategory, filter.Category)
	}
	if strings.TrimSpace(string(filter.Status)) != "" {
		values.Set(FieldStatus, string(filter.Status))
	}
	if filter.Sort != "" {
		values.Set(FieldSort, filter.Sort)
	}
	if filter.SortBy != "" {
		values.Set(FieldSortBy, filter.SortBy)
	}
}

// # Forms

// ImageFile is an image attached to a product form.
type ImageFile struct {
	Name    string
	Content []byte
}

// Form is the create and edit form of a product.
//
// Image holds a URL or backend path. When File is set it takes precedence and
// the form is sent as multipart.
type Form struct {
	Name           string     `json:"name"`
	Image          string     `json:"image,omitempty"`
	File           *ImageFile `json:"-"`
	Category       string     `json:"category"`
	Price          string     `json:"price"`
	Description    string     `json:"description,omitempty"`
	Colors         []string   `json:"colors,omitempty"`
	Sizes          []string   `json:"sizes,omitempty"`
	VisibleToUsers []string   `json:"visibleToUsers,omitempty"`
}

// HasFile reports whether an image file is attached.
func (form Form) HasFile() bool {
	return form.File != nil && len(form.File.Content) > 0
}

// Validate requires a name, an image, a category and a non-negative price.
func (form Form) Validate() error {
	validator := &validate.Validator{}
	validator.Custom(FieldName, strings.TrimSpace(form.Name) == "", "Product name is required")
	validator.Custom(FieldImage, !form.HasFile() && strings.TrimSpace(form.Image) == "", "Image is required")
	validator.Custom(FieldCategory, strings.TrimSpace(form.Category) == "", "Category is required")

	if strings.TrimSpace(form.Price) == "" {
		validator.Custom(FieldPrice, true, "Price is required")
	} else {
		validator.Decimal(FieldPrice, form.Price)
	}

	return validator.Err()
}
