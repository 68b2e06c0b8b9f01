// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package money formats prices in the display currency chosen by each admin.

The backend stores amounts as plain numbers; the currency is a per-admin
preference used only for display. Amounts are [decimal.Decimal] so that
prices transported as strings never pick up float artifacts before rendering.

Formatting rules:

  - USD: symbol before the amount, two decimals ("$1,234.50").
  - JOD: code before the amount, two decimals ("JOD 12.50").
  - SP: code before the amount, no forced decimals ("SP 1,500").
*/
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency is a display currency code.
type Currency string

const (
	USD Currency = "USD"
	JOD Currency = "JOD"
	SP  Currency = "SP"

	// Default is used when an admin has not chosen a currency.
	Default = USD
)

// Currencies lists every supported currency in display order.
var Currencies = []Currency{USD, JOD, SP}

// printer groups digits the English way.
var printer = message.NewPrinter(language.English)

// ParseCurrency validates a currency code. Matching is case-insensitive.
func ParseCurrency(code string) (Currency, error) {
	currency := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !currency.Valid() {
		return "", fmt.Errorf("money: unsupported currency %q", code)
	}
	return currency, nil
}

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	switch c {
	case USD, JOD, SP:
		return true
	}
	return false
}

// OrDefault returns c, or [Default] when c is empty or unknown.
func (c Currency) OrDefault() Currency {
	if c.Valid() {
		return c
	}
	return Default
}

// Symbol returns the prefix printed before amounts.
func (c Currency) Symbol() string {
	switch c.OrDefault() {
	case JOD:
		return "JOD"
	case SP:
		return "SP"
	default:
		return "$"
	}
}

// FormatValue renders amount without a currency symbol.
func FormatValue(amount decimal.Decimal, currency Currency) string {
	value := amount.InexactFloat64()
	if currency.OrDefault() == SP {
		return printer.Sprintf("%v", number.Decimal(value))
	}
	return printer.Sprintf("%v", number.Decimal(value, number.Scale(2)))
}

// Format renders amount with its currency symbol.
func Format(amount decimal.Decimal, currency Currency) string {
	currency = currency.OrDefault()
	value := FormatValue(amount, currency)

	if currency == USD {
		return currency.Symbol() + value
	}
	return currency.Symbol() + " " + value
}

// FormatString parses a price transported as a string and formats it.
// Unparseable input is returned unchanged.
func FormatString(raw string, currency Currency) string {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return Format(amount, currency)
}
