// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"errors"
	"strconv"
	"strings"
)

// ErrBadPrice is returned when a submitted price field is not a usable
// non-negative number.
var ErrBadPrice = errors.New("invalid price value")

// ParsePrice converts a submitted price form field into an optional price.
// An empty (or all-whitespace) field means "not specified" and yields nil
// with no error, mirroring the browser form's parseFloat-or-null behavior.
// Anything unparseable or negative yields ErrBadPrice.
//
// Example:
//
//	p, _ := utils.ParsePrice("100")   // *100.0
//	p, _ = utils.ParsePrice("")       // nil
//	_, err := utils.ParsePrice("-5")  // ErrBadPrice
func ParsePrice(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return nil, ErrBadPrice
	}
	return &f, nil
}
