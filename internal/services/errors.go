// Package services defines the business logic for classified ads.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

var (
	// ErrAdNotFound indicates that the requested ad does not exist.
	ErrAdNotFound = errors.New("ad not found")

	// ErrNotOwner is returned when a mutation is attempted with an author
	// token that does not string-equal the ad's stored authorId.
	ErrNotOwner = errors.New("you can only modify your own ads")
)
