package domain

import "errors"

var (
	// ErrConflict is returned by the store when an insert hits a uniqueness constraint
	ErrConflict = errors.New("unique constraint conflict")

	// ErrNotFound is returned when a row expected to exist is missing
	ErrNotFound = errors.New("record not found")

	// ErrInvalidSource is returned when an event carries an unknown attribution source
	ErrInvalidSource = errors.New("invalid source")

	// ErrInvalidListingID is returned when a listing ID is not a valid identifier
	ErrInvalidListingID = errors.New("invalid listing id")
)
