// Package services defines the business logic for reservations and accounts.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

// Reservation-related errors.
var (
	// ErrReservationNotFound indicates that no reservation exists under the
	// requested customer name.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrTableUnavailable is returned when the requested table is already
	// booked at the requested time.
	ErrTableUnavailable = errors.New("table not available at the requested time")

	// ErrTableOutOfRange is returned when the requested table number falls
	// outside the fixed table universe.
	ErrTableOutOfRange = errors.New("table number outside the table universe")

	// ErrDuplicateCustomer is returned when the customer already holds a
	// reservation; each customer may hold at most one at a time.
	ErrDuplicateCustomer = errors.New("customer already has a reservation")

	// ErrPersistenceFailure indicates that a commit reported no effect or
	// otherwise failed after the record was located.
	ErrPersistenceFailure = errors.New("store commit failed")
)

// Account-related errors.
var (
	// ErrUserNotFound indicates that no account exists for the identifier,
	// or that authentication failed (login does not reveal which).
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering or renaming onto an email
	// that already belongs to another account.
	ErrEmailTaken = errors.New("email address already in use")

	// ErrInvalidCredentials is returned when the supplied current password
	// does not match the stored one.
	ErrInvalidCredentials = errors.New("invalid current password")
)
