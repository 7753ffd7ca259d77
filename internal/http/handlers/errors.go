// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP
// responses (via the `fail()` helper in this package). These codes give clients
// a stable, machine-readable error taxonomy that supplements human-readable
// messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, unauthorized, conflict) mirror common HTTP
//     status semantics to aid interoperability.
//   - Domain-specific codes (e.g., table_unavailable, email_taken) are reserved
//     for business rule violations that the status alone cannot convey.
//   - All error responses must include both an HTTP status and one of these codes.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "table_unavailable",
//	  "message": "table 5 is already booked at the requested time"
//	}
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeTableUnavailable     = "table_unavailable"
	ErrCodeTableOutOfRange      = "table_out_of_range"
	ErrCodeDuplicateReservation = "duplicate_reservation"
	ErrCodeEmailTaken           = "email_taken"
	ErrCodeInvalidCredentials   = "invalid_credentials"
	ErrCodePersistenceFailed    = "persistence_failed"
	ErrCodeListFailed           = "list_failed"
	ErrCodeMethodNotAllowed     = "method_not_allowed"
)
