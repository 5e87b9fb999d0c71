package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes with an INVALID_ prefix fall back to 400 without a table entry.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Authentication
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"BAD_CREDENTIALS":     http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	"STAFF_LOGIN_BLOCKED": http.StatusForbidden,
	"EDIT_NOT_CONFIRMED":  http.StatusForbidden,

	// Resources
	ErrCodeNotFound:   http.StatusNotFound,
	"VENUE_NOT_FOUND": http.StatusNotFound,
	"ALREADY_EXISTS":  http.StatusConflict,
	"PHONE_TAKEN":     http.StatusConflict,
	"EMAIL_TAKEN":     http.StatusConflict,

	// Input
	"CODE_INVALID": http.StatusBadRequest,
	"CARD_INVALID": http.StatusBadRequest,

	// Business rules -> 422 Unprocessable Entity
	"CARD_EXPIRED":            http.StatusUnprocessableEntity,
	"EVENT_CANCELLED":         http.StatusUnprocessableEntity,
	"EVENT_ALREADY_CANCELLED": http.StatusUnprocessableEntity,
	"EVENT_PASSED":            http.StatusUnprocessableEntity,
	"TICKET_NOT_PAID":         http.StatusUnprocessableEntity,
	"TICKET_USED":             http.StatusUnprocessableEntity,
	"TICKET_CANCELLED":        http.StatusUnprocessableEntity,
	"TICKET_ALREADY_REFUNDED": http.StatusUnprocessableEntity,
	"REFUND_WINDOW_CLOSED":    http.StatusUnprocessableEntity,
	"REFUND_PENDING":          http.StatusUnprocessableEntity,
	"INVALID_STATE":           http.StatusUnprocessableEntity,

	// Throttling
	"PURCHASE_IN_PROGRESS": http.StatusTooManyRequests,

	// Delivery
	"MAIL_ERROR": http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// Unknown codes map to 500 so a missing table entry never hides a failure.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
