package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},

		{"BAD_CREDENTIALS", http.StatusUnauthorized},
		{"TOKEN_EXPIRED", http.StatusUnauthorized},
		{"STAFF_LOGIN_BLOCKED", http.StatusForbidden},
		{"EDIT_NOT_CONFIRMED", http.StatusForbidden},

		{"VENUE_NOT_FOUND", http.StatusNotFound},
		{"PHONE_TAKEN", http.StatusConflict},
		{"EMAIL_TAKEN", http.StatusConflict},
		{"ALREADY_EXISTS", http.StatusConflict},

		{"CODE_INVALID", http.StatusBadRequest},
		{"CARD_INVALID", http.StatusBadRequest},

		{"CARD_EXPIRED", http.StatusUnprocessableEntity},
		{"EVENT_PASSED", http.StatusUnprocessableEntity},
		{"TICKET_ALREADY_REFUNDED", http.StatusUnprocessableEntity},
		{"REFUND_WINDOW_CLOSED", http.StatusUnprocessableEntity},

		{"PURCHASE_IN_PROGRESS", http.StatusTooManyRequests},
		{"MAIL_ERROR", http.StatusBadGateway},

		// INVALID_ prefix falls back to 400 without a table entry
		{"INVALID_PHONE", http.StatusBadRequest},
		{"INVALID_PERIOD", http.StatusBadRequest},
		{"INVALID_QUANTITY", http.StatusBadRequest},

		// unknown codes never hide a failure
		{"SOMETHING_ELSE", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}
