package ticketing

import (
	"strconv"
	"strings"
	"time"

	"github.com/citytickets/backend/internal/domain/shared"
)

// CardDetails is the payment card input for a purchase. The details are
// validated and then discarded; nothing card-related is ever stored.
type CardDetails struct {
	Number string `json:"number" binding:"required"`
	Expiry string `json:"expiry" binding:"required"` // MM/YY
	CVC    string `json:"cvc" binding:"required"`
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Validate checks the card fields against the accepted formats.
// Expired cards are rejected; a card expiring this month is still good.
func (c CardDetails) Validate(now time.Time) error {
	number := strings.ReplaceAll(c.Number, " ", "")
	if !digitsOnly(number) || len(number) < 12 || len(number) > 19 {
		return shared.NewDomainError("CARD_INVALID", "Enter a valid card number")
	}

	parts := strings.Split(c.Expiry, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return shared.NewDomainError("CARD_INVALID", "Enter the expiry as MM/YY")
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return shared.NewDomainError("CARD_INVALID", "Enter the expiry as MM/YY")
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return shared.NewDomainError("CARD_INVALID", "Enter the expiry as MM/YY")
	}
	year += 2000

	// Valid through the last moment of the expiry month
	endOfMonth := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	if !now.Before(endOfMonth) {
		return shared.NewDomainError("CARD_EXPIRED", "The card has expired")
	}

	if !digitsOnly(c.CVC) || len(c.CVC) < 3 || len(c.CVC) > 4 {
		return shared.NewDomainError("CARD_INVALID", "Enter a valid CVC")
	}
	return nil
}
