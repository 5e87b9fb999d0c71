package ticketing

import "time"

// Verdict is the outcome of verifying a ticket at the door.
// Producing a verdict never mutates the ticket.
type Verdict struct {
	Valid  bool   `json:"valid"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// Verdict codes, in precedence order. InvalidToken outranks everything and
// is produced by the token layer before the ticket is even loaded.
const (
	VerdictInvalidToken  = "INVALID_QR"
	VerdictRefunded      = "TICKET_REFUNDED"
	VerdictCancelled     = "TICKET_CANCELLED"
	VerdictUsed          = "TICKET_USED"
	VerdictRefundPending = "REFUND_PENDING"
	VerdictEventPassed   = "EVENT_PASSED"
	VerdictValid         = "VALID"
)

// InvalidTokenVerdict is returned for any token failure: bad signature,
// tampered payload or expiry. The reasons are deliberately not
// distinguished; the remedy for the holder is the same either way.
func InvalidTokenVerdict() Verdict {
	return Verdict{
		Valid:  false,
		Code:   VerdictInvalidToken,
		Reason: "QR code is invalid or expired",
	}
}

// Evaluate inspects ticket and event state and returns the verdict with the
// fixed precedence: refunded > cancelled > used > event passed > valid.
func Evaluate(t *Ticket, eventStart time.Time, now time.Time) Verdict {
	switch t.Status {
	case StatusRefunded:
		return Verdict{Valid: false, Code: VerdictRefunded, Reason: "Ticket has been refunded"}
	case StatusCancelled:
		return Verdict{Valid: false, Code: VerdictCancelled, Reason: "Ticket was cancelled"}
	case StatusUsed:
		return Verdict{Valid: false, Code: VerdictUsed, Reason: "Ticket has already been used"}
	case StatusRefundRequested:
		return Verdict{Valid: false, Code: VerdictRefundPending, Reason: "A refund is pending for this ticket"}
	case StatusPaid:
		if eventStart.Before(now) {
			return Verdict{Valid: false, Code: VerdictEventPassed, Reason: "Event has already taken place"}
		}
		return Verdict{Valid: true, Code: VerdictValid, Reason: "Ticket is valid"}
	default:
		return InvalidTokenVerdict()
	}
}
