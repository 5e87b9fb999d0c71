package ticketing

import (
	"time"

	"github.com/citytickets/backend/internal/domain/catalog"
	"github.com/citytickets/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of a ticket
type Status string

const (
	// StatusPaid is the initial status of every issued ticket
	StatusPaid Status = "paid"
	// StatusRefundRequested marks a refund awaiting manual processing.
	// No current operation produces it; it is kept so historic rows
	// remain representable and every transition site stays exhaustive.
	StatusRefundRequested Status = "refund_requested"
	// StatusRefunded is terminal: money was returned
	StatusRefunded Status = "refunded"
	// StatusCancelled is terminal: the event was cancelled
	StatusCancelled Status = "cancelled"
	// StatusUsed is terminal: the ticket was checked in
	StatusUsed Status = "used"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPaid, StatusRefundRequested, StatusRefunded, StatusCancelled, StatusUsed:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if no further transition may leave the status
func (s Status) IsTerminal() bool {
	return s == StatusRefunded || s == StatusCancelled || s == StatusUsed
}

// Ticket is the aggregate root of the ticket lifecycle.
//
// Invariants:
//   - Price is a snapshot taken at purchase and never changes with the event.
//   - Status == used  ⇔ UsedAt is set; Status == refunded ⇔ RefundedAt is set.
//   - Terminal statuses (refunded, cancelled, used) admit no transition.
type Ticket struct {
	shared.BaseEntity
	EventID    uuid.UUID
	UserID     uuid.UUID
	Price      decimal.Decimal
	Status     Status
	RefundedAt *time.Time
	UsedAt     *time.Time
	// QRPNG is the rendered QR image of the signed verification URL,
	// generated once at issuance.
	QRPNG []byte
}

// Issue creates a paid ticket for the event at its current price.
// There is deliberately no one-ticket-per-user-per-event restriction.
func Issue(event *catalog.Event, userID uuid.UUID, now time.Time) (*Ticket, error) {
	if event == nil {
		return nil, shared.NewDomainError("INVALID_EVENT", "Event cannot be nil")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if event.Cancelled {
		return nil, shared.NewDomainError("EVENT_CANCELLED", "Event has been cancelled")
	}
	if event.HasPassed(now) {
		return nil, shared.NewDomainError("EVENT_PASSED", "Event has already taken place")
	}

	return &Ticket{
		BaseEntity: shared.NewBaseEntity(),
		EventID:    event.ID,
		UserID:     userID,
		Price:      event.Price,
		Status:     StatusPaid,
	}, nil
}

// AttachQR stores the rendered QR image. Set once at issuance.
func (t *Ticket) AttachQR(png []byte) {
	t.QRPNG = png
}

// CheckRefundable verifies the ordered refund preconditions without
// mutating the ticket. Each violation yields its own rejection reason:
//  1. status must be exactly paid
//  2. the ticket must not have been used
//  3. the event must not have started
//  4. the refund lock window before the start must not have opened
func (t *Ticket) CheckRefundable(eventStart time.Time, now time.Time, lock time.Duration) error {
	if t.Status != StatusPaid {
		return shared.NewDomainError("TICKET_NOT_PAID", "Only paid tickets can be refunded")
	}
	if t.UsedAt != nil {
		return shared.NewDomainError("TICKET_USED", "Ticket has already been used")
	}
	if !eventStart.After(now) {
		return shared.NewDomainError("EVENT_PASSED", "Event has already started")
	}
	if !now.Before(eventStart.Add(-lock)) {
		return shared.NewDomainError("REFUND_WINDOW_CLOSED", "Refunds close before the event starts")
	}
	return nil
}

// Refund transitions the ticket to refunded and stamps RefundedAt.
// Every status is matched explicitly so an unknown value cannot slip
// through a transition site.
func (t *Ticket) Refund(now time.Time) error {
	switch t.Status {
	case StatusPaid, StatusRefundRequested:
		t.Status = StatusRefunded
		t.RefundedAt = &now
		t.Touch()
		return nil
	case StatusRefunded:
		return shared.NewDomainError("TICKET_ALREADY_REFUNDED", "Ticket has already been refunded")
	case StatusCancelled:
		return shared.NewDomainError("TICKET_CANCELLED", "Ticket was cancelled")
	case StatusUsed:
		return shared.NewDomainError("TICKET_USED", "Ticket has already been used")
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown ticket status")
	}
}

// MarkUsed transitions the ticket to used and stamps UsedAt
func (t *Ticket) MarkUsed(now time.Time) error {
	switch t.Status {
	case StatusPaid:
		t.Status = StatusUsed
		t.UsedAt = &now
		t.Touch()
		return nil
	case StatusRefundRequested:
		return shared.NewDomainError("REFUND_PENDING", "A refund is pending for this ticket")
	case StatusRefunded:
		return shared.NewDomainError("TICKET_ALREADY_REFUNDED", "Ticket has already been refunded")
	case StatusCancelled:
		return shared.NewDomainError("TICKET_CANCELLED", "Ticket was cancelled")
	case StatusUsed:
		return shared.NewDomainError("TICKET_USED", "Ticket has already been used")
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown ticket status")
	}
}

// Cancel transitions the ticket to cancelled (event-level cancellation)
func (t *Ticket) Cancel(now time.Time) error {
	switch t.Status {
	case StatusPaid, StatusRefundRequested:
		t.Status = StatusCancelled
		t.Touch()
		return nil
	case StatusRefunded:
		return shared.NewDomainError("TICKET_ALREADY_REFUNDED", "Ticket has already been refunded")
	case StatusCancelled:
		return shared.NewDomainError("TICKET_CANCELLED", "Ticket is already cancelled")
	case StatusUsed:
		return shared.NewDomainError("TICKET_USED", "Ticket has already been used")
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown ticket status")
	}
}

// IsActive reports whether the ticket still grants entry
func (t *Ticket) IsActive() bool {
	return t.Status == StatusPaid
}
