package ticketing

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/citytickets/backend/internal/domain/catalog"
	"github.com/citytickets/backend/internal/domain/identity"
	"github.com/citytickets/backend/internal/domain/shared"
	"github.com/citytickets/backend/internal/domain/ticketing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TokenCodec signs and decodes the verification tokens embedded in QR codes
type TokenCodec interface {
	Issue(ticketID uuid.UUID, now time.Time) (string, error)
	Decode(token string, now time.Time) (uuid.UUID, error)
}

// QRGenerator renders URLs as QR PNG images
type QRGenerator interface {
	EncodeURL(url string) ([]byte, error)
}

// TicketArtifact carries everything the printable e-ticket shows
type TicketArtifact struct {
	TicketNumber string
	BuyerLabel   string
	EventTitle   string
	EventStarts  time.Time
	VenueLine    string
	Price        decimal.Decimal
	QRPNG        []byte
}

// TicketRenderer produces the printable e-ticket document
type TicketRenderer interface {
	Render(artifact TicketArtifact) ([]byte, error)
}

// TicketEmail carries the purchase confirmation email content
type TicketEmail struct {
	To           string
	TicketNumber string
	EventTitle   string
	EventStarts  time.Time
	VenueLine    string
	Price        decimal.Decimal
	PDF          []byte
	QRPNG        []byte
}

// Notifier delivers ticket lifecycle emails. Delivery failures never fail
// the operation that triggered them.
type Notifier interface {
	SendTicket(mail TicketEmail) error
	SendRefundNotice(to, eventTitle, ticketNumber string, amount decimal.Decimal) error
}

// Cooldown is the advisory anti-double-submit guard on purchases
type Cooldown interface {
	Acquire(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
}

// MetricsRecorder counts ticket lifecycle outcomes
type MetricsRecorder interface {
	RecordTicketSold()
	RecordTicketRefunded()
	RecordTicketCheckedIn()
	RecordPurchase(d time.Duration)
}

// LifecycleService drives the ticket lifecycle from purchase to the door
type LifecycleService struct {
	tickets       ticketing.TicketRepository
	events        catalog.EventRepository
	venues        catalog.VenueRepository
	users         identity.UserRepository
	tokens        TokenCodec
	qr            QRGenerator
	renderer      TicketRenderer
	notifier      Notifier
	cooldown      Cooldown
	metrics       MetricsRecorder
	logger        *zap.Logger
	refundLock    time.Duration
	verifyBaseURL string
	now           func() time.Time
}

// LifecycleConfig bundles the service's tunables
type LifecycleConfig struct {
	RefundLock    time.Duration
	VerifyBaseURL string
}

// NewLifecycleService creates a LifecycleService
func NewLifecycleService(
	tickets ticketing.TicketRepository,
	events catalog.EventRepository,
	venues catalog.VenueRepository,
	users identity.UserRepository,
	tokens TokenCodec,
	qr QRGenerator,
	renderer TicketRenderer,
	notifier Notifier,
	cooldown Cooldown,
	metrics MetricsRecorder,
	cfg LifecycleConfig,
	logger *zap.Logger,
) *LifecycleService {
	return &LifecycleService{
		tickets:       tickets,
		events:        events,
		venues:        venues,
		users:         users,
		tokens:        tokens,
		qr:            qr,
		renderer:      renderer,
		notifier:      notifier,
		cooldown:      cooldown,
		metrics:       metrics,
		logger:        logger,
		refundLock:    cfg.RefundLock,
		verifyBaseURL: cfg.VerifyBaseURL,
		now:           time.Now,
	}
}

// TicketNumber is the short human-facing form of a ticket id
func TicketNumber(id uuid.UUID) string {
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

// PurchaseRequest carries purchase input
type PurchaseRequest struct {
	EventID uuid.UUID   `json:"event_id" binding:"required"`
	Card    CardDetails `json:"card" binding:"required"`
}

// Purchase validates payment, issues a ticket at the event's current price
// and emails the e-ticket. The email is best effort: a delivery failure
// leaves the purchase intact.
func (s *LifecycleService) Purchase(ctx context.Context, userID uuid.UUID, req PurchaseRequest) (*ticketing.Ticket, error) {
	started := s.now()

	if err := req.Card.Validate(started); err != nil {
		return nil, err
	}

	ok, err := s.cooldown.Acquire(ctx, userID, req.EventID)
	if err != nil {
		// Redis being down must not stop sales; the guard is advisory
		s.logger.Warn("purchase cooldown unavailable", zap.Error(err))
	} else if !ok {
		return nil, shared.NewDomainError("PURCHASE_IN_PROGRESS", "A purchase for this event was just made, try again in a moment")
	}

	event, err := s.events.FindByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, shared.ErrNotFound
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.ErrNotFound
	}

	ticket, err := ticketing.Issue(event, userID, started)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(ticket.ID, started)
	if err != nil {
		return nil, err
	}
	png, err := s.qr.EncodeURL(s.verifyURL(ticket.ID, token))
	if err != nil {
		return nil, err
	}
	ticket.AttachQR(png)

	if err := s.tickets.Save(ctx, ticket); err != nil {
		return nil, err
	}

	s.metrics.RecordTicketSold()
	s.metrics.RecordPurchase(s.now().Sub(started))
	s.logger.Info("ticket sold",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("event_id", event.ID.String()),
		zap.String("user_id", userID.String()))

	s.emailTicket(ctx, ticket, event, user)
	return ticket, nil
}

func (s *LifecycleService) verifyURL(ticketID uuid.UUID, token string) string {
	return fmt.Sprintf("%s/tickets/%s/verify?token=%s", s.verifyBaseURL, ticketID, url.QueryEscape(token))
}

// emailTicket sends the e-ticket with PDF and QR attached, best effort
func (s *LifecycleService) emailTicket(ctx context.Context, ticket *ticketing.Ticket, event *catalog.Event, user *identity.User) {
	buyer := user.Email
	if buyer == "" {
		buyer = user.Phone
	}

	artifact := TicketArtifact{
		TicketNumber: TicketNumber(ticket.ID),
		BuyerLabel:   buyer,
		EventTitle:   event.Title,
		EventStarts:  event.StartsAt,
		VenueLine:    s.venueLine(ctx, event),
		Price:        ticket.Price,
		QRPNG:        ticket.QRPNG,
	}

	pdfBytes, err := s.renderer.Render(artifact)
	if err != nil {
		s.logger.Error("failed to render ticket pdf",
			zap.String("ticket_id", ticket.ID.String()), zap.Error(err))
		pdfBytes = nil
	}

	err = s.notifier.SendTicket(TicketEmail{
		To:           user.Email,
		TicketNumber: artifact.TicketNumber,
		EventTitle:   event.Title,
		EventStarts:  event.StartsAt,
		VenueLine:    artifact.VenueLine,
		Price:        ticket.Price,
		PDF:          pdfBytes,
		QRPNG:        ticket.QRPNG,
	})
	if err != nil {
		s.logger.Error("failed to email ticket",
			zap.String("ticket_id", ticket.ID.String()), zap.Error(err))
	}
}

func (s *LifecycleService) venueLine(ctx context.Context, event *catalog.Event) string {
	if event.VenueID == nil {
		return ""
	}
	venue, err := s.venues.FindByID(ctx, *event.VenueID)
	if err != nil || venue == nil {
		return ""
	}
	return venue.Line()
}

// MyTickets returns the user's tickets, newest first
func (s *LifecycleService) MyTickets(ctx context.Context, userID uuid.UUID) ([]ticketing.Ticket, error) {
	return s.tickets.FindByUser(ctx, userID)
}

// GetOwned returns the ticket only when it belongs to the user.
// Someone else's ticket id looks exactly like a nonexistent one.
func (s *LifecycleService) GetOwned(ctx context.Context, ticketID, userID uuid.UUID) (*ticketing.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil || ticket.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return ticket, nil
}

// TicketPDF renders the printable e-ticket for the user's own ticket
func (s *LifecycleService) TicketPDF(ctx context.Context, ticketID, userID uuid.UUID) ([]byte, error) {
	ticket, err := s.GetOwned(ctx, ticketID, userID)
	if err != nil {
		return nil, err
	}

	event, err := s.events.FindByID(ctx, ticket.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, shared.ErrNotFound
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.ErrNotFound
	}

	buyer := user.Email
	if buyer == "" {
		buyer = user.Phone
	}

	return s.renderer.Render(TicketArtifact{
		TicketNumber: TicketNumber(ticket.ID),
		BuyerLabel:   buyer,
		EventTitle:   event.Title,
		EventStarts:  event.StartsAt,
		VenueLine:    s.venueLine(ctx, event),
		Price:        ticket.Price,
		QRPNG:        ticket.QRPNG,
	})
}

// RequestRefund refunds the user's ticket if the refund window is still open
func (s *LifecycleService) RequestRefund(ctx context.Context, ticketID, userID uuid.UUID) (*ticketing.Ticket, error) {
	ticket, err := s.GetOwned(ctx, ticketID, userID)
	if err != nil {
		return nil, err
	}

	event, err := s.events.FindByID(ctx, ticket.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, shared.ErrNotFound
	}

	now := s.now()
	if err := ticket.CheckRefundable(event.StartsAt, now, s.refundLock); err != nil {
		return nil, err
	}
	if err := ticket.Refund(now); err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.metrics.RecordTicketRefunded()
	s.logger.Info("ticket refunded",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("user_id", userID.String()))

	s.notifyRefund(ctx, ticket, event.Title)
	return ticket, nil
}

func (s *LifecycleService) notifyRefund(ctx context.Context, ticket *ticketing.Ticket, eventTitle string) {
	user, err := s.users.FindByID(ctx, ticket.UserID)
	if err != nil || user == nil {
		return
	}
	if err := s.notifier.SendRefundNotice(user.Email, eventTitle, TicketNumber(ticket.ID), ticket.Price); err != nil {
		s.logger.Error("failed to email refund notice",
			zap.String("ticket_id", ticket.ID.String()), zap.Error(err))
	}
}

// Verify checks a scanned token against the claimed ticket id and reports
// the verdict without touching the ticket. The token subject must equal
// the id as a parsed UUID. Scanning a QR any number of times changes
// nothing.
func (s *LifecycleService) Verify(ctx context.Context, ticketID uuid.UUID, token string) ticketing.Verdict {
	now := s.now()

	subject, err := s.tokens.Decode(token, now)
	if err != nil || subject != ticketID {
		return ticketing.InvalidTokenVerdict()
	}

	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil || ticket == nil {
		return ticketing.InvalidTokenVerdict()
	}

	event, err := s.events.FindByID(ctx, ticket.EventID)
	if err != nil || event == nil {
		return ticketing.InvalidTokenVerdict()
	}

	return ticketing.Evaluate(ticket, event.StartsAt, now)
}

// CheckIn verifies the token and, when the verdict is valid, marks the
// ticket used. Only the transition from paid to used exists.
func (s *LifecycleService) CheckIn(ctx context.Context, ticketID uuid.UUID, token string) (ticketing.Verdict, error) {
	now := s.now()

	subject, err := s.tokens.Decode(token, now)
	if err != nil || subject != ticketID {
		return ticketing.InvalidTokenVerdict(), nil
	}

	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return ticketing.Verdict{}, err
	}
	if ticket == nil {
		return ticketing.InvalidTokenVerdict(), nil
	}

	event, err := s.events.FindByID(ctx, ticket.EventID)
	if err != nil {
		return ticketing.Verdict{}, err
	}
	if event == nil {
		return ticketing.InvalidTokenVerdict(), nil
	}

	verdict := ticketing.Evaluate(ticket, event.StartsAt, now)
	if !verdict.Valid {
		return verdict, nil
	}

	if err := ticket.MarkUsed(now); err != nil {
		return ticketing.Verdict{}, err
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return ticketing.Verdict{}, err
	}

	s.metrics.RecordTicketCheckedIn()
	s.logger.Info("ticket checked in", zap.String("ticket_id", ticket.ID.String()))
	return verdict, nil
}

// CancelTicketsForEvent voids every still-active ticket of a cancelled
// event. Terminal tickets are left untouched.
func (s *LifecycleService) CancelTicketsForEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	all, err := s.tickets.FindByEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}

	now := s.now()
	voided := 0
	for i := range all {
		ticket := &all[i]
		if ticket.Status.IsTerminal() {
			continue
		}
		if err := ticket.Cancel(now); err != nil {
			return voided, err
		}
		if err := s.tickets.Update(ctx, ticket); err != nil {
			return voided, err
		}
		voided++
	}
	return voided, nil
}

// RefundTicketsForEventRemoval refunds every refundable ticket before the
// event is deleted. Already refunded, used and cancelled tickets are
// skipped. A failed email never blocks the remaining refunds.
func (s *LifecycleService) RefundTicketsForEventRemoval(ctx context.Context, eventID uuid.UUID) (int, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if event == nil {
		return 0, shared.ErrNotFound
	}

	all, err := s.tickets.FindByEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}

	now := s.now()
	refunded := 0
	for i := range all {
		ticket := &all[i]
		if ticket.Status.IsTerminal() {
			continue
		}
		if err := ticket.Refund(now); err != nil {
			return refunded, err
		}
		if err := s.tickets.Update(ctx, ticket); err != nil {
			return refunded, err
		}
		refunded++
		s.metrics.RecordTicketRefunded()
		s.notifyRefund(ctx, ticket, event.Title)
	}
	return refunded, nil
}
