package ticketing

import (
	"testing"
	"time"

	"github.com/citytickets/backend/internal/domain/catalog"
	"github.com/citytickets/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeEvent(t *testing.T, startsIn time.Duration, price int64) *catalog.Event {
	t.Helper()
	event, err := catalog.NewEvent("Show", "", "", decimal.NewFromInt(price), 90,
		time.Now().Add(startsIn), 0, catalog.CategoryConcert, nil)
	require.NoError(t, err)
	return event
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestIssue(t *testing.T) {
	now := time.Now()

	t.Run("issues paid ticket at current price", func(t *testing.T) {
		event := makeEvent(t, 24*time.Hour, 3500)

		ticket, err := Issue(event, uuid.New(), now)
		require.NoError(t, err)

		assert.Equal(t, StatusPaid, ticket.Status)
		assert.True(t, ticket.Price.Equal(decimal.NewFromInt(3500)))
		assert.Nil(t, ticket.UsedAt)
		assert.Nil(t, ticket.RefundedAt)
		assert.True(t, ticket.IsActive())
	})

	t.Run("price change after issue keeps the snapshot", func(t *testing.T) {
		event := makeEvent(t, 24*time.Hour, 3500)
		ticket, err := Issue(event, uuid.New(), now)
		require.NoError(t, err)

		require.NoError(t, event.SetPrice(decimal.NewFromInt(9000)))
		assert.True(t, ticket.Price.Equal(decimal.NewFromInt(3500)))
	})

	t.Run("duplicate purchase for same user is allowed", func(t *testing.T) {
		event := makeEvent(t, 24*time.Hour, 3500)
		userID := uuid.New()

		first, err := Issue(event, userID, now)
		require.NoError(t, err)
		second, err := Issue(event, userID, now)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("rejects nil event", func(t *testing.T) {
		_, err := Issue(nil, uuid.New(), now)
		assertCode(t, err, "INVALID_EVENT")
	})

	t.Run("rejects nil user", func(t *testing.T) {
		_, err := Issue(makeEvent(t, 24*time.Hour, 100), uuid.Nil, now)
		assertCode(t, err, "INVALID_USER")
	})

	t.Run("rejects cancelled event", func(t *testing.T) {
		event := makeEvent(t, 24*time.Hour, 100)
		require.NoError(t, event.Cancel(now))

		_, err := Issue(event, uuid.New(), now)
		assertCode(t, err, "EVENT_CANCELLED")
	})

	t.Run("rejects past event", func(t *testing.T) {
		event := makeEvent(t, 24*time.Hour, 100)
		_, err := Issue(event, uuid.New(), event.StartsAt.Add(time.Minute))
		assertCode(t, err, "EVENT_PASSED")
	})
}

func TestCheckRefundable(t *testing.T) {
	lock := 2 * time.Hour
	eventStart := time.Now().Add(48 * time.Hour)
	event := makeEvent(t, 48*time.Hour, 100)
	event.StartsAt = eventStart

	newTicket := func(t *testing.T) *Ticket {
		ticket, err := Issue(event, uuid.New(), time.Now())
		require.NoError(t, err)
		return ticket
	}

	t.Run("refundable well before the lock", func(t *testing.T) {
		assert.NoError(t, newTicket(t).CheckRefundable(eventStart, eventStart.Add(-3*time.Hour), lock))
	})

	t.Run("one minute before the lock opens", func(t *testing.T) {
		now := eventStart.Add(-lock).Add(-time.Minute)
		assert.NoError(t, newTicket(t).CheckRefundable(eventStart, now, lock))
	})

	t.Run("exactly at the lock boundary", func(t *testing.T) {
		now := eventStart.Add(-lock)
		err := newTicket(t).CheckRefundable(eventStart, now, lock)
		assertCode(t, err, "REFUND_WINDOW_CLOSED")
	})

	t.Run("one minute inside the lock", func(t *testing.T) {
		now := eventStart.Add(-lock).Add(time.Minute)
		err := newTicket(t).CheckRefundable(eventStart, now, lock)
		assertCode(t, err, "REFUND_WINDOW_CLOSED")
	})

	t.Run("event already started", func(t *testing.T) {
		err := newTicket(t).CheckRefundable(eventStart, eventStart, lock)
		assertCode(t, err, "EVENT_PASSED")
	})

	t.Run("non-paid status", func(t *testing.T) {
		ticket := newTicket(t)
		require.NoError(t, ticket.Refund(time.Now()))
		err := ticket.CheckRefundable(eventStart, eventStart.Add(-3*time.Hour), lock)
		assertCode(t, err, "TICKET_NOT_PAID")
	})
}

func TestRefund(t *testing.T) {
	event := makeEvent(t, 48*time.Hour, 100)
	now := time.Now()

	t.Run("stamps refunded_at", func(t *testing.T) {
		ticket, err := Issue(event, uuid.New(), now)
		require.NoError(t, err)

		require.NoError(t, ticket.Refund(now))
		assert.Equal(t, StatusRefunded, ticket.Status)
		require.NotNil(t, ticket.RefundedAt)
		assert.Equal(t, now, *ticket.RefundedAt)
		assert.Nil(t, ticket.UsedAt)
	})

	t.Run("refunding twice fails", func(t *testing.T) {
		ticket, err := Issue(event, uuid.New(), now)
		require.NoError(t, err)
		require.NoError(t, ticket.Refund(now))

		err = ticket.Refund(now.Add(time.Minute))
		assertCode(t, err, "TICKET_ALREADY_REFUNDED")
		assert.Equal(t, now, *ticket.RefundedAt)
	})

	t.Run("used ticket cannot be refunded", func(t *testing.T) {
		ticket, err := Issue(event, uuid.New(), now)
		require.NoError(t, err)
		require.NoError(t, ticket.MarkUsed(now))

		assertCode(t, ticket.Refund(now), "TICKET_USED")
	})
}

func TestMarkUsed(t *testing.T) {
	event := makeEvent(t, 48*time.Hour, 100)
	now := time.Now()

	t.Run("stamps used_at", func(t *testing.T) {
		ticket, err := Issue(event, uuid.New(), now)
		require.NoError(t, err)

		require.NoError(t, ticket.MarkUsed(now))
		assert.Equal(t, StatusUsed, ticket.Status)
		require.NotNil(t, ticket.UsedAt)
		assert.Equal(t, now, *ticket.UsedAt)
		assert.False(t, ticket.IsActive())
	})

	t.Run("using twice fails", func(t *testing.T) {
		ticket, err := Issue(event, uuid.New(), now)
		require.NoError(t, err)
		require.NoError(t, ticket.MarkUsed(now))

		assertCode(t, ticket.MarkUsed(now.Add(time.Minute)), "TICKET_USED")
		assert.Equal(t, now, *ticket.UsedAt)
	})

	t.Run("refunded ticket cannot be used", func(t *testing.T) {
		ticket, err := Issue(event, uuid.New(), now)
		require.NoError(t, err)
		require.NoError(t, ticket.Refund(now))

		assertCode(t, ticket.MarkUsed(now), "TICKET_ALREADY_REFUNDED")
	})

	t.Run("pending refund blocks entry", func(t *testing.T) {
		ticket, err := Issue(event, uuid.New(), now)
		require.NoError(t, err)
		ticket.Status = StatusRefundRequested

		assertCode(t, ticket.MarkUsed(now), "REFUND_PENDING")
	})
}

func TestCancel(t *testing.T) {
	event := makeEvent(t, 48*time.Hour, 100)
	now := time.Now()

	t.Run("cancels paid ticket without stamping timestamps", func(t *testing.T) {
		ticket, err := Issue(event, uuid.New(), now)
		require.NoError(t, err)

		require.NoError(t, ticket.Cancel(now))
		assert.Equal(t, StatusCancelled, ticket.Status)
		assert.Nil(t, ticket.RefundedAt)
		assert.Nil(t, ticket.UsedAt)
	})

	t.Run("terminal statuses reject cancellation", func(t *testing.T) {
		for _, setup := range []struct {
			name     string
			status   Status
			wantCode string
		}{
			{"refunded", StatusRefunded, "TICKET_ALREADY_REFUNDED"},
			{"cancelled", StatusCancelled, "TICKET_CANCELLED"},
			{"used", StatusUsed, "TICKET_USED"},
		} {
			t.Run(setup.name, func(t *testing.T) {
				ticket, err := Issue(event, uuid.New(), now)
				require.NoError(t, err)
				ticket.Status = setup.status

				assertCode(t, ticket.Cancel(now), setup.wantCode)
			})
		}
	})
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPaid.IsTerminal())
	assert.False(t, StatusRefundRequested.IsTerminal())
	assert.True(t, StatusRefunded.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusUsed.IsTerminal())
}
