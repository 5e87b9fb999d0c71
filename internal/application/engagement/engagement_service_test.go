package engagement

import (
	"context"
	"testing"
	"time"

	"github.com/citytickets/backend/internal/domain/catalog"
	"github.com/citytickets/backend/internal/domain/engagement"
	"github.com/citytickets/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFavoriteRepo struct {
	favorites map[uuid.UUID]*engagement.Favorite
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: make(map[uuid.UUID]*engagement.Favorite)}
}

func (r *fakeFavoriteRepo) FindByUserAndEvent(_ context.Context, userID, eventID uuid.UUID) (*engagement.Favorite, error) {
	for _, f := range r.favorites {
		if f.UserID == userID && f.EventID == eventID {
			return f, nil
		}
	}
	return nil, nil
}

func (r *fakeFavoriteRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]engagement.Favorite, error) {
	var out []engagement.Favorite
	for _, f := range r.favorites {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFavoriteRepo) EventIDsByUser(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, f := range r.favorites {
		if f.UserID == userID {
			out = append(out, f.EventID)
		}
	}
	return out, nil
}

func (r *fakeFavoriteRepo) Save(_ context.Context, f *engagement.Favorite) error {
	for _, existing := range r.favorites {
		if existing.UserID == f.UserID && existing.EventID == f.EventID {
			return shared.ErrAlreadyExists
		}
	}
	r.favorites[f.ID] = f
	return nil
}

func (r *fakeFavoriteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.favorites, id)
	return nil
}

type fakeCartRepo struct {
	items map[uuid.UUID]*engagement.CartItem
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: make(map[uuid.UUID]*engagement.CartItem)}
}

func (r *fakeCartRepo) FindByUserAndEvent(_ context.Context, userID, eventID uuid.UUID) (*engagement.CartItem, error) {
	for _, i := range r.items {
		if i.UserID == userID && i.EventID == eventID {
			return i, nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) FindByIDForUser(_ context.Context, id, userID uuid.UUID) (*engagement.CartItem, error) {
	item := r.items[id]
	if item == nil || item.UserID != userID {
		return nil, nil
	}
	return item, nil
}

func (r *fakeCartRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]engagement.CartItem, error) {
	var out []engagement.CartItem
	for _, i := range r.items {
		if i.UserID == userID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *fakeCartRepo) Save(_ context.Context, item *engagement.CartItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeCartRepo) Update(_ context.Context, item *engagement.CartItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeCartRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

type fakeEventRepo struct {
	events map[uuid.UUID]*catalog.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uuid.UUID]*catalog.Event)}
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Event, error) {
	return r.events[id], nil
}

func (r *fakeEventRepo) Search(_ context.Context, _ catalog.EventFilter) ([]catalog.Event, error) {
	return nil, nil
}

func (r *fakeEventRepo) Save(_ context.Context, e *catalog.Event) error {
	r.events[e.ID] = e
	return nil
}

func (r *fakeEventRepo) Update(_ context.Context, e *catalog.Event) error {
	r.events[e.ID] = e
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.events, id)
	return nil
}

type fixture struct {
	svc    *Service
	events *fakeEventRepo
	userID uuid.UUID
	event  *catalog.Event
}

func newFixture(t *testing.T, prices ...int64) *fixture {
	t.Helper()

	events := newFakeEventRepo()
	f := &fixture{
		svc:    NewService(newFakeFavoriteRepo(), newFakeCartRepo(), events),
		events: events,
		userID: uuid.New(),
	}

	price := int64(1000)
	if len(prices) > 0 {
		price = prices[0]
	}
	event, err := catalog.NewEvent("Show", "", "", decimal.NewFromInt(price), 0,
		time.Now().Add(48*time.Hour), 0, catalog.CategoryConcert, nil)
	require.NoError(t, err)
	require.NoError(t, events.Save(context.Background(), event))
	f.event = event

	return f
}

func TestToggleFavorite(t *testing.T) {
	t.Run("toggles on then off", func(t *testing.T) {
		f := newFixture(t)

		on, err := f.svc.ToggleFavorite(context.Background(), f.userID, f.event.ID)
		require.NoError(t, err)
		assert.True(t, on)

		ids, err := f.svc.FavoriteEventIDs(context.Background(), f.userID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{f.event.ID}, ids)

		off, err := f.svc.ToggleFavorite(context.Background(), f.userID, f.event.ID)
		require.NoError(t, err)
		assert.False(t, off)

		ids, err = f.svc.FavoriteEventIDs(context.Background(), f.userID)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ToggleFavorite(context.Background(), f.userID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("favorites are per user", func(t *testing.T) {
		f := newFixture(t)
		otherUser := uuid.New()

		_, err := f.svc.ToggleFavorite(context.Background(), f.userID, f.event.ID)
		require.NoError(t, err)

		ids, err := f.svc.FavoriteEventIDs(context.Background(), otherUser)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestListFavorites(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ToggleFavorite(context.Background(), f.userID, f.event.ID)
	require.NoError(t, err)

	listed, err := f.svc.ListFavorites(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, f.event.ID, listed[0].Event.ID)

	t.Run("skips favorites whose event disappeared", func(t *testing.T) {
		require.NoError(t, f.events.Delete(context.Background(), f.event.ID))

		listed, err := f.svc.ListFavorites(context.Background(), f.userID)
		require.NoError(t, err)
		assert.Empty(t, listed)
	})
}

func TestAddToCart(t *testing.T) {
	t.Run("adds a line", func(t *testing.T) {
		f := newFixture(t)

		item, err := f.svc.AddToCart(context.Background(), f.userID, f.event.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("re-adding merges quantities into one line", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.svc.AddToCart(context.Background(), f.userID, f.event.ID, 2)
		require.NoError(t, err)
		second, err := f.svc.AddToCart(context.Background(), f.userID, f.event.ID, 3)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 5, second.Quantity)

		cart, err := f.svc.ViewCart(context.Background(), f.userID)
		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.AddToCart(context.Background(), f.userID, f.event.ID, 0)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.AddToCart(context.Background(), f.userID, uuid.New(), 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestRemoveFromCart(t *testing.T) {
	f := newFixture(t)

	item, err := f.svc.AddToCart(context.Background(), f.userID, f.event.ID, 1)
	require.NoError(t, err)

	t.Run("someone else's line looks nonexistent", func(t *testing.T) {
		err := f.svc.RemoveFromCart(context.Background(), uuid.New(), item.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("owner removes the line", func(t *testing.T) {
		require.NoError(t, f.svc.RemoveFromCart(context.Background(), f.userID, item.ID))

		cart, err := f.svc.ViewCart(context.Background(), f.userID)
		require.NoError(t, err)
		assert.Empty(t, cart.Lines)
	})

	t.Run("removing again fails", func(t *testing.T) {
		err := f.svc.RemoveFromCart(context.Background(), f.userID, item.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestViewCart(t *testing.T) {
	f := newFixture(t, 1500)

	_, err := f.svc.AddToCart(context.Background(), f.userID, f.event.ID, 2)
	require.NoError(t, err)

	cart, err := f.svc.ViewCart(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.True(t, cart.Lines[0].Subtotal.Equal(decimal.NewFromInt(3000)))
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(3000)))

	t.Run("reprices at the current event price", func(t *testing.T) {
		require.NoError(t, f.event.SetPrice(decimal.NewFromInt(2000)))

		cart, err := f.svc.ViewCart(context.Background(), f.userID)
		require.NoError(t, err)
		assert.True(t, cart.Total.Equal(decimal.NewFromInt(4000)))
	})

	t.Run("empty cart totals zero", func(t *testing.T) {
		cart, err := f.svc.ViewCart(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Empty(t, cart.Lines)
		assert.True(t, cart.Total.IsZero())
	})
}
