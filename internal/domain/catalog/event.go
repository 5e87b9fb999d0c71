package catalog

import (
	"strings"
	"time"

	"github.com/citytickets/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies an event for browsing and analytics
type Category string

const (
	CategoryConcert  Category = "concert"
	CategoryTheatre  Category = "theatre"
	CategorySport    Category = "sport"
	CategoryFestival Category = "festival"
	CategoryOther    Category = "other"
)

// IsValid checks if the category is a known Category
func (c Category) IsValid() bool {
	switch c {
	case CategoryConcert, CategoryTheatre, CategorySport, CategoryFestival, CategoryOther:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// Categories lists all valid categories in display order
func Categories() []Category {
	return []Category{CategoryConcert, CategoryTheatre, CategorySport, CategoryFestival, CategoryOther}
}

// Event is the aggregate root for a sellable event
type Event struct {
	shared.BaseEntity
	Title           string
	Description     string
	Organizer       string
	Price           decimal.Decimal
	DurationMinutes int
	StartsAt        time.Time
	AgeLimit        int
	Category        Category
	VenueID         *uuid.UUID
	Cancelled       bool
	CancelledAt     *time.Time
}

// NewEvent creates a new event with validated fields
func NewEvent(title, description, organizer string, price decimal.Decimal, durationMinutes int, startsAt time.Time, ageLimit int, category Category, venueID *uuid.UUID) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 60 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 60 characters")
	}
	if len(description) > 255 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 255 characters")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if durationMinutes < 0 {
		return nil, shared.NewDomainError("INVALID_DURATION", "Duration cannot be negative")
	}
	if startsAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_START", "Start time must be set")
	}
	if ageLimit < 0 || ageLimit > 100 {
		return nil, shared.NewDomainError("INVALID_AGE_LIMIT", "Age limit must be between 0 and 100")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Invalid event category")
	}

	return &Event{
		BaseEntity:      shared.NewBaseEntity(),
		Title:           title,
		Description:     strings.TrimSpace(description),
		Organizer:       strings.TrimSpace(organizer),
		Price:           price,
		DurationMinutes: durationMinutes,
		StartsAt:        startsAt,
		AgeLimit:        ageLimit,
		Category:        category,
		VenueID:         venueID,
	}, nil
}

// HasPassed reports whether the event start time is already behind us
func (e *Event) HasPassed(now time.Time) bool {
	return e.StartsAt.Before(now)
}

// Cancel marks the event as cancelled
func (e *Event) Cancel(now time.Time) error {
	if e.Cancelled {
		return shared.NewDomainError("EVENT_ALREADY_CANCELLED", "Event is already cancelled")
	}

	e.Cancelled = true
	e.CancelledAt = &now
	e.Touch()

	return nil
}

// SetPrice changes the event price. Existing tickets keep the price they
// were bought at.
func (e *Event) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	e.Price = price
	e.Touch()

	return nil
}

// Reschedule moves the event to a new start time
func (e *Event) Reschedule(startsAt time.Time) error {
	if startsAt.IsZero() {
		return shared.NewDomainError("INVALID_START", "Start time must be set")
	}

	e.StartsAt = startsAt
	e.Touch()

	return nil
}

// SetVenue assigns or clears the venue reference
func (e *Event) SetVenue(venueID *uuid.UUID) {
	e.VenueID = venueID
	e.Touch()
}
