package models

import (
	"time"

	"github.com/citytickets/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VenueModel is the persistence model for catalog.Venue
type VenueModel struct {
	BaseModel
	Name     string `gorm:"size:120;not null"`
	Address  string `gorm:"size:255"`
	City     string `gorm:"size:100;index"`
	Capacity *int
}

// TableName returns the table name
func (VenueModel) TableName() string {
	return "venues"
}

// ToDomain converts the model to a domain entity
func (m *VenueModel) ToDomain() *catalog.Venue {
	return &catalog.Venue{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Address:    m.Address,
		City:       m.City,
		Capacity:   m.Capacity,
	}
}

// FromDomain populates the model from a domain entity
func (m *VenueModel) FromDomain(v *catalog.Venue) {
	m.BaseModel.FromDomain(v.BaseEntity)
	m.Name = v.Name
	m.Address = v.Address
	m.City = v.City
	m.Capacity = v.Capacity
}

// EventModel is the persistence model for catalog.Event
type EventModel struct {
	BaseModel
	Title           string          `gorm:"size:60;not null;index"`
	Description     string          `gorm:"size:255"`
	Organizer       string          `gorm:"size:120"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DurationMinutes int             `gorm:"not null;default:0"`
	StartsAt        time.Time       `gorm:"not null;index"`
	AgeLimit        int             `gorm:"not null;default:0"`
	Category        string          `gorm:"size:20;not null;index"`
	VenueID         *uuid.UUID      `gorm:"type:uuid;index"`
	Cancelled       bool            `gorm:"not null;default:false"`
	CancelledAt     *time.Time

	Venue *VenueModel `gorm:"foreignKey:VenueID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name
func (EventModel) TableName() string {
	return "events"
}

// ToDomain converts the model to a domain entity
func (m *EventModel) ToDomain() *catalog.Event {
	return &catalog.Event{
		BaseEntity:      m.BaseModel.ToDomain(),
		Title:           m.Title,
		Description:     m.Description,
		Organizer:       m.Organizer,
		Price:           m.Price,
		DurationMinutes: m.DurationMinutes,
		StartsAt:        m.StartsAt,
		AgeLimit:        m.AgeLimit,
		Category:        catalog.Category(m.Category),
		VenueID:         m.VenueID,
		Cancelled:       m.Cancelled,
		CancelledAt:     m.CancelledAt,
	}
}

// FromDomain populates the model from a domain entity
func (m *EventModel) FromDomain(e *catalog.Event) {
	m.BaseModel.FromDomain(e.BaseEntity)
	m.Title = e.Title
	m.Description = e.Description
	m.Organizer = e.Organizer
	m.Price = e.Price
	m.DurationMinutes = e.DurationMinutes
	m.StartsAt = e.StartsAt
	m.AgeLimit = e.AgeLimit
	m.Category = e.Category.String()
	m.VenueID = e.VenueID
	m.Cancelled = e.Cancelled
	m.CancelledAt = e.CancelledAt
}
