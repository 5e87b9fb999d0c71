package catalog

import (
	"strings"

	"github.com/citytickets/backend/internal/domain/shared"
)

// Venue is a place where events are held
type Venue struct {
	shared.BaseEntity
	Name     string
	Address  string
	City     string
	Capacity *int
}

// NewVenue creates a new venue
func NewVenue(name, address, city string, capacity *int) (*Venue, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_VENUE_NAME", "Venue name cannot be empty")
	}
	if len(name) > 120 {
		return nil, shared.NewDomainError("INVALID_VENUE_NAME", "Venue name cannot exceed 120 characters")
	}
	if capacity != nil && *capacity < 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}

	return &Venue{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Address:    strings.TrimSpace(address),
		City:       strings.TrimSpace(city),
		Capacity:   capacity,
	}, nil
}

// Line renders a single-line description for tickets and emails
func (v *Venue) Line() string {
	parts := []string{v.Name}
	if v.City != "" {
		parts = append(parts, v.City)
	}
	if v.Address != "" {
		parts = append(parts, v.Address)
	}
	return strings.Join(parts, ", ")
}
