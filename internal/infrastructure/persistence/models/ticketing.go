package models

import (
	"time"

	"github.com/citytickets/backend/internal/domain/ticketing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketModel is the persistence model for ticketing.Ticket
type TicketModel struct {
	BaseModel
	EventID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status     string          `gorm:"size:20;not null;index"`
	RefundedAt *time.Time
	UsedAt     *time.Time
	QRPNG      []byte `gorm:"column:qr_png;type:bytea"`

	Event EventModel `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	User  UserModel  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name
func (TicketModel) TableName() string {
	return "tickets"
}

// ToDomain converts the model to a domain entity
func (m *TicketModel) ToDomain() *ticketing.Ticket {
	return &ticketing.Ticket{
		BaseEntity: m.BaseModel.ToDomain(),
		EventID:    m.EventID,
		UserID:     m.UserID,
		Price:      m.Price,
		Status:     ticketing.Status(m.Status),
		RefundedAt: m.RefundedAt,
		UsedAt:     m.UsedAt,
		QRPNG:      m.QRPNG,
	}
}

// FromDomain populates the model from a domain entity
func (m *TicketModel) FromDomain(t *ticketing.Ticket) {
	m.BaseModel.FromDomain(t.BaseEntity)
	m.EventID = t.EventID
	m.UserID = t.UserID
	m.Price = t.Price
	m.Status = t.Status.String()
	m.RefundedAt = t.RefundedAt
	m.UsedAt = t.UsedAt
	m.QRPNG = t.QRPNG
}
