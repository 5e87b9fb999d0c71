package models

import (
	"github.com/citytickets/backend/internal/domain/engagement"
	"github.com/google/uuid"
)

// FavoriteModel is the persistence model for engagement.Favorite
type FavoriteModel struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_event"`
	EventID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_event"`

	Event EventModel `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	User  UserModel  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name
func (FavoriteModel) TableName() string {
	return "favorites"
}

// ToDomain converts the model to a domain entity
func (m *FavoriteModel) ToDomain() *engagement.Favorite {
	return &engagement.Favorite{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		EventID:    m.EventID,
	}
}

// FromDomain populates the model from a domain entity
func (m *FavoriteModel) FromDomain(f *engagement.Favorite) {
	m.BaseModel.FromDomain(f.BaseEntity)
	m.UserID = f.UserID
	m.EventID = f.EventID
}

// CartItemModel is the persistence model for engagement.CartItem
type CartItemModel struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_user_event"`
	EventID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_user_event"`
	Quantity int       `gorm:"not null;default:1"`

	Event EventModel `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	User  UserModel  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the model to a domain entity
func (m *CartItemModel) ToDomain() *engagement.CartItem {
	return &engagement.CartItem{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		EventID:    m.EventID,
		Quantity:   m.Quantity,
	}
}

// FromDomain populates the model from a domain entity
func (m *CartItemModel) FromDomain(i *engagement.CartItem) {
	m.BaseModel.FromDomain(i.BaseEntity)
	m.UserID = i.UserID
	m.EventID = i.EventID
	m.Quantity = i.Quantity
}
