package models

import (
	"github.com/citytickets/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the persistence model for identity.User
type UserModel struct {
	BaseModel
	Phone        string `gorm:"size:18;not null;uniqueIndex"`
	Email        string `gorm:"size:254;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:100;not null"`
	Active       bool   `gorm:"not null;default:true"`
	Staff        bool   `gorm:"not null;default:false"`
}

// TableName returns the table name
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain entity
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Phone:        m.Phone,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Active:       m.Active,
		Staff:        m.Staff,
	}
}

// FromDomain populates the model from a domain entity
func (m *UserModel) FromDomain(u *identity.User) {
	m.BaseModel.FromDomain(u.BaseEntity)
	m.Phone = u.Phone
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Active = u.Active
	m.Staff = u.Staff
}

// VerificationCodeModel is the persistence model for identity.VerificationCode
type VerificationCodeModel struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind   string    `gorm:"size:20;not null;index"`
	Code   string    `gorm:"size:6;not null"`
	Used   bool      `gorm:"not null;default:false"`

	User UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name
func (VerificationCodeModel) TableName() string {
	return "verification_codes"
}

// ToDomain converts the model to a domain entity
func (m *VerificationCodeModel) ToDomain() *identity.VerificationCode {
	return &identity.VerificationCode{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Kind:       identity.CodeKind(m.Kind),
		Code:       m.Code,
		Used:       m.Used,
	}
}

// FromDomain populates the model from a domain entity
func (m *VerificationCodeModel) FromDomain(c *identity.VerificationCode) {
	m.BaseModel.FromDomain(c.BaseEntity)
	m.UserID = c.UserID
	m.Kind = c.Kind.String()
	m.Code = c.Code
	m.Used = c.Used
}
