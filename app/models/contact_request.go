package models

import "time"

const (
	ContactStatusPending   = "pending"
	ContactStatusContacted = "contacted"
	ContactStatusRejected  = "rejected"
)

// ContactRequest is a message from an interested user to a listing's owner.
type ContactRequest struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID" json:"-"`
	PropertyID  uint       `gorm:"not null;index" json:"property_id"`
	Property    Property   `gorm:"foreignKey:PropertyID" json:"-"`
	Message     string     `gorm:"type:text" json:"message" validate:"required"`
	Phone       string     `gorm:"type:varchar(20)" json:"phone" validate:"max=20"`
	Email       string     `gorm:"type:varchar(200)" json:"email" validate:"required,email"`
	Status      string     `gorm:"type:varchar(15);default:'pending';index" json:"status" validate:"oneof=pending contacted rejected"`
	RespondedAt *time.Time `gorm:"type:timestamp;default:null" json:"responded_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
