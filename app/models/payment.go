package models

import "time"

const (
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
	PaymentMethodPaypal   = "paypal"
	PaymentMethodCash     = "cash"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusRejected  = "rejected"
	PaymentStatusRefunded  = "refunded"
)

// Payment records a charge against a subscription.
type Payment struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	SubscriptionID uint         `gorm:"not null;index" json:"subscription_id"`
	Subscription   Subscription `gorm:"foreignKey:SubscriptionID" json:"-"`
	Amount         float64      `gorm:"type:decimal(10,2)" json:"amount"`
	Method         string       `gorm:"type:varchar(20)" json:"method" validate:"oneof=card transfer paypal cash"`
	Status         string       `gorm:"type:varchar(15);default:'pending'" json:"status" validate:"oneof=pending completed rejected refunded"`
	Reference      string       `gorm:"type:varchar(100)" json:"reference"`
	PaidAt         time.Time    `gorm:"autoCreateTime" json:"paid_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}
