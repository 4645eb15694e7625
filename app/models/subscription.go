package models

import "time"

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusExpired   = "expired"
	SubscriptionStatusCancelled = "cancelled"
)

// Subscription links a user to a plan for a billing period. At most one
// subscription per user may be in active state at a time; validity is
// always computed against the wall clock, the stored state only changes on
// explicit cancellation or plan change.
type Subscription struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	UserID      uint             `gorm:"not null;index" json:"user_id"`
	User        User             `gorm:"foreignKey:UserID" json:"-"`
	PlanID      uint             `gorm:"not null;index" json:"plan_id"`
	Plan        SubscriptionPlan `gorm:"foreignKey:PlanID" json:"plan"`
	Status      string           `gorm:"type:varchar(15);default:'active';index" json:"status" validate:"oneof=active expired cancelled"`
	StartedAt   time.Time        `gorm:"autoCreateTime" json:"started_at"`
	ExpiresAt   time.Time        `json:"expires_at"`
	CancelledAt *time.Time       `gorm:"type:timestamp;default:null" json:"cancelled_at,omitempty"`
	AutoRenew   bool             `gorm:"default:false" json:"auto_renew"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsValid reports whether the subscription entitles the user at the given time.
func (s *Subscription) IsValid(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && s.ExpiresAt.After(now)
}

// DaysLeft returns whole days until expiry, or 0 once invalid.
func (s *Subscription) DaysLeft(now time.Time) int {
	if !s.IsValid(now) {
		return 0
	}
	return int(s.ExpiresAt.Sub(now).Hours() / 24)
}

// IsExpiringSoon reports whether 7 days or fewer remain.
func (s *Subscription) IsExpiringSoon(now time.Time) bool {
	return s.IsValid(now) && s.DaysLeft(now) <= 7
}
