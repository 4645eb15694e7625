package models

import "time"

// ProviderAccount links an external OAuth identity (Google, Facebook) to a
// local user. One user may hold several provider accounts.
type ProviderAccount struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	User           User       `gorm:"foreignKey:UserID" json:"-"`
	Provider       string     `gorm:"type:varchar(30);index:ux_provider_accounts,unique,priority:1" json:"provider"`
	ProviderUserID string     `gorm:"type:varchar(100);index:ux_provider_accounts,unique,priority:2" json:"provider_user_id"`
	AccessToken    string     `gorm:"type:text" json:"-"`
	RefreshToken   string     `gorm:"type:text" json:"-"`
	ExpiresAt      *time.Time `gorm:"type:timestamp;default:null" json:"expires_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
