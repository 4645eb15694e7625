package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	NotificationTypeFavorite     = "favorite"
	NotificationTypeContact      = "contact"
	NotificationTypeSubscription = "subscription"
	NotificationTypeRating       = "rating"
	NotificationTypeSystem       = "system"
)

type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index" json:"user_id"`
	User      User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Type      string     `gorm:"type:varchar(20)" json:"type" validate:"oneof=favorite contact subscription rating system"`
	Title     string     `gorm:"type:varchar(200)" json:"title"`
	Message   string     `gorm:"type:text" json:"message"`
	URL       string     `gorm:"type:varchar(255)" json:"url"`
	IsRead    bool       `gorm:"default:false" json:"is_read"`
	ReadAt    *time.Time `gorm:"type:timestamp;default:null" json:"read_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// MarkAsRead flags the notification as read and stamps the read time.
func (n *Notification) MarkAsRead(db *gorm.DB) error {
	if n.IsRead {
		return nil
	}
	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	return db.Model(n).Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error
}

// CreateNotification inserts a user-facing notification record. Callers
// treat this as fire-and-forget; failures are the caller's to log.
func CreateNotification(db *gorm.DB, userID uint, notificationType, title, message, url string) error {
	notification := Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		URL:     url,
		IsRead:  false,
	}

	return db.Create(&notification).Error
}
