package models

import "time"

const (
	ReportReasonFalse     = "false_info"
	ReportReasonOffensive = "offensive"
	ReportReasonSpam      = "spam"
	ReportReasonRevenge   = "revenge"
	ReportReasonOther     = "other"
)

// RatingReport flags an unfair or abusive rating for review.
type RatingReport struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RatingID     uint      `gorm:"not null;index:ux_rating_reports_rating_user,unique,priority:1" json:"rating_id"`
	Rating       Rating    `gorm:"foreignKey:RatingID" json:"-"`
	ReportedByID uint      `gorm:"not null;index:ux_rating_reports_rating_user,unique,priority:2" json:"reported_by_id"`
	Reason       string    `gorm:"type:varchar(20)" json:"reason" validate:"oneof=false_info offensive spam revenge other"`
	Description  string    `gorm:"type:text" json:"description"`
	Reviewed     bool      `gorm:"default:false" json:"reviewed"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
