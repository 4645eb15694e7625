package models

import (
	"time"
)

// ratingEditWindow is how long after creation a rating stays editable.
const ratingEditWindow = 30 * 24 * time.Hour

// Rating scores both the listing itself and the owner who answered. Listing
// scores stay nil until the contact-response waiting period has passed; owner
// scores are always present.
type Rating struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	UserID     uint     `gorm:"not null;index:ux_ratings_user_property,unique,priority:1" json:"user_id"`
	User       User     `gorm:"foreignKey:UserID" json:"-"`
	PropertyID uint     `gorm:"not null;index:ux_ratings_user_property,unique,priority:2" json:"property_id"`
	Property   Property `gorm:"foreignKey:PropertyID" json:"-"`

	// Listing scores, 1-5, nullable until unlocked.
	InfoClarity      *int `json:"info_clarity" validate:"omitempty,gte=1,lte=5"`
	PhotoAccuracy    *int `json:"photo_accuracy" validate:"omitempty,gte=1,lte=5"`
	LocationAccuracy *int `json:"location_accuracy" validate:"omitempty,gte=1,lte=5"`

	// Owner scores, 1-5.
	ResponseTime int `gorm:"default:3" json:"response_time" validate:"gte=1,lte=5"`
	Treatment    int `gorm:"default:3" json:"treatment" validate:"gte=1,lte=5"`
	Reliability  int `gorm:"default:3" json:"reliability" validate:"gte=1,lte=5"`

	Comment     string `gorm:"type:text" json:"comment"`
	Reported    bool   `gorm:"default:false" json:"reported"`
	ReportCount int    `gorm:"default:0" json:"report_count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ListingAvg averages the listing scores, or returns nil when none are set.
func (r *Rating) ListingAvg() *float64 {
	sum, n := 0, 0
	for _, v := range []*int{r.InfoClarity, r.PhotoAccuracy, r.LocationAccuracy} {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := float64(sum) / float64(n)
	return &avg
}

// OwnerAvg averages the owner scores.
func (r *Rating) OwnerAvg() float64 {
	return float64(r.ResponseTime+r.Treatment+r.Reliability) / 3
}

// OverallAvg combines listing and owner averages; owner-only when the
// listing scores are still locked.
func (r *Rating) OverallAvg() float64 {
	ownerAvg := r.OwnerAvg()
	listingAvg := r.ListingAvg()
	if listingAvg == nil {
		return ownerAvg
	}
	return (*listingAvg + ownerAvg) / 2
}

// CanEdit reports whether the rating is still inside its edit window.
func (r *Rating) CanEdit(now time.Time) bool {
	return now.Sub(r.CreatedAt) < ratingEditWindow
}
