package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PROFILE_TYPE_STUDENT      = "student"
	PROFILE_TYPE_DIRECT_OWNER = "direct_owner"
	PROFILE_TYPE_AGENCY       = "agency"
	PROFILE_TYPE_SEEKER       = "seeker"
)

const (
	GOAL_FIND_RENTAL     = "find_rental"
	GOAL_FIND_PURCHASE   = "find_purchase"
	GOAL_PUBLISH         = "publish_property"
	GOAL_MANAGE_PORTFOLIO = "manage_portfolio"
	GOAL_BROWSE          = "just_browsing"
)

// UserProfile holds progressive profile data and the owner's aggregated rating.
type UserProfile struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User            User      `gorm:"foreignKey:UserID" json:"-"`
	Verified        bool      `gorm:"default:false" json:"verified"`
	AvgRating       float64   `gorm:"type:decimal(3,2);default:0" json:"avg_rating"`
	TotalRatings    int       `gorm:"default:0" json:"total_ratings"`
	UserType        string    `gorm:"type:varchar(20);default:null" json:"user_type"`
	MainGoal        string    `gorm:"type:varchar(30);default:null" json:"main_goal"`
	ProfileComplete bool      `gorm:"default:false" json:"profile_complete"`
	FirstName       string    `gorm:"type:varchar(100);default:null" json:"first_name"`
	LastName        string    `gorm:"type:varchar(100);default:null" json:"last_name"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CompletionPercent computes how much of the progressive profile is filled in.
func (p *UserProfile) CompletionPercent() int {
	total := 4
	done := 0

	if p.FirstName != "" {
		done++
	}
	if p.LastName != "" {
		done++
	}
	if p.UserType != "" {
		done++
	}
	if p.MainGoal != "" {
		done++
	}

	return done * 100 / total
}

// IsComplete reports whether every progressive profile field is filled in.
func (p *UserProfile) IsComplete() bool {
	return p.CompletionPercent() == 100
}

// RefreshCompletion recalculates and persists the completion flag.
func (p *UserProfile) RefreshCompletion(db *gorm.DB) error {
	p.ProfileComplete = p.IsComplete()
	return db.Model(p).Update("profile_complete", p.ProfileComplete).Error
}

// GetOrCreateUserProfile loads the profile for a user, creating it on first access.
func GetOrCreateUserProfile(db *gorm.DB, userID uint) (*UserProfile, error) {
	var profile UserProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	profile = UserProfile{UserID: userID}
	if err := db.Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// RefreshOwnerRating recomputes the owner's average from all ratings on their listings.
func (p *UserProfile) RefreshOwnerRating(db *gorm.DB) error {
	var ratings []Rating
	err := db.Joins("JOIN properties ON properties.id = ratings.property_id").
		Where("properties.owner_id = ?", p.UserID).
		Find(&ratings).Error
	if err != nil {
		return err
	}

	if len(ratings) == 0 {
		p.AvgRating = 0
		p.TotalRatings = 0
	} else {
		total := 0.0
		for _, r := range ratings {
			total += r.OwnerAvg()
		}
		p.AvgRating = total / float64(len(ratings))
		p.TotalRatings = len(ratings)
	}

	return db.Model(p).Updates(map[string]interface{}{
		"avg_rating":    p.AvgRating,
		"total_ratings": p.TotalRatings,
	}).Error
}
