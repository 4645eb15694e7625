package models

import "time"

// Plan tiers in ranking order. The home-page priority algorithm keys its
// plan bonus off this ordinal, never off the display name.
const (
	PlanTierNone  = 0
	PlanTierBasic = 1
	PlanTierMid   = 2
	PlanTierTop   = 3
)

// SubscriptionPlan is a catalog entry owners subscribe to. MaxExtraListings
// is on top of the permanent free slot every owner has for their first
// listing.
type SubscriptionPlan struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	Name                  string    `gorm:"type:varchar(100)" json:"name" validate:"required,max=100"`
	Description           string    `gorm:"type:text" json:"description"`
	Price                 float64   `gorm:"type:decimal(10,2)" json:"price" validate:"gte=0"`
	DurationDays          int       `json:"duration_days" validate:"gt=0"`
	MaxExtraListings      int       `json:"max_extra_listings" validate:"gte=0"`
	IncludedPlacements    int       `gorm:"default:0" json:"included_placements"`
	CanPurchasePlacements bool      `gorm:"default:false" json:"can_purchase_placements"`
	PrioritySupport       bool      `gorm:"default:false" json:"priority_support"`
	Tier                  int       `gorm:"default:0" json:"tier" validate:"gte=0,lte=3"`
	Active                bool      `gorm:"default:true;index" json:"active"`
	SortOrder             int       `gorm:"default:0" json:"sort_order"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
