package models

import "time"

const (
	PlacementTierStandard = "standard"
	PlacementTierPremium  = "premium"
)

// Placement durations offered for purchase, in days.
var PlacementDurations = []int{7, 15, 30}

// placementPrices maps tier -> duration days -> price.
var placementPrices = map[string]map[int]float64{
	PlacementTierStandard: {7: 29.90, 15: 49.90, 30: 79.90},
	PlacementTierPremium:  {7: 59.90, 15: 99.90, 30: 149.90},
}

// FeaturedPlacement is a paid, time-bounded boost that makes a listing
// eligible for the home-page featured slots. Deactivated rows are kept for
// the owner's purchase history.
type FeaturedPlacement struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PropertyID   uint      `gorm:"not null;index" json:"property_id"`
	Property     Property  `gorm:"foreignKey:PropertyID" json:"-"`
	Tier         string    `gorm:"type:varchar(20);default:'standard';index:idx_placements_tier_start,priority:1" json:"tier" validate:"oneof=standard premium"`
	DurationDays int       `json:"duration_days"`
	PricePaid    float64   `gorm:"type:decimal(10,2)" json:"price_paid"`
	StartsAt     time.Time `gorm:"index:idx_placements_tier_start,priority:2" json:"starts_at"`
	EndsAt       time.Time `gorm:"index:idx_placements_active_end,priority:2" json:"ends_at"`
	PurchasedAt  time.Time `gorm:"autoCreateTime" json:"purchased_at"`
	Active       bool      `gorm:"default:true;index:idx_placements_active_end,priority:1" json:"active"`
}

// IsCurrent reports whether the placement is valid at the given time.
func (fp *FeaturedPlacement) IsCurrent(now time.Time) bool {
	return fp.Active && fp.EndsAt.After(now)
}

// DaysLeft returns whole days of boost remaining, or 0 once expired.
func (fp *FeaturedPlacement) DaysLeft(now time.Time) int {
	if !fp.IsCurrent(now) {
		return 0
	}
	return int(fp.EndsAt.Sub(now).Hours() / 24)
}

// PlacementPrice looks up the catalog price for a tier and duration.
// Unknown combinations price at 0 and are rejected upstream.
func PlacementPrice(tier string, durationDays int) float64 {
	return placementPrices[tier][durationDays]
}
