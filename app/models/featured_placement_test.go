package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlacementPriceCatalog(t *testing.T) {
	assert.Equal(t, 29.90, PlacementPrice(PlacementTierStandard, 7))
	assert.Equal(t, 79.90, PlacementPrice(PlacementTierStandard, 30))
	assert.Equal(t, 99.90, PlacementPrice(PlacementTierPremium, 15))

	// Unknown combinations price at zero and get rejected upstream.
	assert.Equal(t, 0.0, PlacementPrice(PlacementTierStandard, 10))
	assert.Equal(t, 0.0, PlacementPrice("gold", 7))
}

func TestPlacementIsCurrent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	placement := FeaturedPlacement{
		Active:   true,
		StartsAt: now.AddDate(0, 0, -2),
		EndsAt:   now.AddDate(0, 0, 5),
	}

	assert.True(t, placement.IsCurrent(now))
	assert.Equal(t, 5, placement.DaysLeft(now))

	placement.Active = false
	assert.False(t, placement.IsCurrent(now))
	assert.Equal(t, 0, placement.DaysLeft(now))

	placement.Active = true
	assert.False(t, placement.IsCurrent(now.AddDate(0, 0, 6)))
}
