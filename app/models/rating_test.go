package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestRatingOwnerAvg(t *testing.T) {
	rating := Rating{ResponseTime: 5, Treatment: 4, Reliability: 3}
	assert.InDelta(t, 4.0, rating.OwnerAvg(), 0.001)
}

func TestRatingListingAvg(t *testing.T) {
	rating := Rating{}
	assert.Nil(t, rating.ListingAvg(), "locked listing scores average to nil")

	rating.InfoClarity = intPtr(5)
	rating.PhotoAccuracy = intPtr(3)
	avg := rating.ListingAvg()
	if assert.NotNil(t, avg) {
		assert.InDelta(t, 4.0, *avg, 0.001)
	}
}

func TestRatingOverallAvg(t *testing.T) {
	rating := Rating{ResponseTime: 4, Treatment: 4, Reliability: 4}

	// Owner scores only.
	assert.InDelta(t, 4.0, rating.OverallAvg(), 0.001)

	// Listing scores pull the overall down.
	rating.InfoClarity = intPtr(2)
	rating.PhotoAccuracy = intPtr(2)
	rating.LocationAccuracy = intPtr(2)
	assert.InDelta(t, 3.0, rating.OverallAvg(), 0.001)
}

func TestRatingCanEdit(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	rating := Rating{CreatedAt: now.AddDate(0, 0, -10)}
	assert.True(t, rating.CanEdit(now))

	rating.CreatedAt = now.AddDate(0, 0, -31)
	assert.False(t, rating.CanEdit(now))
}
