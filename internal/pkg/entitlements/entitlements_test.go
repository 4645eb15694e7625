package entitlements

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func validSubscription(extras int, placements bool) *models.Subscription {
	return &models.Subscription{
		Status:    models.SubscriptionStatusActive,
		ExpiresAt: testNow.AddDate(0, 0, 30),
		Plan: models.SubscriptionPlan{
			MaxExtraListings:      extras,
			CanPurchasePlacements: placements,
		},
	}
}

func TestListingLimit(t *testing.T) {
	assert.Equal(t, 1, ListingLimit(nil, testNow), "no subscription keeps the free listing")
	assert.Equal(t, 6, ListingLimit(validSubscription(5, false), testNow))

	lapsed := validSubscription(5, false)
	lapsed.ExpiresAt = testNow.Add(-time.Hour)
	assert.Equal(t, 1, ListingLimit(lapsed, testNow), "lapsed subscriptions fall back to the free tier")
}

func TestCanPurchasePlacements(t *testing.T) {
	assert.False(t, CanPurchasePlacements(nil, testNow))
	assert.False(t, CanPurchasePlacements(validSubscription(5, false), testNow))
	assert.True(t, CanPurchasePlacements(validSubscription(5, true), testNow))

	cancelled := validSubscription(5, true)
	cancelled.Status = models.SubscriptionStatusCancelled
	assert.False(t, CanPurchasePlacements(cancelled, testNow))
}

func TestIncludedPlacements(t *testing.T) {
	assert.Zero(t, IncludedPlacements(nil, testNow))

	sub := validSubscription(5, false)
	sub.Plan.IncludedPlacements = 2
	assert.Equal(t, 2, IncludedPlacements(sub, testNow))

	sub.ExpiresAt = testNow.Add(-time.Hour)
	assert.Zero(t, IncludedPlacements(sub, testNow), "lapsed plans keep no allotment")
}

func TestCanFeature(t *testing.T) {
	assert.False(t, CanFeature(nil, testNow))
	assert.False(t, CanFeature(validSubscription(5, false), testNow))
	assert.True(t, CanFeature(validSubscription(5, true), testNow))

	// Included placements unlock featuring even when the plan cannot buy
	// extra ones.
	sub := validSubscription(5, false)
	sub.Plan.IncludedPlacements = 2
	assert.True(t, CanFeature(sub, testNow))
}

func TestMonthStart(t *testing.T) {
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), MonthStart(testNow))

	endOfMonth := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, MonthStart(testNow), MonthStart(endOfMonth))
}
