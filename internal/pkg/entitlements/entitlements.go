package entitlements

import (
	"time"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
)

// FreeListingLimit is what every owner gets without a subscription: the
// first-ever listing stays free and permanent.
const FreeListingLimit = 1

// ListingLimit returns the active-listing allowance derived from a
// subscription. A nil or lapsed subscription is the free tier.
func ListingLimit(subscription *models.Subscription, now time.Time) int {
	if subscription == nil || !subscription.IsValid(now) {
		return FreeListingLimit
	}
	return FreeListingLimit + subscription.Plan.MaxExtraListings
}

// CanPurchasePlacements reports whether the subscription's plan unlocks paid
// featured placements.
func CanPurchasePlacements(subscription *models.Subscription, now time.Time) bool {
	return subscription != nil && subscription.IsValid(now) && subscription.Plan.CanPurchasePlacements
}

// IncludedPlacements returns the plan's monthly featured-placement allotment.
// A nil or lapsed subscription has none.
func IncludedPlacements(subscription *models.Subscription, now time.Time) int {
	if subscription == nil || !subscription.IsValid(now) {
		return 0
	}
	return subscription.Plan.IncludedPlacements
}

// CanFeature reports whether the plan unlocks featuring at all, either
// through the monthly allotment or through paid placements.
func CanFeature(subscription *models.Subscription, now time.Time) bool {
	return IncludedPlacements(subscription, now) > 0 || CanPurchasePlacements(subscription, now)
}

// MonthStart returns midnight on the first day of now's month, in now's
// location. Included-placement allotments reset on this boundary.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
