package controllers

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
	"github.com/Impagliazzo/Proyecto-LaColmena/app/repository"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/entitlements"
)

// HandleFeaturedOptions shows the placement tiers and prices for a listing.
func HandleFeaturedOptions(c *fiber.Ctx) error {
	property, err := ownListingFromParams(c)
	if err != nil {
		return err
	}

	now := time.Now()
	current, _ := repository.GetGlobalRepositories().Placement.
		GetCurrentByPropertyID(property.ID, now)

	type option struct {
		Tier  string
		Days  int
		Price float64
	}
	var options []option
	for _, tier := range []string{models.PlacementTierStandard, models.PlacementTierPremium} {
		for _, days := range models.PlacementDurations {
			options = append(options, option{
				Tier:  tier,
				Days:  days,
				Price: models.PlacementPrice(tier, days),
			})
		}
	}

	subscription := currentSubscription(property.OwnerID)
	included, available := includedPlacementStatus(property.OwnerID, now)

	return render(c, "featured/options", fiber.Map{
		"Title":             "Feature this listing",
		"Property":          property,
		"Options":           options,
		"Current":           current,
		"IncludedTotal":     included,
		"IncludedAvailable": available,
		"CanBuy":            entitlements.CanPurchasePlacements(subscription, now),
	})
}

// includedPlacementStatus returns the plan's monthly placement allotment and
// how much of it is still unused this month.
func includedPlacementStatus(ownerID uint, now time.Time) (total, available int) {
	total = entitlements.IncludedPlacements(currentSubscription(ownerID), now)
	if total == 0 {
		return 0, 0
	}

	used, err := repository.GetGlobalRepositories().Placement.
		CountPurchasedSince(ownerID, entitlements.MonthStart(now))
	if err != nil {
		log.Printf("placement count failed for user %d: %v", ownerID, err)
		return total, 0
	}

	available = total - int(used)
	if available < 0 {
		available = 0
	}
	return total, available
}

// HandleFeaturedPurchase buys a placement for a listing, or consumes one of
// the plan's monthly included placements at no charge. The owner needs a plan
// that allows featuring, and the listing must be publicly visible.
func HandleFeaturedPurchase(c *fiber.Ctx) error {
	property, err := ownListingFromParams(c)
	if err != nil {
		return err
	}

	if !property.IsActive() {
		fm := fiber.Map{"type": "error", "message": "Only active listings can be featured"}
		return flash.WithError(c, fm).Redirect("/properties/mine")
	}

	now := time.Now()
	subscription := currentSubscription(property.OwnerID)
	if !entitlements.CanFeature(subscription, now) {
		fm := fiber.Map{"type": "error", "message": "Your current plan does not include featured placements. Upgrade to feature listings."}
		return flash.WithError(c, fm).Redirect("/subscriptions/plans")
	}

	tier := c.FormValue("tier", models.PlacementTierStandard)
	if tier != models.PlacementTierStandard && tier != models.PlacementTierPremium {
		return fiber.NewError(fiber.StatusBadRequest, "unknown placement tier")
	}

	days, _ := strconv.Atoi(c.FormValue("days", "7"))
	price := models.PlacementPrice(tier, days)
	if price == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "unknown placement duration")
	}

	if c.FormValue("use_included") == "true" {
		if _, available := includedPlacementStatus(property.OwnerID, now); available <= 0 {
			fm := fiber.Map{"type": "error", "message": "You have already used all your included placements this month"}
			return flash.WithError(c, fm).Redirect("/properties/" + property.UUID + "/featured")
		}
		price = 0
	} else if !entitlements.CanPurchasePlacements(subscription, now) {
		fm := fiber.Map{"type": "error", "message": "Your plan does not allow buying extra placements"}
		return flash.WithError(c, fm).Redirect("/properties/" + property.UUID + "/featured")
	}

	placement := &models.FeaturedPlacement{
		PropertyID:   property.ID,
		Tier:         tier,
		DurationDays: days,
		PricePaid:    price,
		StartsAt:     now,
		EndsAt:       now.AddDate(0, 0, days),
		PurchasedAt:  now,
		Active:       true,
	}
	if err := repository.GetGlobalRepositories().Placement.Create(placement); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "placement purchase failed")
	}

	message := fmt.Sprintf("%q is now featured for %d days", property.Title, days)
	if price == 0 {
		message = fmt.Sprintf("%q is now featured for %d days using an included placement", property.Title, days)
	}
	fm := fiber.Map{"type": "success", "message": message}
	return flash.WithSuccess(c, fm).Redirect("/properties/mine")
}

// HandleFeaturedDeactivate turns a placement off before it expires. No
// refunds; the row stays in the purchase history.
func HandleFeaturedDeactivate(c *fiber.Ctx) error {
	property, err := ownListingFromParams(c)
	if err != nil {
		return err
	}

	placementID, err := c.ParamsInt("placementID")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid placement id")
	}

	repos := repository.GetGlobalRepositories()
	placement, err := repos.Placement.GetByID(uint(placementID))
	if err != nil || placement.PropertyID != property.ID {
		return fiber.NewError(fiber.StatusNotFound, "placement not found")
	}

	placement.Active = false
	if err := repos.Placement.Update(placement); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not deactivate placement")
	}

	fm := fiber.Map{"type": "success", "message": "Placement deactivated"}
	return flash.WithSuccess(c, fm).Redirect("/featured/mine")
}

// HandleMyPlacements lists the owner's placement purchases.
func HandleMyPlacements(c *fiber.Ctx) error {
	userID := extractUserID(c)
	placements, err := repository.GetGlobalRepositories().Placement.ListByOwnerID(userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "placement lookup failed")
	}

	now := time.Now()
	included, available := includedPlacementStatus(userID, now)

	return render(c, "featured/mine", fiber.Map{
		"Title":             "My featured placements",
		"Placements":        placements,
		"IncludedTotal":     included,
		"IncludedAvailable": available,
		"Now":               now,
	})
}
