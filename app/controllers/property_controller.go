package controllers

import (
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
	"github.com/Impagliazzo/Proyecto-LaColmena/app/repository"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/clock"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/database"
	counter "github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/metrics/counter"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/quota"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/shortener"
)

// HandlePropertyDetail renders one listing's public page.
func HandlePropertyDetail(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	property, err := repos.Property.GetByUUID(c.Params("uuid"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "listing not found")
	}

	viewerID := extractUserID(c)
	isOwner := viewerID != 0 && viewerID == property.OwnerID

	// Suspended and rented listings stay reachable for their owner only.
	if !property.IsActive() && !isOwner {
		return fiber.NewError(fiber.StatusNotFound, "listing not found")
	}

	// Views are buffered in Redis and flushed to the DB in batches.
	if !isOwner {
		if err := counter.AddPropertyView(property.ID); err != nil {
			log.Printf("view count update failed for listing %d: %v", property.ID, err)
		}
	}

	ratings, err := repos.Rating.ListByPropertyID(property.ID)
	if err != nil {
		log.Printf("ratings lookup failed for listing %d: %v", property.ID, err)
	}

	isFavorite := false
	if viewerID != 0 {
		isFavorite, _ = repos.Favorite.Exists(viewerID, property.ID)
	}

	ownerProfile, err := repos.User.GetProfile(property.OwnerID)
	if err != nil {
		log.Printf("owner profile lookup failed for user %d: %v", property.OwnerID, err)
	}

	placement, _ := repos.Placement.GetCurrentByPropertyID(property.ID, clock.System{}.Now())

	return render(c, "properties/detail", fiber.Map{
		"Title":        property.Title,
		"Property":     property,
		"Ratings":      ratings,
		"AvgRating":    property.AvgRating(),
		"IsFavorite":   isFavorite,
		"IsOwnListing": isOwner,
		"OwnerProfile": ownerProfile,
		"Placement":    placement,
		"ShareCode":    shortener.EncodeID(property.ID),
	})
}

// HandleMyProperties shows the owner dashboard. Quota reconciliation runs
// first so the list always reflects the current subscription.
func HandleMyProperties(c *fiber.Ctx) error {
	ownerID := extractUserID(c)
	repos := repository.GetGlobalRepositories()

	svc := quota.NewServiceFromDB(database.GetDB())
	result, err := svc.Reconcile(ownerID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "quota reconciliation failed")
	}

	properties, err := repos.Property.GetByOwnerID(ownerID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "listing lookup failed")
	}

	stats, err := repos.User.GetStatsByUserID(ownerID)
	if err != nil {
		log.Printf("owner stats lookup failed for user %d: %v", ownerID, err)
	}

	return render(c, "properties/mine", fiber.Map{
		"Title":        "My listings",
		"Properties":   properties,
		"Quota":        result,
		"Stats":        stats,
		"QuotaChanges": result.Changes,
	})
}

// HandlePropertyCreate publishes a new listing. When the owner is over
// quota the listing is stored suspended with the quota reason instead of
// being rejected.
func HandlePropertyCreate(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		categories, _ := repository.GetGlobalRepositories().Category.GetAll()
		return render(c, "properties/create", fiber.Map{
			"Title":      "Publish listing",
			"Categories": categories,
			"Types":      []string{models.PropertyTypeApartment, models.PropertyTypeHouse, models.PropertyTypeRoom, models.PropertyTypeCommercial, models.PropertyTypeLand, models.PropertyTypeOffice},
		})
	}

	ownerID := extractUserID(c)
	property, err := propertyFromForm(c)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": err.Error()}
		return flash.WithError(c, fm).Redirect("/properties/new")
	}
	property.OwnerID = ownerID

	svc := quota.NewServiceFromDB(database.GetDB())
	decision, err := svc.CanActivate(ownerID, 0)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "could not check your listing quota"}
		return flash.WithError(c, fm).Redirect("/properties/new")
	}

	if decision.Allowed {
		property.Status = models.PropertyStatusActive
	} else {
		property.Status = models.PropertyStatusSuspended
		property.SuspensionReason = decision.Reason
	}

	if err := property.Validate(); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("invalid listing: %s", err)}
		return flash.WithError(c, fm).Redirect("/properties/new")
	}

	if err := repository.GetGlobalRepositories().Property.Create(property); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
		return flash.WithError(c, fm).Redirect("/properties/new")
	}

	fm := fiber.Map{"type": "success", "message": "Listing published!"}
	if !decision.Allowed {
		fm = fiber.Map{
			"type":    "info",
			"message": "Listing saved but suspended: " + decision.Reason,
		}
	}
	return flash.WithSuccess(c, fm).Redirect("/properties/mine")
}

// HandlePropertyEdit updates an existing listing owned by the caller.
func HandlePropertyEdit(c *fiber.Ctx) error {
	property, err := ownListingFromParams(c)
	if err != nil {
		return err
	}

	if c.Method() != fiber.MethodPost {
		categories, _ := repository.GetGlobalRepositories().Category.GetAll()
		return render(c, "properties/edit", fiber.Map{
			"Title":      "Edit listing",
			"Property":   property,
			"Categories": categories,
		})
	}

	updated, err := propertyFromForm(c)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": err.Error()}
		return flash.WithError(c, fm).Redirect("/properties/" + property.UUID + "/edit")
	}

	property.Title = updated.Title
	property.Description = updated.Description
	property.Type = updated.Type
	property.Operation = updated.Operation
	property.Price = updated.Price
	property.FeesIncluded = updated.FeesIncluded
	property.ContactType = updated.ContactType
	property.City = updated.City
	property.District = updated.District
	property.Address = updated.Address
	property.AreaM2 = updated.AreaM2
	property.Bedrooms = updated.Bedrooms
	property.Bathrooms = updated.Bathrooms
	property.Parking = updated.Parking
	property.Furnished = updated.Furnished
	property.PetsAllowed = updated.PetsAllowed
	property.StudentSpecial = updated.StudentSpecial
	property.CategoryID = updated.CategoryID

	if err := property.Validate(); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("invalid listing: %s", err)}
		return flash.WithError(c, fm).Redirect("/properties/" + property.UUID + "/edit")
	}

	if err := repository.GetGlobalRepositories().Property.Update(property); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
		return flash.WithError(c, fm).Redirect("/properties/" + property.UUID + "/edit")
	}

	fm := fiber.Map{"type": "success", "message": "Listing updated"}
	return flash.WithSuccess(c, fm).Redirect("/properties/" + property.UUID)
}

// HandlePropertyActivate re-activates a suspended or rented listing if the
// quota allows it.
func HandlePropertyActivate(c *fiber.Ctx) error {
	property, err := ownListingFromParams(c)
	if err != nil {
		return err
	}

	svc := quota.NewServiceFromDB(database.GetDB())
	decision, err := svc.CanActivate(property.OwnerID, property.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "quota check failed")
	}
	if !decision.Allowed {
		fm := fiber.Map{"type": "error", "message": decision.Reason}
		return flash.WithError(c, fm).Redirect("/properties/mine")
	}

	if err := repository.GetGlobalRepositories().Property.UpdateStatus(property.ID, models.PropertyStatusActive, ""); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "activation failed")
	}

	fm := fiber.Map{"type": "success", "message": "Listing is active again"}
	return flash.WithSuccess(c, fm).Redirect("/properties/mine")
}

// HandlePropertySuspend suspends a listing by hand. Manual suspensions
// carry no reason text and are never auto-reverted.
func HandlePropertySuspend(c *fiber.Ctx) error {
	property, err := ownListingFromParams(c)
	if err != nil {
		return err
	}

	if err := repository.GetGlobalRepositories().Property.UpdateStatus(property.ID, models.PropertyStatusSuspended, ""); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "suspend failed")
	}

	fm := fiber.Map{"type": "success", "message": "Listing suspended"}
	return flash.WithSuccess(c, fm).Redirect("/properties/mine")
}

// HandlePropertyMarkRented flags a listing as rented out.
func HandlePropertyMarkRented(c *fiber.Ctx) error {
	property, err := ownListingFromParams(c)
	if err != nil {
		return err
	}

	if err := repository.GetGlobalRepositories().Property.UpdateStatus(property.ID, models.PropertyStatusRented, ""); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "update failed")
	}

	fm := fiber.Map{"type": "success", "message": "Congratulations on renting it out!"}
	return flash.WithSuccess(c, fm).Redirect("/properties/mine")
}

// HandlePropertyDelete removes a listing. The following reconcile may
// reactivate a quota-suspended sibling that now fits the limit.
func HandlePropertyDelete(c *fiber.Ctx) error {
	property, err := ownListingFromParams(c)
	if err != nil {
		return err
	}

	if err := repository.GetGlobalRepositories().Property.Delete(property.ID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "delete failed")
	}

	svc := quota.NewServiceFromDB(database.GetDB())
	if _, err := svc.Reconcile(property.OwnerID); err != nil {
		log.Printf("reconcile after delete failed for owner %d: %v", property.OwnerID, err)
	}

	fm := fiber.Map{"type": "success", "message": "Listing deleted"}
	return flash.WithSuccess(c, fm).Redirect("/properties/mine")
}

// ownListingFromParams loads the :uuid listing and verifies the caller owns it.
func ownListingFromParams(c *fiber.Ctx) (*models.Property, error) {
	property, err := repository.GetGlobalRepositories().Property.GetByUUID(c.Params("uuid"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "listing not found")
	}
	if property.OwnerID != extractUserID(c) {
		return nil, fiber.NewError(fiber.StatusForbidden, "not your listing")
	}
	return property, nil
}

func propertyFromForm(c *fiber.Ctx) (*models.Property, error) {
	price, err := strconv.ParseFloat(c.FormValue("price", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price")
	}
	area, _ := strconv.ParseFloat(c.FormValue("area_m2", "0"), 64)
	bedrooms, _ := strconv.Atoi(c.FormValue("bedrooms", "1"))
	bathrooms, _ := strconv.Atoi(c.FormValue("bathrooms", "1"))

	var categoryID *uint
	if v, err := strconv.Atoi(c.FormValue("category_id", "")); err == nil && v > 0 {
		id := uint(v)
		categoryID = &id
	}

	operation := c.FormValue("operation", models.OperationRent)
	contactType := c.FormValue("contact_type", models.ContactTypeDirectOwner)

	return &models.Property{
		Title:          c.FormValue("title"),
		Description:    c.FormValue("description"),
		Type:           c.FormValue("type", models.PropertyTypeApartment),
		Operation:      operation,
		Price:          price,
		FeesIncluded:   c.FormValue("fees_included") == "on",
		ContactType:    contactType,
		City:           c.FormValue("city"),
		District:       c.FormValue("district"),
		Address:        c.FormValue("address"),
		AreaM2:         area,
		Bedrooms:       bedrooms,
		Bathrooms:      bathrooms,
		Parking:        c.FormValue("parking") == "on",
		Furnished:      c.FormValue("furnished") == "on",
		PetsAllowed:    c.FormValue("pets_allowed") == "on",
		StudentSpecial: c.FormValue("student_special") == "on",
		CategoryID:     categoryID,
	}, nil
}
