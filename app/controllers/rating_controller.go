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
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/database"
)

// HandleRatingSubmit creates or updates the caller's rating of a listing.
// Owner scores are always writable; the listing scores stay locked until
// the owner has answered one of the rater's contact requests.
func HandleRatingSubmit(c *fiber.Ctx) error {
	userID := extractUserID(c)
	repos := repository.GetGlobalRepositories()

	property, err := repos.Property.GetByUUID(c.Params("uuid"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "listing not found")
	}
	if property.OwnerID == userID {
		fm := fiber.Map{"type": "error", "message": "You cannot rate your own listing"}
		return flash.WithError(c, fm).Redirect("/properties/" + property.UUID)
	}

	rating, err := repos.Rating.GetByUserAndProperty(userID, property.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "rating lookup failed")
	}

	isNew := rating == nil
	if isNew {
		rating = &models.Rating{UserID: userID, PropertyID: property.ID}
	} else if !rating.CanEdit(time.Now()) {
		fm := fiber.Map{"type": "error", "message": "Ratings can only be edited within 30 days"}
		return flash.WithError(c, fm).Redirect("/properties/" + property.UUID)
	}

	rating.ResponseTime = formScore(c, "response_time", rating.ResponseTime)
	rating.Treatment = formScore(c, "treatment", rating.Treatment)
	rating.Reliability = formScore(c, "reliability", rating.Reliability)
	rating.Comment = c.FormValue("comment", rating.Comment)

	if listingScoresUnlocked(userID, property.ID) {
		rating.InfoClarity = formScorePtr(c, "info_clarity", rating.InfoClarity)
		rating.PhotoAccuracy = formScorePtr(c, "photo_accuracy", rating.PhotoAccuracy)
		rating.LocationAccuracy = formScorePtr(c, "location_accuracy", rating.LocationAccuracy)
	}

	if isNew {
		err = repos.Rating.Create(rating)
	} else {
		err = repos.Rating.Update(rating)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not save rating")
	}

	// Keep the owner's aggregate in sync.
	if profile, err := repos.User.GetProfile(property.OwnerID); err == nil {
		if err := profile.RefreshOwnerRating(database.GetDB()); err != nil {
			log.Printf("owner rating refresh failed for user %d: %v", property.OwnerID, err)
		}
	}

	if isNew {
		err := models.CreateNotification(database.GetDB(), property.OwnerID,
			models.NotificationTypeRating,
			"New rating",
			fmt.Sprintf("Your listing %q received a rating", property.Title),
			"/properties/"+property.UUID)
		if err != nil {
			log.Printf("rating notification failed: %v", err)
		}
	}

	fm := fiber.Map{"type": "success", "message": "Thanks for your rating!"}
	return flash.WithSuccess(c, fm).Redirect("/properties/" + property.UUID)
}

// HandleRatingReport files an abuse report against a rating. One report
// per user and rating.
func HandleRatingReport(c *fiber.Ctx) error {
	userID := extractUserID(c)
	repos := repository.GetGlobalRepositories()

	ratingID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid rating id")
	}

	rating, err := repos.Rating.GetByID(uint(ratingID))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "rating not found")
	}

	reported, err := repos.Rating.HasReported(rating.ID, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "report lookup failed")
	}
	if reported {
		fm := fiber.Map{"type": "info", "message": "You already reported this rating"}
		return flash.WithError(c, fm).Redirect(c.Get("Referer", "/"))
	}

	reason := c.FormValue("reason", models.ReportReasonOther)
	report := &models.RatingReport{
		RatingID:     rating.ID,
		ReportedByID: userID,
		Reason:       reason,
		Description:  c.FormValue("description"),
	}
	if err := repos.Rating.Report(report); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not file report")
	}

	fm := fiber.Map{"type": "success", "message": "Report filed, thanks for the heads-up"}
	return flash.WithSuccess(c, fm).Redirect(c.Get("Referer", "/"))
}

// listingScoresUnlocked reports whether the owner answered one of the
// user's contact requests for this listing.
func listingScoresUnlocked(userID, propertyID uint) bool {
	requests, err := repository.GetGlobalRepositories().Contact.ListByUserID(userID)
	if err != nil {
		return false
	}
	for _, request := range requests {
		if request.PropertyID == propertyID && request.Status == models.ContactStatusContacted {
			return true
		}
	}
	return false
}

func formScore(c *fiber.Ctx, field string, fallback int) int {
	v, err := strconv.Atoi(c.FormValue(field))
	if err != nil || v < 1 || v > 5 {
		return fallback
	}
	return v
}

func formScorePtr(c *fiber.Ctx, field string, fallback *int) *int {
	v, err := strconv.Atoi(c.FormValue(field))
	if err != nil || v < 1 || v > 5 {
		return fallback
	}
	return &v
}
