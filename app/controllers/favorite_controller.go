package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
	"github.com/Impagliazzo/Proyecto-LaColmena/app/repository"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/database"
)

// HandleFavoriteToggle adds or removes a bookmark on a listing.
func HandleFavoriteToggle(c *fiber.Ctx) error {
	userID := extractUserID(c)
	repos := repository.GetGlobalRepositories()

	property, err := repos.Property.GetByUUID(c.Params("uuid"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "listing not found")
	}

	exists, err := repos.Favorite.Exists(userID, property.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "favorite lookup failed")
	}

	if exists {
		if err := repos.Favorite.Remove(userID, property.ID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not remove favorite")
		}
		return c.JSON(fiber.Map{"favorited": false})
	}

	if err := repos.Favorite.Add(userID, property.ID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not add favorite")
	}

	// Tell the owner someone bookmarked their listing. Self-favorites
	// don't notify.
	if property.OwnerID != userID {
		err := models.CreateNotification(database.GetDB(), property.OwnerID,
			models.NotificationTypeFavorite,
			"New favorite",
			fmt.Sprintf("Someone saved %q to their favorites", property.Title),
			"/properties/"+property.UUID)
		if err != nil {
			log.Printf("favorite notification failed: %v", err)
		}
	}

	return c.JSON(fiber.Map{"favorited": true})
}

// HandleFavoriteList shows the user's saved listings.
func HandleFavoriteList(c *fiber.Ctx) error {
	favorites, err := repository.GetGlobalRepositories().Favorite.ListByUser(extractUserID(c))
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "could not load favorites"}
		return flash.WithError(c, fm).Redirect("/")
	}

	return render(c, "favorites/index", fiber.Map{
		"Title":     "My favorites",
		"Favorites": favorites,
	})
}
