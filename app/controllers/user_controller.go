package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
	"github.com/Impagliazzo/Proyecto-LaColmena/app/repository"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/session"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/utils"
)

// HandleUserProfile shows and updates the user's account and progressive
// profile.
func HandleUserProfile(c *fiber.Ctx) error {
	userID := extractUserID(c)
	repos := repository.GetGlobalRepositories()

	user, err := repos.User.GetByID(userID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	profile, err := repos.User.GetProfile(userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "profile lookup failed")
	}

	if c.Method() == fiber.MethodPost {
		user.Name = c.FormValue("name", user.Name)
		user.Phone = c.FormValue("phone", user.Phone)
		user.Bio = c.FormValue("bio", user.Bio)
		user.ReceiveNotifications = c.FormValue("receive_notifications") == "on"

		if password := c.FormValue("password"); password != "" {
			if err := user.SetPassword(password); err != nil {
				fm := fiber.Map{"type": "error", "message": "could not update password"}
				return flash.WithError(c, fm).Redirect("/user/profile")
			}
		}

		if err := repos.User.Update(user); err != nil {
			fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
			return flash.WithError(c, fm).Redirect("/user/profile")
		}

		profile.FirstName = c.FormValue("first_name", profile.FirstName)
		profile.LastName = c.FormValue("last_name", profile.LastName)
		profile.UserType = c.FormValue("user_type", profile.UserType)
		profile.MainGoal = c.FormValue("main_goal", profile.MainGoal)
		if err := repos.User.SaveProfile(profile); err != nil {
			fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
			return flash.WithError(c, fm).Redirect("/user/profile")
		}

		fm := fiber.Map{"type": "success", "message": "Profile updated"}
		return flash.WithSuccess(c, fm).Redirect("/user/profile")
	}

	return render(c, "user/profile", fiber.Map{
		"Title":             "My profile",
		"User":              user,
		"Profile":           profile,
		"CompletionPercent": profile.CompletionPercent(),
		"AvatarURL":         utils.GetGravatarURL(user.Email, 200),
	})
}

// HandleUserDashboard shows the user's overview: stats, subscription state
// and pending leads for owners.
func HandleUserDashboard(c *fiber.Ctx) error {
	userID := extractUserID(c)
	repos := repository.GetGlobalRepositories()

	user, err := repos.User.GetByID(userID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	data := fiber.Map{
		"Title": "Dashboard",
		"User":  user,
	}

	if user.IsOwner() {
		if stats, err := repos.User.GetStatsByUserID(userID); err == nil {
			data["Stats"] = stats
		}
		data["Subscription"] = currentSubscription(userID)
	}

	return render(c, "user/dashboard", data)
}

// HandleBecomeOwner upgrades a regular user to the owner role so they can
// publish listings.
func HandleBecomeOwner(c *fiber.Ctx) error {
	userID := extractUserID(c)
	repos := repository.GetGlobalRepositories()

	user, err := repos.User.GetByID(userID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	if c.Method() != fiber.MethodPost {
		return render(c, "user/become_owner", fiber.Map{
			"Title":   "Publish your property",
			"IsOwner": user.IsOwner(),
		})
	}

	if user.IsOwner() {
		return c.Redirect("/properties/new", fiber.StatusSeeOther)
	}

	user.Role = models.ROLE_OWNER
	if err := repos.User.Update(user); err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
		return flash.WithError(c, fm).Redirect("/user/become-owner")
	}

	// Refresh the session flag so owner routes open immediately.
	if sess, err := session.GetSessionStore().Get(c); err == nil {
		sess.Set(USER_IS_OWNER, true)
		_ = sess.Save()
	}

	fm := fiber.Map{"type": "success", "message": "You can publish listings now!"}
	return flash.WithSuccess(c, fm).Redirect("/properties/new")
}

// HandleOwnerPublicProfile shows an owner's public page with their rating
// and active listings.
func HandleOwnerPublicProfile(c *fiber.Ctx) error {
	ownerID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	repos := repository.GetGlobalRepositories()
	owner, err := repos.User.GetByID(uint(ownerID))
	if err != nil || !owner.IsOwner() {
		return fiber.NewError(fiber.StatusNotFound, "owner not found")
	}

	profile, err := repos.User.GetProfile(owner.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "profile lookup failed")
	}

	properties, err := repos.Property.GetByOwnerID(owner.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "listing lookup failed")
	}
	active := properties[:0:0]
	for _, p := range properties {
		if p.IsActive() {
			active = append(active, p)
		}
	}

	return render(c, "user/owner", fiber.Map{
		"Title":      owner.Name,
		"Owner":      owner,
		"Profile":    profile,
		"Properties": active,
		"AvatarURL":  utils.GetGravatarURL(owner.Email, 200),
	})
}
