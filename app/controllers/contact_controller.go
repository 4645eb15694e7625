package controllers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
	"github.com/Impagliazzo/Proyecto-LaColmena/app/repository"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/database"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/mail"
)

// HandleContactSend sends a contact request to a listing's owner. One
// pending request per user and listing.
func HandleContactSend(c *fiber.Ctx) error {
	userID := extractUserID(c)
	repos := repository.GetGlobalRepositories()

	property, err := repos.Property.GetByUUID(c.Params("uuid"))
	if err != nil || !property.IsActive() {
		return fiber.NewError(fiber.StatusNotFound, "listing not found")
	}

	if property.OwnerID == userID {
		fm := fiber.Map{"type": "error", "message": "You cannot contact yourself"}
		return flash.WithError(c, fm).Redirect("/properties/" + property.UUID)
	}

	pending, err := repos.Contact.HasPending(userID, property.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "contact lookup failed")
	}
	if pending {
		fm := fiber.Map{"type": "info", "message": "You already have a pending request for this listing"}
		return flash.WithError(c, fm).Redirect("/properties/" + property.UUID)
	}

	request := &models.ContactRequest{
		UserID:     userID,
		PropertyID: property.ID,
		Message:    c.FormValue("message"),
		Phone:      c.FormValue("phone"),
		Email:      c.FormValue("email"),
		Status:     models.ContactStatusPending,
	}
	if request.Message == "" || request.Email == "" {
		fm := fiber.Map{"type": "error", "message": "Message and email are required"}
		return flash.WithError(c, fm).Redirect("/properties/" + property.UUID)
	}

	if err := repos.Contact.Create(request); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not send request")
	}

	err = models.CreateNotification(database.GetDB(), property.OwnerID,
		models.NotificationTypeContact,
		"New contact request",
		fmt.Sprintf("Someone is interested in %q", property.Title),
		"/contacts/inbox")
	if err != nil {
		log.Printf("contact notification failed: %v", err)
	}

	if owner, err := repos.User.GetByID(property.OwnerID); err == nil && owner.ReceiveNotifications {
		go mail.SendContactRequestMail(owner.Email, owner.Name, property.Title)
	}

	fm := fiber.Map{"type": "success", "message": "Request sent, the owner will get back to you"}
	return flash.WithSuccess(c, fm).Redirect("/properties/" + property.UUID)
}

// HandleContactInbox lists the requests received across the owner's listings.
func HandleContactInbox(c *fiber.Ctx) error {
	requests, err := repository.GetGlobalRepositories().Contact.ListByOwnerID(extractUserID(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "inbox lookup failed")
	}

	return render(c, "contacts/inbox", fiber.Map{
		"Title":    "Contact requests",
		"Requests": requests,
	})
}

// HandleContactSent lists the requests the user has sent.
func HandleContactSent(c *fiber.Ctx) error {
	requests, err := repository.GetGlobalRepositories().Contact.ListByUserID(extractUserID(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "request lookup failed")
	}

	return render(c, "contacts/sent", fiber.Map{
		"Title":    "My requests",
		"Requests": requests,
	})
}

// HandleContactRespond marks a request contacted or rejected. Answering a
// request unlocks the sender's listing scores on their rating.
func HandleContactRespond(c *fiber.Ctx) error {
	ownerID := extractUserID(c)
	repos := repository.GetGlobalRepositories()

	requestID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}

	request, err := repos.Contact.GetByID(uint(requestID))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "request not found")
	}
	if request.Property.OwnerID != ownerID {
		return fiber.NewError(fiber.StatusForbidden, "not your listing")
	}

	status := c.FormValue("status", models.ContactStatusContacted)
	if status != models.ContactStatusContacted && status != models.ContactStatusRejected {
		return fiber.NewError(fiber.StatusBadRequest, "unknown status")
	}

	now := time.Now()
	request.Status = status
	request.RespondedAt = &now
	if err := repos.Contact.Update(request); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not update request")
	}

	err = models.CreateNotification(database.GetDB(), request.UserID,
		models.NotificationTypeContact,
		"Request answered",
		fmt.Sprintf("The owner of %q responded to your request", request.Property.Title),
		"/contacts/sent")
	if err != nil {
		log.Printf("response notification failed: %v", err)
	}

	fm := fiber.Map{"type": "success", "message": "Request updated"}
	return flash.WithSuccess(c, fm).Redirect("/contacts/inbox")
}
