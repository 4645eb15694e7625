package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/repository"
)

const notificationsPerPage = 25

// HandleNotificationList shows the user's notifications.
func HandleNotificationList(c *fiber.Ctx) error {
	userID := extractUserID(c)
	repos := repository.GetGlobalRepositories()

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	notifications, err := repos.Notification.ListByUserID(userID, (page-1)*notificationsPerPage, notificationsPerPage)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "notification lookup failed")
	}

	unread, _ := repos.Notification.CountUnreadByUserID(userID)

	return render(c, "notifications/index", fiber.Map{
		"Title":         "Notifications",
		"Notifications": notifications,
		"Unread":        unread,
		"Page":          page,
	})
}

// HandleNotificationRead marks one notification as read and follows its link.
func HandleNotificationRead(c *fiber.Ctx) error {
	userID := extractUserID(c)
	repos := repository.GetGlobalRepositories()

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid notification id")
	}

	notification, err := repos.Notification.GetByID(uint(id))
	if err != nil || notification.UserID != userID {
		return fiber.NewError(fiber.StatusNotFound, "notification not found")
	}

	if err := repos.Notification.MarkRead(notification.ID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not mark as read")
	}

	if notification.URL != "" {
		return c.Redirect(notification.URL, fiber.StatusSeeOther)
	}
	return c.Redirect("/notifications", fiber.StatusSeeOther)
}

// HandleNotificationReadAll marks every notification as read.
func HandleNotificationReadAll(c *fiber.Ctx) error {
	if err := repository.GetGlobalRepositories().Notification.MarkAllRead(extractUserID(c)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not mark notifications as read")
	}
	return c.Redirect("/notifications", fiber.StatusSeeOther)
}
