package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
	"github.com/Impagliazzo/Proyecto-LaColmena/app/repository"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/database"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/quota"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/session"
)

// HandleSubscriptionPlans shows the plan catalog with the user's current plan.
func HandleSubscriptionPlans(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	plans, err := repos.Subscription.GetPlans()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "plan lookup failed")
	}

	current := currentSubscription(extractUserID(c))

	return render(c, "subscriptions/plans", fiber.Map{
		"Title":   "Plans",
		"Plans":   plans,
		"Current": current,
	})
}

// HandleSubscriptionDetail shows the user's subscription with payments.
func HandleSubscriptionDetail(c *fiber.Ctx) error {
	userID := extractUserID(c)
	repos := repository.GetGlobalRepositories()

	current := currentSubscription(userID)
	history, err := repos.Subscription.GetHistoryByUserID(userID)
	if err != nil {
		log.Printf("subscription history lookup failed for user %d: %v", userID, err)
	}

	var payments []models.Payment
	now := time.Now()
	data := fiber.Map{
		"Title":   "My subscription",
		"Current": current,
		"History": history,
	}
	if current != nil {
		payments, _ = repos.Subscription.GetPaymentsBySubscriptionID(current.ID)
		data["Payments"] = payments
		data["DaysLeft"] = current.DaysLeft(now)
		data["ExpiringSoon"] = current.IsExpiringSoon(now)
	}

	return render(c, "subscriptions/detail", data)
}

// HandleSubscribe starts a new subscription or switches the plan. The old
// subscription is cancelled, never mutated in place, and quota
// reconciliation runs immediately so listings follow the new limit.
func HandleSubscribe(c *fiber.Ctx) error {
	userID := extractUserID(c)
	repos := repository.GetGlobalRepositories()

	planID, err := c.ParamsInt("planID")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid plan")
	}

	plan, err := repos.Subscription.GetPlanByID(uint(planID))
	if err != nil || !plan.Active {
		fm := fiber.Map{"type": "error", "message": "That plan is not available"}
		return flash.WithError(c, fm).Redirect("/subscriptions/plans")
	}

	now := time.Now()

	// Cancel the running subscription on a plan switch.
	if current := currentSubscription(userID); current != nil {
		if current.PlanID == plan.ID {
			fm := fiber.Map{"type": "info", "message": "You are already on this plan"}
			return flash.WithError(c, fm).Redirect("/subscriptions/plans")
		}
		current.Status = models.SubscriptionStatusCancelled
		current.CancelledAt = &now
		if err := repos.Subscription.Update(current); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "plan switch failed")
		}
	}

	subscription := &models.Subscription{
		UserID:    userID,
		PlanID:    plan.ID,
		Status:    models.SubscriptionStatusActive,
		StartedAt: now,
		ExpiresAt: now.AddDate(0, 0, plan.DurationDays),
	}
	if err := repos.Subscription.Create(subscription); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "subscription failed")
	}

	if plan.Price > 0 {
		payment := &models.Payment{
			SubscriptionID: subscription.ID,
			Amount:         plan.Price,
			Method:         c.FormValue("method", models.PaymentMethodCard),
			Status:         models.PaymentStatusCompleted,
			Reference:      fmt.Sprintf("SUB-%d-%d", subscription.ID, now.Unix()),
		}
		if err := repos.Subscription.CreatePayment(payment); err != nil {
			log.Printf("payment record failed for subscription %d: %v", subscription.ID, err)
		}
	}

	// New limit may reactivate quota-suspended listings right away.
	svc := quota.NewServiceFromDB(database.GetDB())
	result, err := svc.Reconcile(userID)
	if err != nil {
		log.Printf("reconcile after subscribe failed for user %d: %v", userID, err)
	}

	_ = session.SetSessionValue(c, "user_plan", plan.Name)

	notifySubscriptionChange(userID, fmt.Sprintf("You are now on the %s plan.", plan.Name), result)

	fm := fiber.Map{"type": "success", "message": fmt.Sprintf("Welcome to the %s plan!", plan.Name)}
	return flash.WithSuccess(c, fm).Redirect("/subscriptions/mine")
}

// HandleSubscriptionCancel cancels the running subscription. Listings over
// the free limit are suspended by the following reconciliation.
func HandleSubscriptionCancel(c *fiber.Ctx) error {
	userID := extractUserID(c)
	repos := repository.GetGlobalRepositories()

	current := currentSubscription(userID)
	if current == nil {
		fm := fiber.Map{"type": "error", "message": "No active subscription to cancel"}
		return flash.WithError(c, fm).Redirect("/subscriptions/mine")
	}

	now := time.Now()
	current.Status = models.SubscriptionStatusCancelled
	current.CancelledAt = &now
	if err := repos.Subscription.Update(current); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "cancellation failed")
	}

	svc := quota.NewServiceFromDB(database.GetDB())
	result, err := svc.Reconcile(userID)
	if err != nil {
		log.Printf("reconcile after cancel failed for user %d: %v", userID, err)
	}

	_ = session.SetSessionValue(c, "user_plan", "free")

	notifySubscriptionChange(userID, "Your subscription was cancelled.", result)

	fm := fiber.Map{"type": "success", "message": "Subscription cancelled"}
	return flash.WithSuccess(c, fm).Redirect("/subscriptions/mine")
}

// currentSubscription returns the user's active-and-unexpired subscription,
// or nil. Lapsed rows are left untouched here; reads never mutate them.
func currentSubscription(userID uint) *models.Subscription {
	sub, err := repository.GetGlobalRepositories().Subscription.GetActiveByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("subscription lookup failed for user %d: %v", userID, err)
		}
		return nil
	}
	if !sub.IsValid(time.Now()) {
		return nil
	}
	return sub
}

func notifySubscriptionChange(userID uint, message string, result *quota.Result) {
	if result != nil && len(result.Changes) > 0 {
		message += fmt.Sprintf(" %d of your listings changed status.", len(result.Changes))
	}
	err := models.CreateNotification(database.GetDB(), userID,
		models.NotificationTypeSubscription, "Subscription update", message, "/subscriptions/mine")
	if err != nil {
		log.Printf("subscription notification failed for user %d: %v", userID, err)
	}
}
