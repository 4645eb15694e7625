package jobqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
	"github.com/Impagliazzo/Proyecto-LaColmena/app/repository"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/database"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/mail"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/quota"
)

const (
	// Warn subscribers this many days before their plan lapses.
	expiryWarningDays = 3

	// Notifications older than this get pruned.
	notificationRetention = 90 * 24 * time.Hour

	warnedKeyPrefix = "subscription:expiry_warned:"
	warnedKeyTTL    = 72 * time.Hour
)

// processSubscriptionSweepJob expires overdue subscriptions, reconciles the
// listings of every affected owner and queues expiry warnings for plans that
// lapse within the warning window.
func (q *Queue) processSubscriptionSweepJob(ctx context.Context, job *Job) error {
	repos := repository.GetGlobalRepositories()
	now := time.Now()

	// Collect the owners whose subscription is about to be flipped; after
	// ExpireOverdue the rows no longer match the overdue query.
	overdue, err := repos.Subscription.GetExpiringBetween(now.AddDate(-10, 0, 0), now)
	if err != nil {
		return fmt.Errorf("load overdue subscriptions: %w", err)
	}

	expired, err := repos.Subscription.ExpireOverdue(now)
	if err != nil {
		return fmt.Errorf("expire overdue subscriptions: %w", err)
	}
	if expired > 0 {
		log.Infof("[JobQueue] Expired %d overdue subscriptions", expired)
	}

	quotaSvc := quota.NewServiceFromDB(database.GetDB())
	for _, subscription := range overdue {
		result, err := quotaSvc.Reconcile(subscription.UserID)
		if err != nil {
			log.Errorf("[JobQueue] Reconcile after expiry failed for user %d: %v", subscription.UserID, err)
			continue
		}
		if result.SuspendedCount > 0 {
			err := models.CreateNotification(database.GetDB(), subscription.UserID,
				models.NotificationTypeSubscription,
				"Subscription expired",
				fmt.Sprintf("Your %s plan expired. %d of your listings were suspended.",
					subscription.Plan.Name, result.SuspendedCount),
				"/subscriptions/plans")
			if err != nil {
				log.Errorf("[JobQueue] Expiry notification failed for user %d: %v", subscription.UserID, err)
			}
		}
	}

	// Queue warnings for plans inside the warning window.
	expiring, err := repos.Subscription.GetExpiringBetween(now, now.AddDate(0, 0, expiryWarningDays))
	if err != nil {
		return fmt.Errorf("load expiring subscriptions: %w", err)
	}
	for _, subscription := range expiring {
		payload := ExpiryWarningJobPayload{
			SubscriptionID: subscription.ID,
			DaysLeft:       subscription.DaysLeft(now),
		}
		if _, err := q.EnqueueJob(JobTypeExpiryWarning, payload.ToMap()); err != nil {
			log.Errorf("[JobQueue] Failed to enqueue expiry warning for subscription %d: %v", subscription.ID, err)
		}
	}

	return nil
}

// processPlacementSweepJob deactivates featured placements whose paid window
// has ended. Purchase history rows are kept.
func (q *Queue) processPlacementSweepJob(ctx context.Context, job *Job) error {
	count, err := repository.GetGlobalRepositories().Placement.DeactivateExpired(time.Now())
	if err != nil {
		return fmt.Errorf("deactivate expired placements: %w", err)
	}
	if count > 0 {
		log.Infof("[JobQueue] Deactivated %d expired placements", count)
	}
	return nil
}

// processExpiryWarningJob warns one subscriber that their plan lapses soon.
// A Redis marker keeps repeated sweeps from mailing the same user twice.
func (q *Queue) processExpiryWarningJob(ctx context.Context, job *Job) error {
	payload, err := ExpiryWarningJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid expiry warning payload: %w", err)
	}

	repos := repository.GetGlobalRepositories()
	subscription, err := repos.Subscription.GetByID(payload.SubscriptionID)
	if err != nil {
		return fmt.Errorf("load subscription %d: %w", payload.SubscriptionID, err)
	}
	if !subscription.IsValid(time.Now()) {
		// Renewed to a new row or already lapsed; nothing to warn about.
		return nil
	}

	warnedKey := fmt.Sprintf("%s%d", warnedKeyPrefix, subscription.ID)
	set, err := q.client.SetNX(ctx, warnedKey, "1", warnedKeyTTL).Result()
	if err != nil {
		return fmt.Errorf("warning dedupe check: %w", err)
	}
	if !set {
		return nil
	}

	user, err := repos.User.GetByID(subscription.UserID)
	if err != nil {
		return fmt.Errorf("load user %d: %w", subscription.UserID, err)
	}

	err = models.CreateNotification(database.GetDB(), user.ID,
		models.NotificationTypeSubscription,
		"Subscription expiring soon",
		fmt.Sprintf("Your %s plan expires in %d days.", subscription.Plan.Name, payload.DaysLeft),
		"/subscriptions/plans")
	if err != nil {
		log.Errorf("[JobQueue] Expiry warning notification failed for user %d: %v", user.ID, err)
	}

	if user.ReceiveNotifications {
		return mail.SendSubscriptionExpiringMail(user.Email, user.Name, subscription.Plan.Name, payload.DaysLeft)
	}
	return nil
}

// processNotificationPruneJob deletes read notifications past retention.
func (q *Queue) processNotificationPruneJob(ctx context.Context, job *Job) error {
	cutoff := time.Now().Add(-notificationRetention)
	count, err := repository.GetGlobalRepositories().Notification.DeleteOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("prune notifications: %w", err)
	}
	if count > 0 {
		log.Infof("[JobQueue] Pruned %d old notifications", count)
	}
	return nil
}
