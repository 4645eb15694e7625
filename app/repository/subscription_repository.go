package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// GetPlans returns the purchasable plan catalog in display order
func (r *subscriptionRepository) GetPlans() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := r.db.Where("active = ?", true).
		Order("sort_order ASC, price ASC").
		Find(&plans).Error
	return plans, err
}

// GetPlanByID retrieves a plan by its ID
func (r *subscriptionRepository) GetPlanByID(id uint) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.db.First(&plan, id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Create creates a new subscription
func (r *subscriptionRepository) Create(subscription *models.Subscription) error {
	return r.db.Create(subscription).Error
}

// GetByID retrieves a subscription with its plan
func (r *subscriptionRepository) GetByID(id uint) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.db.Preload("Plan").First(&subscription, id).Error
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

// GetActiveByUserID returns the user's subscription in active state with its
// plan. The caller still checks IsValid against the clock; rows stay in
// active state past expiry until a write path runs.
func (r *subscriptionRepository) GetActiveByUserID(userID uint) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.db.Preload("Plan").
		Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		Order("started_at DESC").
		First(&subscription).Error
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

// GetHistoryByUserID returns all subscriptions a user ever held, newest first
func (r *subscriptionRepository) GetHistoryByUserID(userID uint) ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	err := r.db.Preload("Plan").
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&subscriptions).Error
	return subscriptions, err
}

// Update updates an existing subscription
func (r *subscriptionRepository) Update(subscription *models.Subscription) error {
	return r.db.Save(subscription).Error
}

// ExpireOverdue flips every overdue active subscription to expired and
// returns how many rows changed.
func (r *subscriptionRepository) ExpireOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&models.Subscription{}).
		Where("status = ? AND expires_at <= ?", models.SubscriptionStatusActive, now).
		Update("status", models.SubscriptionStatusExpired)
	return result.RowsAffected, result.Error
}

// GetExpiringBetween returns active subscriptions expiring inside the window,
// with user and plan preloaded for reminder mails.
func (r *subscriptionRepository) GetExpiringBetween(from, to time.Time) ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	err := r.db.Preload("User").Preload("Plan").
		Where("status = ? AND expires_at BETWEEN ? AND ?", models.SubscriptionStatusActive, from, to).
		Find(&subscriptions).Error
	return subscriptions, err
}

// CreatePayment records a charge against a subscription
func (r *subscriptionRepository) CreatePayment(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// GetPaymentsBySubscriptionID returns a subscription's payment history
func (r *subscriptionRepository) GetPaymentsBySubscriptionID(subscriptionID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("subscription_id = ?", subscriptionID).
		Order("paid_at DESC").
		Find(&payments).Error
	return payments, err
}
