package quota

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
)

// Repository provides the DB operations used by the quota service.
type Repository interface {
	// ListPropertiesByOwner returns all of the owner's listings ordered by
	// publication time ascending. The ordering is load-bearing: it decides
	// which listing occupies the permanent free slot.
	ListPropertiesByOwner(ownerID uint) ([]models.Property, error)
	FirstPropertyByOwner(ownerID uint) (*models.Property, error)
	// ActiveSubscriptionByUser returns the user's subscription in active
	// state with its plan, or nil when there is none.
	ActiveSubscriptionByUser(userID uint) (*models.Subscription, error)
	CountActiveByOwnerExcluding(ownerID uint, excludePropertyID uint) (int64, error)
	UpdatePropertyStatus(propertyID uint, status, reason string) error
	// Transaction runs fn against a repository bound to a single DB
	// transaction.
	Transaction(fn func(Repository) error) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a quota repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ListPropertiesByOwner(ownerID uint) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.Where("owner_id = ?", ownerID).
		Order("published_at ASC, id ASC").
		Find(&properties).Error
	return properties, err
}

func (r *gormRepository) FirstPropertyByOwner(ownerID uint) (*models.Property, error) {
	var property models.Property
	err := r.db.Where("owner_id = ?", ownerID).
		Order("published_at ASC, id ASC").
		First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *gormRepository) ActiveSubscriptionByUser(userID uint) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.db.Preload("Plan").
		Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		First(&subscription).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

func (r *gormRepository) CountActiveByOwnerExcluding(ownerID uint, excludePropertyID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Property{}).
		Where("owner_id = ? AND status = ?", ownerID, models.PropertyStatusActive)
	if excludePropertyID != 0 {
		query = query.Where("id <> ?", excludePropertyID)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *gormRepository) UpdatePropertyStatus(propertyID uint, status, reason string) error {
	return r.db.Model(&models.Property{}).Where("id = ?", propertyID).
		Updates(map[string]interface{}{
			"status":            status,
			"suspension_reason": reason,
		}).Error
}

func (r *gormRepository) Transaction(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}
