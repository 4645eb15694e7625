package featured

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
)

// Repository provides the DB reads used by the ranker.
type Repository interface {
	// ActivePropertiesWithValidPlacements returns active listings holding at
	// least one placement that is active and unexpired at the given time,
	// with placements, images and category preloaded.
	ActivePropertiesWithValidPlacements(now time.Time) ([]models.Property, error)
	ActiveSubscriptionByUser(userID uint) (*models.Subscription, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a featured repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ActivePropertiesWithValidPlacements(now time.Time) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.
		Joins("JOIN featured_placements ON featured_placements.property_id = properties.id").
		Where("properties.status = ?", models.PropertyStatusActive).
		Where("featured_placements.active = ? AND featured_placements.ends_at > ?", true, now).
		Group("properties.id").
		Preload("Placements").
		Preload("Images").
		Preload("Category").
		Find(&properties).Error
	return properties, err
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
