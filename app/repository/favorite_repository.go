package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
)

// favoriteRepository implements the FavoriteRepository interface
type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository instance
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add bookmarks a property for a user. Adding twice is a no-op.
func (r *favoriteRepository) Add(userID, propertyID uint) error {
	exists, err := r.Exists(userID, propertyID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return r.db.Create(&models.Favorite{UserID: userID, PropertyID: propertyID}).Error
}

// Remove deletes the bookmark if present
func (r *favoriteRepository) Remove(userID, propertyID uint) error {
	return r.db.Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&models.Favorite{}).Error
}

// Exists reports whether the user has bookmarked the property
func (r *favoriteRepository) Exists(userID, propertyID uint) (bool, error) {
	var favorite models.Favorite
	err := r.db.Where("user_id = ? AND property_id = ?", userID, propertyID).
		First(&favorite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser returns the user's bookmarks with listings preloaded
func (r *favoriteRepository) ListByUser(userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.Preload("Property").Preload("Property.Images").Preload("Property.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

// CountByProperty returns how many users bookmarked the property
func (r *favoriteRepository) CountByProperty(propertyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).Where("property_id = ?", propertyID).Count(&count).Error
	return count, err
}
