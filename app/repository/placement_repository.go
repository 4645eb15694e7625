package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
)

// placementRepository implements the PlacementRepository interface
type placementRepository struct {
	db *gorm.DB
}

// NewPlacementRepository creates a new placement repository instance
func NewPlacementRepository(db *gorm.DB) PlacementRepository {
	return &placementRepository{db: db}
}

// Create creates a new featured placement
func (r *placementRepository) Create(placement *models.FeaturedPlacement) error {
	return r.db.Create(placement).Error
}

// GetByID retrieves a placement with its property
func (r *placementRepository) GetByID(id uint) (*models.FeaturedPlacement, error) {
	var placement models.FeaturedPlacement
	err := r.db.Preload("Property").First(&placement, id).Error
	if err != nil {
		return nil, err
	}
	return &placement, nil
}

// GetByPropertyID returns a listing's placement history, newest purchase first
func (r *placementRepository) GetByPropertyID(propertyID uint) ([]models.FeaturedPlacement, error) {
	var placements []models.FeaturedPlacement
	err := r.db.Where("property_id = ?", propertyID).
		Order("purchased_at DESC").
		Find(&placements).Error
	return placements, err
}

// GetCurrentByPropertyID returns the most recently purchased placement that
// is still valid at the given time, or nil.
func (r *placementRepository) GetCurrentByPropertyID(propertyID uint, now time.Time) (*models.FeaturedPlacement, error) {
	var placement models.FeaturedPlacement
	err := r.db.Where("property_id = ? AND active = ? AND ends_at > ?", propertyID, true, now).
		Order("purchased_at DESC").
		First(&placement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &placement, nil
}

// ListByOwnerID returns all placements across an owner's listings
func (r *placementRepository) ListByOwnerID(ownerID uint) ([]models.FeaturedPlacement, error) {
	var placements []models.FeaturedPlacement
	err := r.db.Preload("Property").
		Joins("JOIN properties ON properties.id = featured_placements.property_id").
		Where("properties.owner_id = ?", ownerID).
		Order("featured_placements.purchased_at DESC").
		Find(&placements).Error
	return placements, err
}

// Update updates an existing placement
func (r *placementRepository) Update(placement *models.FeaturedPlacement) error {
	return r.db.Save(placement).Error
}

// DeactivateExpired clears the active flag on every placement past its end
// and returns how many rows changed. Rows are kept for purchase history.
func (r *placementRepository) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.FeaturedPlacement{}).
		Where("active = ? AND ends_at <= ?", true, now).
		Update("active", false)
	return result.RowsAffected, result.Error
}

// CountCurrentByOwnerID counts the owner's placements valid at the given time
func (r *placementRepository) CountCurrentByOwnerID(ownerID uint, now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.FeaturedPlacement{}).
		Joins("JOIN properties ON properties.id = featured_placements.property_id").
		Where("properties.owner_id = ?", ownerID).
		Where("featured_placements.active = ? AND featured_placements.ends_at > ?", true, now).
		Count(&count).Error
	return count, err
}

// CountPurchasedSince counts the owner's active placements bought at or after
// the given time. Deactivating a placement early frees its slot in the
// monthly allotment.
func (r *placementRepository) CountPurchasedSince(ownerID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.FeaturedPlacement{}).
		Joins("JOIN properties ON properties.id = featured_placements.property_id").
		Where("properties.owner_id = ?", ownerID).
		Where("featured_placements.active = ? AND featured_placements.purchased_at >= ?", true, since).
		Count(&count).Error
	return count, err
}
