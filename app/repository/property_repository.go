package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
)

// propertyRepository implements the PropertyRepository interface
type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository instance
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

// Create creates a new property in the database
func (r *propertyRepository) Create(property *models.Property) error {
	return r.db.Create(property).Error
}

// GetByID retrieves a property with its images, category and owner
func (r *propertyRepository) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).Preload("Category").Preload("Owner").Preload("Ratings").
		First(&property, id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// GetByUUID retrieves a property by its public identifier
func (r *propertyRepository) GetByUUID(uuid string) (*models.Property, error) {
	var property models.Property
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).Preload("Category").Preload("Owner").Preload("Ratings").
		Where("uuid = ?", uuid).First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// GetByOwnerID returns all of an owner's listings, oldest first. The
// ordering matches the quota walk so position 1 is the free slot.
func (r *propertyRepository) GetByOwnerID(ownerID uint) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.Preload("Images").Preload("Category").Preload("Placements").
		Where("owner_id = ?", ownerID).
		Order("published_at ASC, id ASC").
		Find(&properties).Error
	return properties, err
}

// Update updates an existing property in the database
func (r *propertyRepository) Update(property *models.Property) error {
	return r.db.Save(property).Error
}

// UpdateStatus writes status and suspension reason in one statement
func (r *propertyRepository) UpdateStatus(id uint, status, reason string) error {
	return r.db.Model(&models.Property{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":            status,
			"suspension_reason": reason,
		}).Error
}

// Delete soft deletes a property by its ID
func (r *propertyRepository) Delete(id uint) error {
	return r.db.Delete(&models.Property{}, id).Error
}

// Search returns one page of active listings matching the filter plus the
// total match count for pagination.
func (r *propertyRepository) Search(filter PropertySearchFilter) ([]models.Property, int64, error) {
	query := r.db.Model(&models.Property{}).Where("status = ?", models.PropertyStatusActive)

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR district LIKE ?", pattern, pattern, pattern)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Operation != "" {
		query = query.Where("operation = ?", filter.Operation)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.MinPrice > 0 {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	if filter.MinBedrooms > 0 {
		query = query.Where("bedrooms >= ?", filter.MinBedrooms)
	}
	if filter.Furnished {
		query = query.Where("furnished = ?", true)
	}
	if filter.PetsAllowed {
		query = query.Where("pets_allowed = ?", true)
	}
	if filter.StudentSpecial {
		query = query.Where("student_special = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	default:
		query = query.Order("published_at DESC")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var properties []models.Property
	err := query.Preload("Images").Preload("Category").
		Offset(filter.Offset).Limit(limit).
		Find(&properties).Error
	return properties, total, err
}

// GetRecent returns the newest active listings for the home page
func (r *propertyRepository) GetRecent(limit int) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.Preload("Images").Preload("Category").
		Where("status = ?", models.PropertyStatusActive).
		Order("published_at DESC").
		Limit(limit).
		Find(&properties).Error
	return properties, err
}

// SuggestCities returns the cities of active listings matching the query,
// busiest first. An empty query matches every city.
func (r *propertyRepository) SuggestCities(query string, limit int) ([]LocationCount, error) {
	q := r.db.Model(&models.Property{}).
		Select("city, COUNT(*) AS count").
		Where("status = ?", models.PropertyStatusActive).
		Where("city <> ''")
	if query != "" {
		q = q.Where("city LIKE ?", "%"+query+"%")
	}

	var out []LocationCount
	err := q.Group("city").Order("count DESC").Limit(limit).Scan(&out).Error
	return out, err
}

// SuggestDistricts returns district/city pairs of active listings matching
// the query, busiest first.
func (r *propertyRepository) SuggestDistricts(query string, limit int) ([]LocationCount, error) {
	var out []LocationCount
	err := r.db.Model(&models.Property{}).
		Select("district, city, COUNT(*) AS count").
		Where("status = ?", models.PropertyStatusActive).
		Where("district <> '' AND district LIKE ?", "%"+query+"%").
		Group("district, city").
		Order("count DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// Count returns the total number of properties
func (r *propertyRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Property{}).Count(&count).Error
	return count, err
}

// CountByOwnerID returns the number of listings an owner has
func (r *propertyRepository) CountByOwnerID(ownerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Property{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

// CountActiveByOwnerID returns the number of active listings an owner has
func (r *propertyRepository) CountActiveByOwnerID(ownerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Property{}).
		Where("owner_id = ? AND status = ?", ownerID, models.PropertyStatusActive).
		Count(&count).Error
	return count, err
}

// AddImage attaches a photo record to a listing
func (r *propertyRepository) AddImage(image *models.PropertyImage) error {
	return r.db.Create(image).Error
}

// GetImages returns a listing's photos in display order
func (r *propertyRepository) GetImages(propertyID uint) ([]models.PropertyImage, error) {
	var images []models.PropertyImage
	err := r.db.Where("property_id = ?", propertyID).
		Order("sort_order ASC, id ASC").
		Find(&images).Error
	return images, err
}

// DeleteImage removes a photo record
func (r *propertyRepository) DeleteImage(imageID uint) error {
	return r.db.Delete(&models.PropertyImage{}, imageID).Error
}

// SetMainImage marks one photo as the cover and clears the flag elsewhere
func (r *propertyRepository) SetMainImage(propertyID, imageID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PropertyImage{}).
			Where("property_id = ?", propertyID).
			Update("is_main", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.PropertyImage{}).
			Where("id = ? AND property_id = ?", imageID, propertyID).
			Update("is_main", true).Error
	})
}
