package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
)

// contactRepository implements the ContactRepository interface
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository instance
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// Create creates a new contact request
func (r *contactRepository) Create(request *models.ContactRequest) error {
	return r.db.Create(request).Error
}

// GetByID retrieves a contact request with its property and sender
func (r *contactRepository) GetByID(id uint) (*models.ContactRequest, error) {
	var request models.ContactRequest
	err := r.db.Preload("Property").Preload("User").First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListByUserID returns the requests a user has sent, newest first
func (r *contactRepository) ListByUserID(userID uint) ([]models.ContactRequest, error) {
	var requests []models.ContactRequest
	err := r.db.Preload("Property").Preload("Property.Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListByOwnerID returns the requests received across an owner's listings
func (r *contactRepository) ListByOwnerID(ownerID uint) ([]models.ContactRequest, error) {
	var requests []models.ContactRequest
	err := r.db.Preload("Property").Preload("User").
		Joins("JOIN properties ON properties.id = contact_requests.property_id").
		Where("properties.owner_id = ?", ownerID).
		Order("contact_requests.created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListByPropertyID returns the requests for one listing, newest first
func (r *contactRepository) ListByPropertyID(propertyID uint) ([]models.ContactRequest, error) {
	var requests []models.ContactRequest
	err := r.db.Preload("User").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// HasPending reports whether the user already has an unanswered request for
// the property. Used to block duplicate sends.
func (r *contactRepository) HasPending(userID, propertyID uint) (bool, error) {
	var request models.ContactRequest
	err := r.db.Where("user_id = ? AND property_id = ? AND status = ?",
		userID, propertyID, models.ContactStatusPending).
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update updates an existing contact request
func (r *contactRepository) Update(request *models.ContactRequest) error {
	return r.db.Save(request).Error
}

// CountPendingByOwnerID counts unanswered requests across an owner's listings
func (r *contactRepository) CountPendingByOwnerID(ownerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ContactRequest{}).
		Joins("JOIN properties ON properties.id = contact_requests.property_id").
		Where("properties.owner_id = ? AND contact_requests.status = ?", ownerID, models.ContactStatusPending).
		Count(&count).Error
	return count, err
}
