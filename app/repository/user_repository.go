package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email address
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByActivationToken retrieves a user by their activation token
func (r *userRepository) GetByActivationToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.Where("activation_token = ?", token).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates an existing user in the database
func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete soft deletes a user by their ID
func (r *userRepository) Delete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// List retrieves a paginated list of users
func (r *userRepository) List(offset, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

// Count returns the total number of users
func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// Search searches for users by name or email
func (r *userRepository) Search(query string) ([]models.User, error) {
	var users []models.User
	searchPattern := "%" + strings.TrimSpace(query) + "%"
	err := r.db.Where("name LIKE ? OR email LIKE ?", searchPattern, searchPattern).Find(&users).Error
	return users, err
}

// GetProfile loads the user's progressive profile, creating it on first access
func (r *userRepository) GetProfile(userID uint) (*models.UserProfile, error) {
	return models.GetOrCreateUserProfile(r.db, userID)
}

// SaveProfile persists profile changes and refreshes the completion flag
func (r *userRepository) SaveProfile(profile *models.UserProfile) error {
	profile.ProfileComplete = profile.IsComplete()
	return r.db.Save(profile).Error
}

// GetStatsByUserID returns the dashboard aggregates for an owner.
func (r *userRepository) GetStatsByUserID(userID uint) (*OwnerStats, error) {
	var stats OwnerStats

	err := r.db.Model(&models.Property{}).Where("owner_id = ?", userID).Count(&stats.PropertyCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}

	err = r.db.Model(&models.Property{}).
		Where("owner_id = ? AND status = ?", userID, models.PropertyStatusActive).
		Count(&stats.ActiveCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active properties: %w", err)
	}

	err = r.db.Model(&models.Property{}).Where("owner_id = ?", userID).
		Select("COALESCE(SUM(view_count), 0)").Row().Scan(&stats.TotalViews)
	if err != nil {
		return nil, fmt.Errorf("failed to sum view counts: %w", err)
	}

	err = r.db.Model(&models.Favorite{}).
		Joins("JOIN properties ON properties.id = favorites.property_id").
		Where("properties.owner_id = ?", userID).
		Count(&stats.FavoriteCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	err = r.db.Model(&models.ContactRequest{}).
		Joins("JOIN properties ON properties.id = contact_requests.property_id").
		Where("properties.owner_id = ? AND contact_requests.status = ?", userID, models.ContactStatusPending).
		Count(&stats.PendingLeads).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count pending leads: %w", err)
	}

	return &stats, nil
}
