package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
)

// ratingRepository implements the RatingRepository interface
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository instance
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create creates a new rating
func (r *ratingRepository) Create(rating *models.Rating) error {
	return r.db.Create(rating).Error
}

// GetByID retrieves a rating by its ID
func (r *ratingRepository) GetByID(id uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Preload("User").First(&rating, id).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// GetByUserAndProperty returns the user's rating of a listing, or nil.
// One rating per user and listing is enforced here and by a unique index.
func (r *ratingRepository) GetByUserAndProperty(userID, propertyID uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("user_id = ? AND property_id = ?", userID, propertyID).
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListByPropertyID returns a listing's ratings with raters preloaded
func (r *ratingRepository) ListByPropertyID(propertyID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Preload("User").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

// Update updates an existing rating
func (r *ratingRepository) Update(rating *models.Rating) error {
	return r.db.Save(rating).Error
}

// Delete removes a rating by its ID
func (r *ratingRepository) Delete(id uint) error {
	return r.db.Delete(&models.Rating{}, id).Error
}

// Report files an abuse report and bumps the rating's report counter
func (r *ratingRepository) Report(report *models.RatingReport) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return err
		}
		return tx.Model(&models.Rating{}).Where("id = ?", report.RatingID).
			Updates(map[string]interface{}{
				"reported":     true,
				"report_count": gorm.Expr("report_count + 1"),
			}).Error
	})
}

// HasReported reports whether this user already reported the rating
func (r *ratingRepository) HasReported(ratingID, reporterID uint) (bool, error) {
	var report models.RatingReport
	err := r.db.Where("rating_id = ? AND reported_by_id = ?", ratingID, reporterID).
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
