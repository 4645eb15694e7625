package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	Search(query string) ([]models.User, error)
	GetProfile(userID uint) (*models.UserProfile, error)
	SaveProfile(profile *models.UserProfile) error
	GetStatsByUserID(userID uint) (*OwnerStats, error)
}

// PropertyRepository defines the interface for listing-related database operations
type PropertyRepository interface {
	Create(property *models.Property) error
	GetByID(id uint) (*models.Property, error)
	GetByUUID(uuid string) (*models.Property, error)
	GetByOwnerID(ownerID uint) ([]models.Property, error)
	Update(property *models.Property) error
	UpdateStatus(id uint, status, reason string) error
	Delete(id uint) error
	Search(filter PropertySearchFilter) ([]models.Property, int64, error)
	GetRecent(limit int) ([]models.Property, error)
	SuggestCities(query string, limit int) ([]LocationCount, error)
	SuggestDistricts(query string, limit int) ([]LocationCount, error)
	Count() (int64, error)
	CountByOwnerID(ownerID uint) (int64, error)
	CountActiveByOwnerID(ownerID uint) (int64, error)
	AddImage(image *models.PropertyImage) error
	GetImages(propertyID uint) ([]models.PropertyImage, error)
	DeleteImage(imageID uint) error
	SetMainImage(propertyID, imageID uint) error
}

// FavoriteRepository defines the interface for bookmark operations
type FavoriteRepository interface {
	Add(userID, propertyID uint) error
	Remove(userID, propertyID uint) error
	Exists(userID, propertyID uint) (bool, error)
	ListByUser(userID uint) ([]models.Favorite, error)
	CountByProperty(propertyID uint) (int64, error)
}

// CategoryRepository defines the interface for category operations
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
}

// SubscriptionRepository defines the interface for plan and subscription operations
type SubscriptionRepository interface {
	GetPlans() ([]models.SubscriptionPlan, error)
	GetPlanByID(id uint) (*models.SubscriptionPlan, error)
	Create(subscription *models.Subscription) error
	GetByID(id uint) (*models.Subscription, error)
	GetActiveByUserID(userID uint) (*models.Subscription, error)
	GetHistoryByUserID(userID uint) ([]models.Subscription, error)
	Update(subscription *models.Subscription) error
	ExpireOverdue(now time.Time) (int64, error)
	GetExpiringBetween(from, to time.Time) ([]models.Subscription, error)
	CreatePayment(payment *models.Payment) error
	GetPaymentsBySubscriptionID(subscriptionID uint) ([]models.Payment, error)
}

// PlacementRepository defines the interface for featured placement operations
type PlacementRepository interface {
	Create(placement *models.FeaturedPlacement) error
	GetByID(id uint) (*models.FeaturedPlacement, error)
	GetByPropertyID(propertyID uint) ([]models.FeaturedPlacement, error)
	GetCurrentByPropertyID(propertyID uint, now time.Time) (*models.FeaturedPlacement, error)
	ListByOwnerID(ownerID uint) ([]models.FeaturedPlacement, error)
	Update(placement *models.FeaturedPlacement) error
	DeactivateExpired(now time.Time) (int64, error)
	CountCurrentByOwnerID(ownerID uint, now time.Time) (int64, error)
	CountPurchasedSince(ownerID uint, since time.Time) (int64, error)
}

// ContactRepository defines the interface for contact request operations
type ContactRepository interface {
	Create(request *models.ContactRequest) error
	GetByID(id uint) (*models.ContactRequest, error)
	ListByUserID(userID uint) ([]models.ContactRequest, error)
	ListByOwnerID(ownerID uint) ([]models.ContactRequest, error)
	ListByPropertyID(propertyID uint) ([]models.ContactRequest, error)
	HasPending(userID, propertyID uint) (bool, error)
	Update(request *models.ContactRequest) error
	CountPendingByOwnerID(ownerID uint) (int64, error)
}

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByID(id uint) (*models.Notification, error)
	ListByUserID(userID uint, offset, limit int) ([]models.Notification, error)
	CountUnreadByUserID(userID uint) (int64, error)
	MarkRead(id uint) error
	MarkAllRead(userID uint) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// RatingRepository defines the interface for rating operations
type RatingRepository interface {
	Create(rating *models.Rating) error
	GetByID(id uint) (*models.Rating, error)
	GetByUserAndProperty(userID, propertyID uint) (*models.Rating, error)
	ListByPropertyID(propertyID uint) ([]models.Rating, error)
	Update(rating *models.Rating) error
	Delete(id uint) error
	Report(report *models.RatingReport) error
	HasReported(ratingID, reporterID uint) (bool, error)
}

// PropertySearchFilter collects the public search parameters. Zero values
// mean "no constraint" for every field.
type PropertySearchFilter struct {
	Query          string
	City           string
	Type           string
	Operation      string
	CategoryID     uint
	MinPrice       float64
	MaxPrice       float64
	MinBedrooms    int
	Furnished      bool
	PetsAllowed    bool
	StudentSpecial bool
	Sort           string // price_asc, price_desc, newest (default)
	Offset         int
	Limit          int
}

// LocationCount is a city or district aggregated over active listings, used
// by the search autocomplete.
type LocationCount struct {
	City     string
	District string
	Count    int64
}

// OwnerStats provides aggregated counts for a single user's dashboard.
type OwnerStats struct {
	PropertyCount int64
	ActiveCount   int64
	TotalViews    int64
	FavoriteCount int64
	PendingLeads  int64
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Property     PropertyRepository
	Favorite     FavoriteRepository
	Category     CategoryRepository
	Subscription SubscriptionRepository
	Placement    PlacementRepository
	Contact      ContactRepository
	Notification NotificationRepository
	Rating       RatingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Property:     NewPropertyRepository(db),
		Favorite:     NewFavoriteRepository(db),
		Category:     NewCategoryRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Placement:    NewPlacementRepository(db),
		Contact:      NewContactRepository(db),
		Notification: NewNotificationRepository(db),
		Rating:       NewRatingRepository(db),
	}
}
