package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PropertyStatusActive    = "active"
	PropertyStatusSuspended = "suspended"
	PropertyStatusRented    = "rented"
	PropertyStatusInactive  = "inactive"
)

const (
	PropertyTypeApartment  = "apartment"
	PropertyTypeHouse      = "house"
	PropertyTypeRoom       = "room"
	PropertyTypeCommercial = "commercial"
	PropertyTypeLand       = "land"
	PropertyTypeOffice     = "office"
)

const (
	OperationRent = "rent"
	OperationSale = "sale"
)

const (
	ContactTypeDirectOwner = "direct_owner"
	ContactTypeAgency      = "agency"
)

// QuotaSuspensionMarker tags suspension reasons written by the listing quota
// reconciliation, as opposed to manual suspensions. Only reasons carrying
// this marker may be reverted automatically.
const QuotaSuspensionMarker = "subscription"

type Property struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UUID       string    `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	OwnerID    uint      `gorm:"not null;index" json:"owner_id"`
	Owner      User      `gorm:"foreignKey:OwnerID" json:"-"`
	CategoryID *uint     `gorm:"index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Title       string  `gorm:"type:varchar(200)" json:"title" validate:"required,max=200"`
	Description string  `gorm:"type:text" json:"description" validate:"required"`
	Type        string  `gorm:"type:varchar(20)" json:"type" validate:"oneof=apartment house room commercial land office"`
	Operation   string  `gorm:"type:varchar(20);default:'rent'" json:"operation" validate:"oneof=rent sale"`
	Price       float64 `gorm:"type:decimal(10,2)" json:"price" validate:"gte=0"`
	FeesIncluded bool   `gorm:"default:false" json:"fees_included"`
	ContactType string  `gorm:"type:varchar(20);default:'direct_owner'" json:"contact_type"`

	City      string   `gorm:"type:varchar(100);index" json:"city" validate:"required,max=100"`
	District  string   `gorm:"type:varchar(100)" json:"district" validate:"max=100"`
	Address   string   `gorm:"type:varchar(255)" json:"address" validate:"max=255"`
	Latitude  *float64 `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude *float64 `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`

	AreaM2    float64 `gorm:"type:decimal(10,2)" json:"area_m2" validate:"gte=0"`
	Bedrooms  int     `gorm:"default:1" json:"bedrooms" validate:"gte=0"`
	Bathrooms int     `gorm:"default:1" json:"bathrooms" validate:"gte=0"`
	Parking   bool    `gorm:"default:false" json:"parking"`
	Furnished bool    `gorm:"default:false" json:"furnished"`
	PetsAllowed bool  `gorm:"default:false" json:"pets_allowed"`
	Floor     *int    `json:"floor,omitempty"`

	Balcony         bool `gorm:"default:false" json:"balcony"`
	Garden          bool `gorm:"default:false" json:"garden"`
	Grill           bool `gorm:"default:false" json:"grill"`
	AirConditioning bool `gorm:"default:false" json:"air_conditioning"`
	Heating         bool `gorm:"default:false" json:"heating"`
	Elevator        bool `gorm:"default:false" json:"elevator"`
	Security        bool `gorm:"default:false" json:"security"`
	Amenities       bool `gorm:"default:false" json:"amenities"`
	Accessible      bool `gorm:"default:false" json:"accessible"`

	Status           string `gorm:"type:varchar(20);default:'active';index" json:"status" validate:"oneof=active suspended rented inactive"`
	SuspensionReason string `gorm:"type:varchar(255)" json:"suspension_reason"`
	ViewCount        int    `gorm:"default:0" json:"view_count"`
	StudentSpecial   bool   `gorm:"default:false" json:"student_special"`

	PublishedAt time.Time      `gorm:"autoCreateTime;index" json:"published_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	ExpiresAt   *time.Time     `gorm:"type:timestamp;default:null" json:"expires_at,omitempty"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Images     []PropertyImage     `gorm:"foreignKey:PropertyID" json:"images,omitempty"`
	Ratings    []Rating            `gorm:"foreignKey:PropertyID" json:"-"`
	Placements []FeaturedPlacement `gorm:"foreignKey:PropertyID" json:"-"`
}

func (p *Property) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// BeforeCreate assigns the public identifier.
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}

// IsActive reports whether the listing is publicly visible.
func (p *Property) IsActive() bool {
	return p.Status == PropertyStatusActive
}

// IsQuotaSuspended reports whether the listing was suspended by quota
// reconciliation rather than by hand. Manual suspensions carry an empty or
// free-form reason without the marker and are never reverted automatically.
func (p *Property) IsQuotaSuspended() bool {
	return p.Status == PropertyStatusSuspended &&
		strings.Contains(p.SuspensionReason, QuotaSuspensionMarker)
}

// IncrementViewCount bumps the listing's view counter in place.
func (p *Property) IncrementViewCount(db *gorm.DB) error {
	p.ViewCount++
	return db.Model(p).Update("view_count", p.ViewCount).Error
}

// MainImage returns the primary image, or nil if none is uploaded yet.
func (p *Property) MainImage() *PropertyImage {
	for i := range p.Images {
		if p.Images[i].IsMain {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

// AvgRating returns the mean overall score across all ratings, or 0.
func (p *Property) AvgRating() float64 {
	if len(p.Ratings) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range p.Ratings {
		total += r.OverallAvg()
	}
	return total / float64(len(p.Ratings))
}

// CurrentPlacement returns the most recently purchased placement that is
// still valid at the given time, or nil.
func (p *Property) CurrentPlacement(now time.Time) *FeaturedPlacement {
	var best *FeaturedPlacement
	for i := range p.Placements {
		fp := &p.Placements[i]
		if !fp.IsCurrent(now) {
			continue
		}
		if best == nil || fp.PurchasedAt.After(best.PurchasedAt) {
			best = fp
		}
	}
	return best
}
