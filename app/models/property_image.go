package models

import "time"

// PropertyImage is a photo attached to a listing. Files live in the photo
// store (S3-compatible); ObjectKey addresses the original, ThumbObjectKey
// the generated thumbnail.
type PropertyImage struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	PropertyID     uint      `gorm:"not null;index" json:"property_id"`
	ObjectKey      string    `gorm:"type:varchar(255)" json:"object_key"`
	ThumbObjectKey string    `gorm:"type:varchar(255)" json:"thumb_object_key"`
	FileName       string    `gorm:"type:varchar(255)" json:"file_name"`
	FileSize       int64     `json:"file_size"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	SortOrder      int       `gorm:"default:0" json:"sort_order"`
	IsMain         bool      `gorm:"default:false" json:"is_main"`
	UploadedAt     time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
