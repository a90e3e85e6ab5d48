package models

import (
	"fmt"
	"time"
)

// MetaData holds the business contact information shown on the storefront.
// Usually a single row; readers take the most recently updated one.
type MetaData struct {
	ID                  uint    `gorm:"primaryKey;autoIncrement"`
	CompanyName         string  `gorm:"size:250;not null"`
	Address             string  `gorm:"size:500;not null"`
	Phone               string  `gorm:"size:20;not null"`
	Email               string  `gorm:"size:100;not null"`
	Hours               string  `gorm:"size:200;not null"`
	Latitude            float64 `gorm:"not null"`
	Longitude           float64 `gorm:"not null"`
	MapEmbedUrl         string  `gorm:"size:2000;not null"`
	LocationDescription string  `gorm:"size:500"`
	SocialLinks         JSON    `gorm:"type:json"`
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

// TableName overrides gorm's default pluralization ("meta_data" is already plural)
func (MetaData) TableName() string {
	return "meta_data"
}

// DirectionsURL derives a Google Maps directions link from the stored coordinates
func (m *MetaData) DirectionsURL() string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%v,%v", m.Latitude, m.Longitude)
}

// PhoneCallURL derives a tel: link from the stored phone number
func (m *MetaData) PhoneCallURL() string {
	return "tel:" + m.Phone
}

// EmailURL derives a mailto: link from the stored email address
func (m *MetaData) EmailURL() string {
	return "mailto:" + m.Email
}
