package models

import (
	"time"
)

// Entity status values used by Category, Product and Banner
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Category groups products; deletion is blocked while products remain
type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:100;not null;index"`
	Description string `gorm:"size:500"`
	Status      string `gorm:"size:20;not null;default:active;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Products    []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// Product belongs to a Category and owns up to MaxProductImages images
type Product struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	Name           string `gorm:"size:200;not null;index"`
	Description    string `gorm:"size:1000;not null"`
	CategoryID     uint   `gorm:"not null;index"`
	Category       *Category
	Specifications string `gorm:"size:2000"`
	Status         string `gorm:"size:20;not null;default:active;index"`
	Standards      string `gorm:"size:500"`
	IsHot          bool   `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Images         []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// MaxProductImages caps the images owned by a single product, enforced at write time
const MaxProductImages = 7

// ProductImage is a hosted image owned by a product. PublicId is the opaque
// handle the image host needs to delete the upload later.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	ProductID uint   `gorm:"not null;index"`
	ImageUrl  string `gorm:"size:500;not null"`
	PublicId  string `gorm:"size:100;not null"`
	CreatedAt time.Time
}

// Banner link types; exactly one of ProductID/CategoryID/ExternalUrl is
// meaningful, selected by LinkType
const (
	LinkTypeProduct     = "product"
	LinkTypeCategory    = "category"
	LinkTypeExternal    = "external"
	LinkTypeAllProducts = "all-products"
)

// Banner is a promotional banner shown on the storefront within its date window
type Banner struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Title        string `gorm:"size:200;not null"`
	Subtitle     string `gorm:"size:500"`
	ImageUrl     string `gorm:"size:500;not null"`
	PublicId     string `gorm:"size:100"`
	ButtonText   string `gorm:"size:50;default:Shop Now"`
	LinkType     string `gorm:"size:20;default:product"`
	ProductID    *uint
	CategoryID   *uint
	ExternalUrl  string `gorm:"size:500"`
	Status       string `gorm:"size:20;not null;default:active"`
	DisplayOrder int    `gorm:"not null;default:0"`
	IsActive     bool   `gorm:"not null;default:true"`
	StartDate    time.Time
	EndDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Product      *Product  `gorm:"constraint:OnDelete:SET NULL"`
	Category     *Category `gorm:"constraint:OnDelete:SET NULL"`
}
