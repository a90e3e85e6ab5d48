package handlers

import (
	"encoding/json"
	"time"

	"github.com/adintl/catalog-api/internal/models"
)

// View DTOs: one canonical entity representation per endpoint family, built
// by narrow mapping functions instead of per-endpoint field lists.

// CategoryDTO is the category projection for list, detail and write responses
type CategoryDTO struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	ProductCount int       `json:"productCount"`
}

func toCategoryDTO(c *models.Category) CategoryDTO {
	return CategoryDTO{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
		ProductCount: len(c.Products),
	}
}

// ProductImageDTO is the owned-image projection inside product responses
type ProductImageDTO struct {
	ID        uint      `json:"id"`
	ImageUrl  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductListDTO is the compact product projection for the listing endpoint
type ProductListDTO struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CategoryID   uint      `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Status       string    `json:"status"`
	Standards    string    `json:"standards,omitempty"`
	IsHot        bool      `json:"isHot"`
	CreatedAt    time.Time `json:"createdAt"`
	ImageCount   int       `json:"imageCount"`
}

func toProductListDTO(p *models.Product) ProductListDTO {
	dto := ProductListDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Status:      p.Status,
		Standards:   p.Standards,
		IsHot:       p.IsHot,
		CreatedAt:   p.CreatedAt,
		ImageCount:  len(p.Images),
	}
	if p.Category != nil {
		dto.CategoryName = p.Category.Name
	}
	return dto
}

// ProductResponseDTO is the full product projection for detail and write responses
type ProductResponseDTO struct {
	ID             uint              `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	CategoryID     uint              `json:"categoryId"`
	CategoryName   string            `json:"categoryName"`
	Specifications string            `json:"specifications,omitempty"`
	Status         string            `json:"status"`
	Standards      string            `json:"standards,omitempty"`
	IsHot          bool              `json:"isHot"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	Images         []ProductImageDTO `json:"images"`
}

func toProductResponseDTO(p *models.Product) ProductResponseDTO {
	dto := ProductResponseDTO{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		CategoryID:     p.CategoryID,
		Specifications: p.Specifications,
		Status:         p.Status,
		Standards:      p.Standards,
		IsHot:          p.IsHot,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Images:         make([]ProductImageDTO, 0, len(p.Images)),
	}
	if p.Category != nil {
		dto.CategoryName = p.Category.Name
	}
	for _, img := range p.Images {
		dto.Images = append(dto.Images, ProductImageDTO{
			ID:        img.ID,
			ImageUrl:  img.ImageUrl,
			CreatedAt: img.CreatedAt,
		})
	}
	return dto
}

// BannerResponseDTO is the admin banner projection for detail and write responses
type BannerResponseDTO struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Subtitle     string     `json:"subtitle,omitempty"`
	ImageUrl     string     `json:"imageUrl"`
	ButtonText   string     `json:"buttonText"`
	LinkType     string     `json:"linkType"`
	ProductID    *uint      `json:"productId"`
	ProductName  string     `json:"productName,omitempty"`
	CategoryID   *uint      `json:"categoryId"`
	CategoryName string     `json:"categoryName,omitempty"`
	ExternalUrl  string     `json:"externalUrl,omitempty"`
	Status       string     `json:"status"`
	DisplayOrder int        `json:"displayOrder"`
	IsActive     bool       `json:"isActive"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func toBannerResponseDTO(b *models.Banner) BannerResponseDTO {
	dto := BannerResponseDTO{
		ID:           b.ID,
		Title:        b.Title,
		Subtitle:     b.Subtitle,
		ImageUrl:     b.ImageUrl,
		ButtonText:   b.ButtonText,
		LinkType:     b.LinkType,
		ProductID:    b.ProductID,
		CategoryID:   b.CategoryID,
		ExternalUrl:  b.ExternalUrl,
		Status:       b.Status,
		DisplayOrder: b.DisplayOrder,
		IsActive:     b.IsActive,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
	if b.Product != nil {
		dto.ProductName = b.Product.Name
	}
	if b.Category != nil {
		dto.CategoryName = b.Category.Name
	}
	return dto
}

// PublicBannerDTO is the anonymous storefront banner projection
type PublicBannerDTO struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle,omitempty"`
	ImageUrl     string `json:"imageUrl"`
	ButtonText   string `json:"buttonText"`
	LinkType     string `json:"linkType"`
	ProductID    *uint  `json:"productId"`
	CategoryID   *uint  `json:"categoryId"`
	ExternalUrl  string `json:"externalUrl,omitempty"`
	DisplayOrder int    `json:"displayOrder"`
}

func toPublicBannerDTO(b *models.Banner) PublicBannerDTO {
	return PublicBannerDTO{
		ID:           b.ID,
		Title:        b.Title,
		Subtitle:     b.Subtitle,
		ImageUrl:     b.ImageUrl,
		ButtonText:   b.ButtonText,
		LinkType:     b.LinkType,
		ProductID:    b.ProductID,
		CategoryID:   b.CategoryID,
		ExternalUrl:  b.ExternalUrl,
		DisplayOrder: b.DisplayOrder,
	}
}

// CoordinatesDTO is the lat/lng pair inside metadata projections
type CoordinatesDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MetaDataDTO is the full admin business-information projection
type MetaDataDTO struct {
	ID                  uint              `json:"id"`
	CompanyName         string            `json:"companyName"`
	Address             string            `json:"address"`
	Phone               string            `json:"phone"`
	Email               string            `json:"email"`
	Hours               string            `json:"hours"`
	Latitude            float64           `json:"latitude"`
	Longitude           float64           `json:"longitude"`
	MapEmbedUrl         string            `json:"mapEmbedUrl"`
	LocationDescription string            `json:"locationDescription,omitempty"`
	SocialLinks         map[string]string `json:"socialLinks,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           *time.Time        `json:"updatedAt"`
	DirectionsUrl       string            `json:"directionsUrl"`
	PhoneCallUrl        string            `json:"phoneCallUrl"`
	EmailUrl            string            `json:"emailUrl"`
}

func toMetaDataDTO(m *models.MetaData) MetaDataDTO {
	return MetaDataDTO{
		ID:                  m.ID,
		CompanyName:         m.CompanyName,
		Address:             m.Address,
		Phone:               m.Phone,
		Email:               m.Email,
		Hours:               m.Hours,
		Latitude:            m.Latitude,
		Longitude:           m.Longitude,
		MapEmbedUrl:         m.MapEmbedUrl,
		LocationDescription: m.LocationDescription,
		SocialLinks:         socialLinksMap(m),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		DirectionsUrl:       m.DirectionsURL(),
		PhoneCallUrl:        m.PhoneCallURL(),
		EmailUrl:            m.EmailURL(),
	}
}

// PublicMetaDataDTO is the anonymous storefront business-information projection
type PublicMetaDataDTO struct {
	Name                string            `json:"name"`
	Address             string            `json:"address"`
	Phone               string            `json:"phone"`
	Email               string            `json:"email"`
	Hours               string            `json:"hours"`
	Coordinates         CoordinatesDTO    `json:"coordinates"`
	MapEmbedUrl         string            `json:"mapEmbedUrl"`
	LocationDescription string            `json:"locationDescription,omitempty"`
	SocialLinks         map[string]string `json:"socialLinks,omitempty"`
	DirectionsUrl       string            `json:"directionsUrl"`
	PhoneCallUrl        string            `json:"phoneCallUrl"`
	EmailUrl            string            `json:"emailUrl"`
}

func toPublicMetaDataDTO(m *models.MetaData) PublicMetaDataDTO {
	return PublicMetaDataDTO{
		Name:                m.CompanyName,
		Address:             m.Address,
		Phone:               m.Phone,
		Email:               m.Email,
		Hours:               m.Hours,
		Coordinates:         CoordinatesDTO{Lat: m.Latitude, Lng: m.Longitude},
		MapEmbedUrl:         m.MapEmbedUrl,
		LocationDescription: m.LocationDescription,
		SocialLinks:         socialLinksMap(m),
		DirectionsUrl:       m.DirectionsURL(),
		PhoneCallUrl:        m.PhoneCallURL(),
		EmailUrl:            m.EmailURL(),
	}
}

func socialLinksMap(m *models.MetaData) map[string]string {
	if len(m.SocialLinks.JSON) == 0 {
		return nil
	}
	var links map[string]string
	if err := json.Unmarshal(m.SocialLinks.JSON, &links); err != nil {
		return nil
	}
	return links
}
