package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/adintl/catalog-api/internal/models"
	"github.com/adintl/catalog-api/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MetaDataInput carries the writable business-information fields. Pointer
// fields distinguish "not supplied" from zero values on partial updates.
type MetaDataInput struct {
	CompanyName         string            `json:"companyName"`
	Address             string            `json:"address"`
	Phone               string            `json:"phone"`
	Email               string            `json:"email"`
	Hours               string            `json:"hours"`
	Latitude            *float64          `json:"latitude"`
	Longitude           *float64          `json:"longitude"`
	MapEmbedUrl         string            `json:"mapEmbedUrl"`
	LocationDescription *string           `json:"locationDescription"`
	SocialLinks         map[string]string `json:"socialLinks"`
}

// CreateMetaData inserts a business-information row
func CreateMetaData(db *gorm.DB, input MetaDataInput) (*models.MetaData, error) {
	if input.CompanyName == "" || input.Address == "" || input.Phone == "" || input.Email == "" || input.Hours == "" {
		return nil, types.Validation("Company name, address, phone, email and hours are required", "metadata.validation")
	}
	if input.Latitude == nil || input.Longitude == nil {
		return nil, types.Validation("Latitude and longitude are required", "metadata.validation")
	}
	if err := validateCoordinates(*input.Latitude, *input.Longitude); err != nil {
		return nil, err
	}

	meta := models.MetaData{
		CompanyName: input.CompanyName,
		Address:     input.Address,
		Phone:       input.Phone,
		Email:       input.Email,
		Hours:       input.Hours,
		Latitude:    *input.Latitude,
		Longitude:   *input.Longitude,
		MapEmbedUrl: input.MapEmbedUrl,
		CreatedAt:   time.Now().UTC(),
	}
	if input.LocationDescription != nil {
		meta.LocationDescription = *input.LocationDescription
	}
	if len(input.SocialLinks) > 0 {
		links, err := socialLinksColumn(input.SocialLinks)
		if err != nil {
			return nil, err
		}
		meta.SocialLinks = links
	}

	if err := db.Create(&meta).Error; err != nil {
		return nil, err
	}
	return &meta, nil
}

// UpdateMetaData applies a partial update: only supplied fields change
func UpdateMetaData(db *gorm.DB, id uint, input MetaDataInput) error {
	var meta models.MetaData
	if err := db.First(&meta, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NotFound("Business information not found.", "metadata.notfound")
		}
		return err
	}

	if input.CompanyName != "" {
		meta.CompanyName = input.CompanyName
	}
	if input.Address != "" {
		meta.Address = input.Address
	}
	if input.Phone != "" {
		meta.Phone = input.Phone
	}
	if input.Email != "" {
		meta.Email = input.Email
	}
	if input.Hours != "" {
		meta.Hours = input.Hours
	}
	if input.Latitude != nil {
		meta.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		meta.Longitude = *input.Longitude
	}
	if err := validateCoordinates(meta.Latitude, meta.Longitude); err != nil {
		return err
	}
	if input.MapEmbedUrl != "" {
		meta.MapEmbedUrl = input.MapEmbedUrl
	}
	if input.LocationDescription != nil {
		meta.LocationDescription = *input.LocationDescription
	}
	if input.SocialLinks != nil {
		links, err := socialLinksColumn(input.SocialLinks)
		if err != nil {
			return err
		}
		meta.SocialLinks = links
	}

	now := time.Now().UTC()
	meta.UpdatedAt = &now

	return db.Save(&meta).Error
}

// DeleteMetaData removes a business-information row
func DeleteMetaData(db *gorm.DB, id uint) error {
	var meta models.MetaData
	if err := db.First(&meta, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NotFound("Business information not found.", "metadata.notfound")
		}
		return err
	}
	return db.Delete(&meta).Error
}

// GetMetaData loads one business-information row by id
func GetMetaData(db *gorm.DB, id uint) (*models.MetaData, error) {
	var meta models.MetaData
	if err := db.First(&meta, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("Business information not found.", "metadata.notfound")
		}
		return nil, err
	}
	return &meta, nil
}

// ListMetaData returns every business-information row
func ListMetaData(db *gorm.DB) ([]models.MetaData, error) {
	var rows []models.MetaData
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CurrentMetaData returns the most recently touched row, preferring
// updatedAt and falling back to createdAt
func CurrentMetaData(db *gorm.DB) (*models.MetaData, error) {
	var meta models.MetaData
	err := db.Order("COALESCE(updated_at, created_at) DESC").First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("Business information not configured.", "metadata.notfound")
		}
		return nil, err
	}
	return &meta, nil
}

func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return types.Validation("Latitude must be between -90 and 90", "metadata.validation")
	}
	if lng < -180 || lng > 180 {
		return types.Validation("Longitude must be between -180 and 180", "metadata.validation")
	}
	return nil
}

func socialLinksColumn(links map[string]string) (models.JSON, error) {
	b, err := json.Marshal(links)
	if err != nil {
		return models.JSON{}, err
	}
	return models.JSON{JSON: datatypes.JSON(b)}, nil
}
