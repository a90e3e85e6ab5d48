package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"strings"
	"time"

	"github.com/adintl/catalog-api/internal/imaging"
	"github.com/adintl/catalog-api/internal/models"
	"github.com/adintl/catalog-api/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BannerInput carries the writable banner fields for create and update
type BannerInput struct {
	Title        string
	Subtitle     string
	ButtonText   string
	LinkType     string
	ProductID    *uint
	CategoryID   *uint
	ExternalUrl  string
	Status       string
	DisplayOrder int
	IsActive     bool
	StartDate    time.Time
	EndDate      *time.Time
}

// ValidateBannerLinkType checks the cross-field link rule: the target selected
// by linkType must be present, and a linked product or category must exist and
// be active. Runs before any write and before any image upload, so invalid
// input never triggers a storage write or an orphaned upload.
func ValidateBannerLinkType(db *gorm.DB, linkType string, productID, categoryID *uint, externalUrl string) error {
	switch strings.ToLower(linkType) {
	case models.LinkTypeProduct:
		if productID == nil {
			return types.Validation("Product ID is required for product link type", "banner.linktype")
		}
		var product models.Product
		if err := db.First(&product, *productID).Error; err != nil || product.Status != models.StatusActive {
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return types.Validation("Invalid or inactive product", "banner.linktype")
		}

	case models.LinkTypeCategory:
		if categoryID == nil {
			return types.Validation("Category ID is required for category link type", "banner.linktype")
		}
		var category models.Category
		if err := db.First(&category, *categoryID).Error; err != nil || category.Status != models.StatusActive {
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return types.Validation("Invalid or inactive category", "banner.linktype")
		}

	case models.LinkTypeExternal:
		if externalUrl == "" {
			return types.Validation("External URL is required for external link type", "banner.linktype")
		}
		if u, err := url.Parse(externalUrl); err != nil || !u.IsAbs() || u.Host == "" {
			return types.Validation("Invalid external URL format", "banner.linktype")
		}

	case models.LinkTypeAllProducts:
		// no further constraint

	default:
		return types.Validation("Invalid link type. Supported types: product, category, external, all-products", "banner.linktype")
	}

	return nil
}

// CreateBanner uploads the banner image and inserts the row as one logical
// unit. The upload happens inside the storage transaction; an upload failure
// aborts the create. An image uploaded just before a failing commit is not
// cleaned up (the image store is outside the transaction's atomicity).
func CreateBanner(ctx context.Context, db *gorm.DB, images imaging.Service, input BannerInput, file *multipart.FileHeader) (*models.Banner, error) {
	if file == nil {
		return nil, types.Validation("Banner image is required", "banner.validation")
	}
	if input.Title == "" {
		return nil, types.Validation("Title is required", "banner.validation")
	}
	if err := ValidateBannerLinkType(db, input.LinkType, input.ProductID, input.CategoryID, input.ExternalUrl); err != nil {
		return nil, err
	}

	var banner models.Banner
	err := db.Transaction(func(tx *gorm.DB) error {
		upload, err := images.Upload(ctx, file)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		banner = models.Banner{
			Title:        strings.TrimSpace(input.Title),
			Subtitle:     strings.TrimSpace(input.Subtitle),
			ImageUrl:     upload.URL,
			PublicId:     upload.PublicID,
			ButtonText:   buttonTextOrDefault(input.ButtonText),
			LinkType:     input.LinkType,
			ProductID:    input.ProductID,
			CategoryID:   input.CategoryID,
			ExternalUrl:  strings.TrimSpace(input.ExternalUrl),
			Status:       statusOrDefault(input.Status),
			DisplayOrder: input.DisplayOrder,
			IsActive:     input.IsActive,
			StartDate:    input.StartDate,
			EndDate:      input.EndDate,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		return tx.Create(&banner).Error
	})
	if err != nil {
		return nil, err
	}

	// Re-read with relations: navigation references are stale after a fresh insert
	return GetBanner(db, banner.ID)
}

// UpdateBanner applies a banner update, swapping the hosted image if a new one
// is supplied. Deleting the old image is best-effort; uploading the new one is
// fatal on failure and rolls the update back.
func UpdateBanner(ctx context.Context, db *gorm.DB, images imaging.Service, id uint, input BannerInput, file *multipart.FileHeader) (*models.Banner, error) {
	if input.Title == "" {
		return nil, types.Validation("Title is required", "banner.validation")
	}
	if err := ValidateBannerLinkType(db, input.LinkType, input.ProductID, input.CategoryID, input.ExternalUrl); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var banner models.Banner
		if err := tx.First(&banner, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound(fmt.Sprintf("Banner with ID %d not found", id), "banner.notfound")
			}
			return err
		}

		if file != nil {
			if banner.PublicId != "" {
				images.Delete(ctx, banner.PublicId)
			}
			upload, err := images.Upload(ctx, file)
			if err != nil {
				return err
			}
			banner.ImageUrl = upload.URL
			banner.PublicId = upload.PublicID
		}

		banner.Title = strings.TrimSpace(input.Title)
		banner.Subtitle = strings.TrimSpace(input.Subtitle)
		banner.ButtonText = buttonTextOrDefault(input.ButtonText)
		banner.LinkType = input.LinkType
		banner.ProductID = input.ProductID
		banner.CategoryID = input.CategoryID
		banner.ExternalUrl = strings.TrimSpace(input.ExternalUrl)
		banner.Status = statusOrDefault(input.Status)
		banner.DisplayOrder = input.DisplayOrder
		banner.IsActive = input.IsActive
		banner.StartDate = input.StartDate
		banner.EndDate = input.EndDate
		banner.UpdatedAt = time.Now().UTC()

		return tx.Omit(clause.Associations).Save(&banner).Error
	})
	if err != nil {
		return nil, err
	}

	return GetBanner(db, id)
}

// DeleteBanner removes the banner row and its hosted image. The external
// delete is best-effort and cannot be undone by a rollback.
func DeleteBanner(ctx context.Context, db *gorm.DB, images imaging.Service, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var banner models.Banner
		if err := tx.First(&banner, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound(fmt.Sprintf("Banner with ID %d not found", id), "banner.notfound")
			}
			return err
		}

		if banner.PublicId != "" {
			images.Delete(ctx, banner.PublicId)
		}

		return tx.Delete(&banner).Error
	})
}

// ToggleBannerStatus flips the isActive flag and returns the new value
func ToggleBannerStatus(db *gorm.DB, id uint) (bool, error) {
	var banner models.Banner
	if err := db.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, types.NotFound(fmt.Sprintf("Banner with ID %d not found", id), "banner.notfound")
		}
		return false, err
	}

	banner.IsActive = !banner.IsActive
	banner.UpdatedAt = time.Now().UTC()

	if err := db.Omit(clause.Associations).Save(&banner).Error; err != nil {
		return false, err
	}
	return banner.IsActive, nil
}

// GetBanner loads a banner with its linked product and category
func GetBanner(db *gorm.DB, id uint) (*models.Banner, error) {
	var banner models.Banner
	if err := db.Preload("Product").Preload("Category").First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound(fmt.Sprintf("Banner with ID %d not found", id), "banner.notfound")
		}
		return nil, err
	}
	return &banner, nil
}

// ListBanners returns the admin banner listing with optional filters
func ListBanners(db *gorm.DB, status, linkType string, page, pageSize int) ([]models.Banner, int64, error) {
	query := db.Model(&models.Banner{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if linkType != "" {
		query = query.Where("link_type = ?", linkType)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var banners []models.Banner
	err := query.Preload("Product").Preload("Category").
		Order("display_order ASC").Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&banners).Error
	if err != nil {
		return nil, 0, err
	}

	return banners, totalCount, nil
}

// PublicBanners returns the currently displayable banners: active flag and
// status set, and the date window contains now
func PublicBanners(db *gorm.DB) ([]models.Banner, error) {
	now := time.Now().UTC()

	var banners []models.Banner
	err := db.Where("is_active = ? AND status = ? AND start_date <= ? AND (end_date IS NULL OR end_date >= ?)",
		true, models.StatusActive, now, now).
		Order("display_order ASC").Order("created_at DESC").
		Find(&banners).Error
	if err != nil {
		return nil, err
	}

	return banners, nil
}

func buttonTextOrDefault(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "Shop Now"
	}
	return text
}

func statusOrDefault(status string) string {
	if status == "" {
		return models.StatusActive
	}
	return status
}
