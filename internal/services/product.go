package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/adintl/catalog-api/internal/imaging"
	"github.com/adintl/catalog-api/internal/models"
	"github.com/adintl/catalog-api/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// ProductInput carries the writable product fields for create and update
type ProductInput struct {
	Name           string
	Description    string
	CategoryID     uint
	Specifications string
	Status         string
	Standards      string
	IsHot          bool
}

// requireActiveCategory re-validates the category reference at write time: the
// row existing is necessary but not sufficient, it must also be active
func requireActiveCategory(db *gorm.DB, categoryID uint) error {
	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil || category.Status != models.StatusActive {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return types.Validation("Invalid or inactive category", "product.category")
	}
	return nil
}

// CreateProduct inserts a product and uploads its images inside one storage
// transaction. A single image's upload failure is logged and that image
// skipped; it is not fatal to the operation.
func CreateProduct(ctx context.Context, db *gorm.DB, images imaging.Service, input ProductInput, files []*multipart.FileHeader) (*models.Product, error) {
	if input.Name == "" || input.Description == "" {
		return nil, types.Validation("Name and description are required", "product.validation")
	}
	if len(files) > models.MaxProductImages {
		return nil, types.Validation(fmt.Sprintf("Maximum %d images allowed per product", models.MaxProductImages), "product.images")
	}

	var product models.Product
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := requireActiveCategory(tx, input.CategoryID); err != nil {
			return err
		}

		now := time.Now().UTC()
		product = models.Product{
			Name:           strings.TrimSpace(input.Name),
			Description:    strings.TrimSpace(input.Description),
			CategoryID:     input.CategoryID,
			Specifications: strings.TrimSpace(input.Specifications),
			Status:         statusOrDefault(input.Status),
			Standards:      strings.TrimSpace(input.Standards),
			IsHot:          input.IsHot,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.Create(&product).Error; err != nil {
			return err
		}

		if len(files) > 0 {
			uploads, err := imaging.UploadMany(ctx, images, files)
			if err != nil {
				return err
			}
			if len(uploads) > 0 {
				rows := productImageRows(product.ID, uploads)
				if err := tx.Create(&rows).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetProduct(db, product.ID)
}

// UpdateProduct applies scalar updates, removes the images marked for
// removal (external delete is best-effort) and accepts new images up to the
// remaining slots under the cap. An over-cap request is rejected before any
// upload call is made.
func UpdateProduct(ctx context.Context, db *gorm.DB, images imaging.Service, id uint, input ProductInput, removeImageIds []uint, newFiles []*multipart.FileHeader) (*models.Product, error) {
	if input.Name == "" || input.Description == "" {
		return nil, types.Validation("Name and description are required", "product.validation")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Preload("Images").First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound(fmt.Sprintf("Product with ID %d not found", id), "product.notfound")
			}
			return err
		}

		if err := requireActiveCategory(tx, input.CategoryID); err != nil {
			return err
		}

		product.Name = strings.TrimSpace(input.Name)
		product.Description = strings.TrimSpace(input.Description)
		product.CategoryID = input.CategoryID
		product.Specifications = strings.TrimSpace(input.Specifications)
		product.Status = statusOrDefault(input.Status)
		product.Standards = strings.TrimSpace(input.Standards)
		product.IsHot = input.IsHot
		product.UpdatedAt = time.Now().UTC()

		removed := 0
		if len(removeImageIds) > 0 {
			for _, img := range product.Images {
				if !containsID(removeImageIds, img.ID) {
					continue
				}
				images.Delete(ctx, img.PublicId)
				if err := tx.Delete(&models.ProductImage{}, img.ID).Error; err != nil {
					return err
				}
				removed++
			}
		}

		if len(newFiles) > 0 {
			currentCount := len(product.Images) - removed
			maxNew := models.MaxProductImages - currentCount
			if len(newFiles) > maxNew {
				return types.Validation(
					fmt.Sprintf("Cannot add %d images. Maximum %d more images allowed.", len(newFiles), maxNew),
					"product.images")
			}

			uploads, err := imaging.UploadMany(ctx, images, newFiles)
			if err != nil {
				return err
			}
			if len(uploads) > 0 {
				rows := productImageRows(product.ID, uploads)
				if err := tx.Create(&rows).Error; err != nil {
					return err
				}
			}
		}

		return tx.Omit(clause.Associations).Save(&product).Error
	})
	if err != nil {
		return nil, err
	}

	return GetProduct(db, id)
}

// DeleteProduct removes the product, its image rows and its hosted images.
// External deletes are best-effort and the loop continues past failures.
func DeleteProduct(ctx context.Context, db *gorm.DB, images imaging.Service, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Preload("Images").First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound(fmt.Sprintf("Product with ID %d not found", id), "product.notfound")
			}
			return err
		}

		for _, img := range product.Images {
			if !images.Delete(ctx, img.PublicId) {
				log.Printf("Failed to delete image %s for product %d", img.PublicId, id)
			}
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}

// GetProduct loads a product with its category and images
func GetProduct(db *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := db.Preload("Images").Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound(fmt.Sprintf("Product with ID %d not found", id), "product.notfound")
		}
		return nil, err
	}
	return &product, nil
}

// ListProducts returns the paginated product listing with optional filters.
// Search covers product name, description and category name.
func ListProducts(db *gorm.DB, search string, categoryID *uint, status string, page, pageSize int) ([]models.Product, int64, error) {
	query := db.Model(&models.Product{}).Joins("Category")

	if db.Dialector.Name() == "mysql" {
		query = query.Clauses(hints.New("MAX_EXECUTION_TIME(5000)"))
	}

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("products.name LIKE ? OR products.description LIKE ? OR Category.name LIKE ?",
			pattern, pattern, pattern)
	}
	if categoryID != nil {
		query = query.Where("products.category_id = ?", *categoryID)
	}
	if status != "" {
		query = query.Where("products.status = ?", status)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := query.Preload("Images").
		Order("products.created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	return products, totalCount, nil
}

// ActiveCategoryRef is the lookup projection for the product form
type ActiveCategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ActiveCategories returns the active categories as id/name pairs
func ActiveCategories(db *gorm.DB) ([]ActiveCategoryRef, error) {
	var refs []ActiveCategoryRef
	err := db.Model(&models.Category{}).
		Where("status = ?", models.StatusActive).
		Order("name ASC").
		Select("id", "name").
		Find(&refs).Error
	return refs, err
}

// ProductStats summarizes the product inventory
type ProductStats struct {
	TotalProducts  int64 `json:"totalProducts"`
	ActiveProducts int64 `json:"activeProducts"`
	Categories     int64 `json:"categories"`
}

// GetProductStats counts products overall, active products and active categories
func GetProductStats(db *gorm.DB) (*ProductStats, error) {
	var stats ProductStats

	if err := db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).Where("status = ?", models.StatusActive).Count(&stats.ActiveProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Category{}).Where("status = ?", models.StatusActive).Count(&stats.Categories).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func productImageRows(productID uint, uploads []imaging.UploadResult) []models.ProductImage {
	now := time.Now().UTC()
	rows := make([]models.ProductImage, 0, len(uploads))
	for _, u := range uploads {
		rows = append(rows, models.ProductImage{
			ProductID: productID,
			ImageUrl:  u.URL,
			PublicId:  u.PublicID,
			CreatedAt: now,
		})
	}
	return rows
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
