package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/adintl/catalog-api/internal/models"
	"github.com/adintl/catalog-api/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryInput carries the writable category fields
type CategoryInput struct {
	Name        string
	Description string
	Status      string
}

// CreateCategory inserts a category after the case-insensitive name
// uniqueness check
func CreateCategory(db *gorm.DB, input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, types.Validation("Name is required", "category.validation")
	}

	if err := requireUniqueName(db, name, 0); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := models.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Status:      statusOrDefault(input.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory applies scalar updates, re-checking name uniqueness against
// every other category
func UpdateCategory(db *gorm.DB, id uint, input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, types.Validation("Name is required", "category.validation")
	}

	var category models.Category
	if err := db.Preload("Products").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound(fmt.Sprintf("Category with ID %d not found", id), "category.notfound")
		}
		return nil, err
	}

	if err := requireUniqueName(db, name, id); err != nil {
		return nil, err
	}

	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	category.Status = statusOrDefault(input.Status)
	category.UpdatedAt = time.Now().UTC()

	if err := db.Omit(clause.Associations).Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes an empty category. A category that still owns
// products is never deleted.
func DeleteCategory(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Preload("Products").First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound(fmt.Sprintf("Category with ID %d not found", id), "category.notfound")
			}
			return err
		}

		if len(category.Products) > 0 {
			return types.Validation("Cannot delete category that contains products. Please move or delete all products first.", "category.nonempty")
		}

		return tx.Delete(&category).Error
	})
}

// UpdateCategoryStatus patches the status; deactivation is blocked while any
// owned product is still active
func UpdateCategoryStatus(db *gorm.DB, id uint, status string) (*models.Category, error) {
	if status == "" {
		return nil, types.Validation("Status is required", "category.validation")
	}
	status = strings.ToLower(status)
	if status != models.StatusActive && status != models.StatusInactive {
		return nil, types.Validation("Status must be either 'active' or 'inactive'", "category.validation")
	}

	var category models.Category
	if err := db.Preload("Products").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound(fmt.Sprintf("Category with ID %d not found", id), "category.notfound")
		}
		return nil, err
	}

	if status == models.StatusInactive {
		for _, p := range category.Products {
			if p.Status == models.StatusActive {
				return nil, types.Validation("Cannot deactivate category that contains active products. Please deactivate all products first.", "category.activeproducts")
			}
		}
	}

	category.Status = status
	category.UpdatedAt = time.Now().UTC()

	if err := db.Omit(clause.Associations).Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategory loads a category with its products
func GetCategory(db *gorm.DB, id uint) (*models.Category, error) {
	var category models.Category
	if err := db.Preload("Products").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound(fmt.Sprintf("Category with ID %d not found", id), "category.notfound")
		}
		return nil, err
	}
	return &category, nil
}

// ListCategories returns the paginated category listing, ordered by name
func ListCategories(db *gorm.DB, search, status string, page, pageSize int) ([]models.Category, int64, error) {
	query := db.Model(&models.Category{})

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var categories []models.Category
	err := query.Preload("Products").
		Order("name ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}

	return categories, totalCount, nil
}

// TopCategory is one entry of the stats leaderboard
type TopCategory struct {
	Name         string `json:"name"`
	ProductCount int    `json:"productCount"`
}

// CategoryStats summarizes the category inventory
type CategoryStats struct {
	TotalCategories        int64         `json:"totalCategories"`
	ActiveCategories       int64         `json:"activeCategories"`
	CategoriesWithProducts int64         `json:"categoriesWithProducts"`
	TopCategories          []TopCategory `json:"topCategories"`
}

// GetCategoryStats counts categories and ranks the top five active ones by
// product count
func GetCategoryStats(db *gorm.DB) (*CategoryStats, error) {
	stats := &CategoryStats{TopCategories: []TopCategory{}}

	if err := db.Model(&models.Category{}).Count(&stats.TotalCategories).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Category{}).Where("status = ?", models.StatusActive).Count(&stats.ActiveCategories).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Category{}).
		Where("EXISTS (SELECT 1 FROM products WHERE products.category_id = categories.id)").
		Count(&stats.CategoriesWithProducts).Error; err != nil {
		return nil, err
	}

	var active []models.Category
	if err := db.Preload("Products").Where("status = ?", models.StatusActive).Find(&active).Error; err != nil {
		return nil, err
	}
	sort.SliceStable(active, func(i, j int) bool {
		return len(active[i].Products) > len(active[j].Products)
	})
	for i, c := range active {
		if i == 5 {
			break
		}
		stats.TopCategories = append(stats.TopCategories, TopCategory{Name: c.Name, ProductCount: len(c.Products)})
	}

	return stats, nil
}

func requireUniqueName(db *gorm.DB, name string, excludeID uint) error {
	var existing models.Category
	query := db.Where("LOWER(name) = ?", strings.ToLower(name))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.First(&existing).Error; err == nil {
		return types.Validation("A category with this name already exists", "category.duplicate")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
