package services_test

import (
	"errors"
	"testing"

	"github.com/adintl/catalog-api/internal/models"
	"github.com/adintl/catalog-api/internal/services"
	"github.com/adintl/catalog-api/internal/types"
)

func TestCreateCategoryDuplicateNameCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.CreateCategory(db, services.CategoryInput{Name: "Steel"}); err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	_, err := services.CreateCategory(db, services.CategoryInput{Name: "  sTeEl  "})
	if err == nil {
		t.Fatal("Expected duplicate name to be rejected")
	}
	var ce *types.CustomError
	if !errors.As(err, &ce) || ce.Message != "A category with this name already exists" {
		t.Errorf("Unexpected error: %v", err)
	}

	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 category, got %d", count)
	}
}

func TestCreateCategoryDefaultsStatusActive(t *testing.T) {
	db := setupTestDB(t)

	category, err := services.CreateCategory(db, services.CategoryInput{Name: "Rod"})
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	if category.Status != models.StatusActive {
		t.Errorf("Expected status %q, got %q", models.StatusActive, category.Status)
	}
}

func TestUpdateCategoryNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.UpdateCategory(db, 42, services.CategoryInput{Name: "Steel"})
	var ce *types.CustomError
	if !errors.As(err, &ce) || ce.Code != 404 {
		t.Fatalf("Expected 404, got %v", err)
	}
}

func TestUpdateCategoryAllowsKeepingOwnName(t *testing.T) {
	db := setupTestDB(t)

	category := seedCategory(t, db, "Steel", models.StatusActive)

	updated, err := services.UpdateCategory(db, category.ID, services.CategoryInput{
		Name:        "Steel",
		Description: "structural steel",
	})
	if err != nil {
		t.Fatalf("Failed to update category: %v", err)
	}
	if updated.Description != "structural steel" {
		t.Errorf("Description not applied: %q", updated.Description)
	}
}

func TestDeleteCategoryWithProductsBlocked(t *testing.T) {
	db := setupTestDB(t)

	category := seedCategory(t, db, "Steel", models.StatusActive)
	seedProduct(t, db, category.ID, "Rebar", models.StatusActive)

	err := services.DeleteCategory(db, category.ID)
	var ce *types.CustomError
	if !errors.As(err, &ce) || ce.Code != 400 {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if ce.Message != "Cannot delete category that contains products. Please move or delete all products first." {
		t.Errorf("Unexpected message: %q", ce.Message)
	}

	// The category row must survive the refused delete
	if _, err := services.GetCategory(db, category.ID); err != nil {
		t.Errorf("Category should still exist: %v", err)
	}
}

func TestDeleteEmptyCategory(t *testing.T) {
	db := setupTestDB(t)

	category := seedCategory(t, db, "Steel", models.StatusActive)

	if err := services.DeleteCategory(db, category.ID); err != nil {
		t.Fatalf("Failed to delete category: %v", err)
	}
	if _, err := services.GetCategory(db, category.ID); err == nil {
		t.Error("Category should be gone")
	}
}

func TestUpdateCategoryStatusValidation(t *testing.T) {
	db := setupTestDB(t)

	category := seedCategory(t, db, "Steel", models.StatusActive)

	if _, err := services.UpdateCategoryStatus(db, category.ID, ""); err == nil {
		t.Error("Expected empty status to be rejected")
	}
	if _, err := services.UpdateCategoryStatus(db, category.ID, "archived"); err == nil {
		t.Error("Expected unknown status to be rejected")
	}
}

func TestDeactivateCategoryWithActiveProductsBlocked(t *testing.T) {
	db := setupTestDB(t)

	category := seedCategory(t, db, "Steel", models.StatusActive)
	seedProduct(t, db, category.ID, "Rebar", models.StatusActive)

	_, err := services.UpdateCategoryStatus(db, category.ID, models.StatusInactive)
	var ce *types.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if ce.Message != "Cannot deactivate category that contains active products. Please deactivate all products first." {
		t.Errorf("Unexpected message: %q", ce.Message)
	}
}

func TestDeactivateCategoryWithInactiveProducts(t *testing.T) {
	db := setupTestDB(t)

	category := seedCategory(t, db, "Steel", models.StatusActive)
	seedProduct(t, db, category.ID, "Rebar", models.StatusInactive)

	updated, err := services.UpdateCategoryStatus(db, category.ID, models.StatusInactive)
	if err != nil {
		t.Fatalf("Failed to deactivate category: %v", err)
	}
	if updated.Status != models.StatusInactive {
		t.Errorf("Expected inactive, got %q", updated.Status)
	}
}

func TestListCategoriesSearchAndPagination(t *testing.T) {
	db := setupTestDB(t)

	seedCategory(t, db, "Steel", models.StatusActive)
	seedCategory(t, db, "Stainless Steel", models.StatusActive)
	seedCategory(t, db, "Rod", models.StatusInactive)

	categories, total, err := services.ListCategories(db, "Steel", "", 1, 10)
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}
	if total != 2 || len(categories) != 2 {
		t.Errorf("Expected 2 matches, got total=%d len=%d", total, len(categories))
	}
	// Ordered by name
	if categories[0].Name != "Stainless Steel" {
		t.Errorf("Expected name ordering, got %q first", categories[0].Name)
	}

	_, total, err = services.ListCategories(db, "", models.StatusInactive, 1, 10)
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}
	if total != 1 {
		t.Errorf("Expected 1 inactive category, got %d", total)
	}
}

func TestGetCategoryStats(t *testing.T) {
	db := setupTestDB(t)

	steel := seedCategory(t, db, "Steel", models.StatusActive)
	rod := seedCategory(t, db, "Rod", models.StatusActive)
	seedCategory(t, db, "Empty", models.StatusInactive)

	seedProduct(t, db, steel.ID, "Rebar", models.StatusActive)
	seedProduct(t, db, steel.ID, "Beam", models.StatusActive)
	seedProduct(t, db, rod.ID, "Thin Rod", models.StatusInactive)

	stats, err := services.GetCategoryStats(db)
	if err != nil {
		t.Fatalf("Failed to get category stats: %v", err)
	}

	if stats.TotalCategories != 3 {
		t.Errorf("TotalCategories = %d, want 3", stats.TotalCategories)
	}
	if stats.ActiveCategories != 2 {
		t.Errorf("ActiveCategories = %d, want 2", stats.ActiveCategories)
	}
	if stats.CategoriesWithProducts != 2 {
		t.Errorf("CategoriesWithProducts = %d, want 2", stats.CategoriesWithProducts)
	}
	if len(stats.TopCategories) != 2 {
		t.Fatalf("TopCategories len = %d, want 2", len(stats.TopCategories))
	}
	if stats.TopCategories[0].Name != "Steel" || stats.TopCategories[0].ProductCount != 2 {
		t.Errorf("Top category = %+v, want Steel with 2 products", stats.TopCategories[0])
	}
}
