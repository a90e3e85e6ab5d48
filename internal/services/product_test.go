package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adintl/catalog-api/internal/imaging"
	"github.com/adintl/catalog-api/internal/models"
	"github.com/adintl/catalog-api/internal/services"
	"github.com/adintl/catalog-api/internal/types"
)

func TestCreateProductWithImages(t *testing.T) {
	db := setupTestDB(t)
	store := imaging.NewMemory()

	category := seedCategory(t, db, "Steel", models.StatusActive)

	files := imageFiles(t, "a.png", "b.png")
	product, err := services.CreateProduct(context.Background(), db, store, services.ProductInput{
		Name:        "Rebar",
		Description: "Reinforcement bar",
		CategoryID:  category.ID,
		IsHot:       true,
	}, files)
	if err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}

	if len(product.Images) != 2 {
		t.Errorf("Expected 2 images, got %d", len(product.Images))
	}
	if store.Len() != 2 {
		t.Errorf("Expected 2 stored images, got %d", store.Len())
	}
	if !product.IsHot {
		t.Error("Expected isHot to be persisted")
	}
	if product.Category == nil || product.Category.Name != "Steel" {
		t.Error("Expected category to be loaded with the product")
	}
}

func TestCreateProductInactiveCategoryRejected(t *testing.T) {
	db := setupTestDB(t)
	store := imaging.NewMemory()

	category := seedCategory(t, db, "Steel", models.StatusInactive)

	_, err := services.CreateProduct(context.Background(), db, store, services.ProductInput{
		Name:        "Rebar",
		Description: "Reinforcement bar",
		CategoryID:  category.ID,
	}, nil)

	var ce *types.CustomError
	if !errors.As(err, &ce) || ce.Message != "Invalid or inactive category" {
		t.Fatalf("Expected inactive category rejection, got %v", err)
	}

	// The rolled-back transaction must leave no product behind
	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no products, got %d", count)
	}
}

func TestCreateProductTooManyImagesRejectedBeforeUpload(t *testing.T) {
	db := setupTestDB(t)
	store := imaging.NewMemory()

	category := seedCategory(t, db, "Steel", models.StatusActive)

	files := imageFiles(t, "1.png", "2.png", "3.png", "4.png", "5.png", "6.png", "7.png", "8.png")
	_, err := services.CreateProduct(context.Background(), db, store, services.ProductInput{
		Name:        "Rebar",
		Description: "Reinforcement bar",
		CategoryID:  category.ID,
	}, files)
	if err == nil {
		t.Fatal("Expected over-cap upload to be rejected")
	}
	if store.UploadCount() != 0 {
		t.Errorf("Expected no upload attempts, got %d", store.UploadCount())
	}
}

func TestCreateProductSkipsFailedUploads(t *testing.T) {
	db := setupTestDB(t)
	store := imaging.NewMemory()
	store.FailUpload = true

	category := seedCategory(t, db, "Steel", models.StatusActive)

	product, err := services.CreateProduct(context.Background(), db, store, services.ProductInput{
		Name:        "Rebar",
		Description: "Reinforcement bar",
		CategoryID:  category.ID,
	}, imageFiles(t, "a.png"))
	if err != nil {
		t.Fatalf("Per-image upload failure should not fail the create: %v", err)
	}
	if len(product.Images) != 0 {
		t.Errorf("Expected no image rows, got %d", len(product.Images))
	}
}

func TestUpdateProductImageCap(t *testing.T) {
	db := setupTestDB(t)
	store := imaging.NewMemory()

	category := seedCategory(t, db, "Steel", models.StatusActive)

	product, err := services.CreateProduct(context.Background(), db, store, services.ProductInput{
		Name:        "Rebar",
		Description: "Reinforcement bar",
		CategoryID:  category.ID,
	}, imageFiles(t, "1.png", "2.png", "3.png", "4.png", "5.png", "6.png"))
	if err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}

	uploadsBefore := store.UploadCount()

	// 6 existing, none removed: only 1 slot left
	_, err = services.UpdateProduct(context.Background(), db, store, product.ID, services.ProductInput{
		Name:        "Rebar",
		Description: "Reinforcement bar",
		CategoryID:  category.ID,
	}, nil, imageFiles(t, "7.png", "8.png"))

	var ce *types.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if ce.Message != "Cannot add 2 images. Maximum 1 more images allowed." {
		t.Errorf("Unexpected message: %q", ce.Message)
	}
	if store.UploadCount() != uploadsBefore {
		t.Error("Over-cap request must be rejected before any upload call")
	}
}

func TestUpdateProductRemovalFreesSlots(t *testing.T) {
	db := setupTestDB(t)
	store := imaging.NewMemory()

	category := seedCategory(t, db, "Steel", models.StatusActive)

	product, err := services.CreateProduct(context.Background(), db, store, services.ProductInput{
		Name:        "Rebar",
		Description: "Reinforcement bar",
		CategoryID:  category.ID,
	}, imageFiles(t, "1.png", "2.png", "3.png", "4.png", "5.png", "6.png", "7.png"))
	if err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}

	removeIds := []uint{product.Images[0].ID, product.Images[1].ID}
	removedPublicId := product.Images[0].PublicId

	updated, err := services.UpdateProduct(context.Background(), db, store, product.ID, services.ProductInput{
		Name:        "Rebar",
		Description: "Reinforcement bar",
		CategoryID:  category.ID,
	}, removeIds, imageFiles(t, "8.png", "9.png"))
	if err != nil {
		t.Fatalf("Failed to update product: %v", err)
	}

	if len(updated.Images) != 7 {
		t.Errorf("Expected 7 images after remove+add, got %d", len(updated.Images))
	}
	if store.Has(removedPublicId) {
		t.Error("Removed image should be gone from the store")
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	store := imaging.NewMemory()

	_, err := services.UpdateProduct(context.Background(), db, store, 42, services.ProductInput{
		Name:        "Rebar",
		Description: "Reinforcement bar",
		CategoryID:  1,
	}, nil, nil)

	var ce *types.CustomError
	if !errors.As(err, &ce) || ce.Code != 404 {
		t.Fatalf("Expected 404, got %v", err)
	}
}

func TestDeleteProductRemovesImageRowsAndStoreEntries(t *testing.T) {
	db := setupTestDB(t)
	store := imaging.NewMemory()

	category := seedCategory(t, db, "Steel", models.StatusActive)

	product, err := services.CreateProduct(context.Background(), db, store, services.ProductInput{
		Name:        "Rebar",
		Description: "Reinforcement bar",
		CategoryID:  category.ID,
	}, imageFiles(t, "a.png", "b.png"))
	if err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}

	if err := services.DeleteProduct(context.Background(), db, store, product.ID); err != nil {
		t.Fatalf("Failed to delete product: %v", err)
	}

	var imageCount int64
	db.Model(&models.ProductImage{}).Count(&imageCount)
	if imageCount != 0 {
		t.Errorf("Expected no image rows, got %d", imageCount)
	}
	if store.Len() != 0 {
		t.Errorf("Expected empty store, got %d", store.Len())
	}
}

func TestDeleteProductSurvivesStoreFailures(t *testing.T) {
	db := setupTestDB(t)
	store := imaging.NewMemory()

	category := seedCategory(t, db, "Steel", models.StatusActive)

	product, err := services.CreateProduct(context.Background(), db, store, services.ProductInput{
		Name:        "Rebar",
		Description: "Reinforcement bar",
		CategoryID:  category.ID,
	}, imageFiles(t, "a.png"))
	if err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}

	store.FailDelete = true
	if err := services.DeleteProduct(context.Background(), db, store, product.ID); err != nil {
		t.Fatalf("Store failure must not fail the delete: %v", err)
	}
	if _, err := services.GetProduct(db, product.ID); err == nil {
		t.Error("Product row should be gone")
	}
}

func TestListProductsSearchAndFilters(t *testing.T) {
	db := setupTestDB(t)

	steel := seedCategory(t, db, "Steel", models.StatusActive)
	rod := seedCategory(t, db, "Rod", models.StatusActive)

	seedProduct(t, db, steel.ID, "Rebar", models.StatusActive)
	seedProduct(t, db, steel.ID, "Beam", models.StatusInactive)
	seedProduct(t, db, rod.ID, "Thin Rod", models.StatusActive)

	// Search matches against the category name too
	products, total, err := services.ListProducts(db, "Steel", nil, "", 1, 10)
	if err != nil {
		t.Fatalf("Failed to list products: %v", err)
	}
	if total != 2 {
		t.Errorf("Expected 2 products in Steel, got %d", total)
	}
	for _, p := range products {
		if p.CategoryID != steel.ID {
			t.Errorf("Product %q not in Steel category", p.Name)
		}
	}

	_, total, err = services.ListProducts(db, "", &rod.ID, models.StatusActive, 1, 10)
	if err != nil {
		t.Fatalf("Failed to list products: %v", err)
	}
	if total != 1 {
		t.Errorf("Expected 1 active Rod product, got %d", total)
	}
}

func TestGetProductStats(t *testing.T) {
	db := setupTestDB(t)

	steel := seedCategory(t, db, "Steel", models.StatusActive)
	seedCategory(t, db, "Rod", models.StatusInactive)

	seedProduct(t, db, steel.ID, "Rebar", models.StatusActive)
	seedProduct(t, db, steel.ID, "Beam", models.StatusInactive)

	stats, err := services.GetProductStats(db)
	if err != nil {
		t.Fatalf("Failed to get product stats: %v", err)
	}
	if stats.TotalProducts != 2 || stats.ActiveProducts != 1 || stats.Categories != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestActiveCategories(t *testing.T) {
	db := setupTestDB(t)

	seedCategory(t, db, "Steel", models.StatusActive)
	seedCategory(t, db, "Rod", models.StatusInactive)

	refs, err := services.ActiveCategories(db)
	if err != nil {
		t.Fatalf("Failed to get active categories: %v", err)
	}
	if len(refs) != 1 || refs[0].Name != "Steel" {
		t.Errorf("Unexpected refs: %+v", refs)
	}
}
