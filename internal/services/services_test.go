package services_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/adintl/catalog-api/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Banner{},
		&models.MetaData{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// imageFile builds a real multipart file header with an image content type
func imageFile(t *testing.T, name string) *multipart.FileHeader {
	t.Helper()
	return imageFiles(t, name)[0]
}

func imageFiles(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, name))
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("Failed to create multipart part: %v", err)
		}
		if _, err := part.Write([]byte("not-really-a-png")); err != nil {
			t.Fatalf("Failed to write multipart part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("Failed to parse multipart form: %v", err)
	}
	return form.File["images"]
}

// seedCategory inserts a category directly, bypassing the service layer
func seedCategory(t *testing.T, db *gorm.DB, name, status string) *models.Category {
	t.Helper()

	category := models.Category{
		Name:      name,
		Status:    status,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	return &category
}

// seedProduct inserts a product directly, bypassing the service layer
func seedProduct(t *testing.T, db *gorm.DB, categoryID uint, name, status string) *models.Product {
	t.Helper()

	product := models.Product{
		Name:        name,
		Description: name + " description",
		CategoryID:  categoryID,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return &product
}
