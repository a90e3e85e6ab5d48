package imaging

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/adintl/catalog-api/internal/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Cloudinary hosts images on the Cloudinary CDN under the products folder
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary creates the Cloudinary gateway from configured credentials
func NewCloudinary(cfg *config.Config) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return &Cloudinary{cld: cld}, nil
}

// Upload pushes one validated image, returning its URL and deletion handle
func (s *Cloudinary) Upload(ctx context.Context, file *multipart.FileHeader) (*UploadResult, error) {
	if err := ValidateFile(file); err != nil {
		return nil, err
	}

	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result, err := s.cld.Upload.Upload(ctx, f, uploader.UploadParams{
		PublicID:       uuid.NewString(),
		Folder:         "products",
		Transformation: "c_limit,w_1200,h_1200/q_auto/f_auto",
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload error: %s", result.Error.Message)
	}

	return &UploadResult{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// Delete removes an uploaded image by its public ID, best-effort
func (s *Cloudinary) Delete(ctx context.Context, publicID string) bool {
	if publicID == "" {
		return false
	}

	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		log.Printf("Error deleting image from Cloudinary: %s: %v", publicID, err)
		return false
	}

	return result.Result == "ok"
}
