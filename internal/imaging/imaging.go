package imaging

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
)

// UploadResult is the stable URL plus the opaque handle needed to delete the
// image later
type UploadResult struct {
	URL      string
	PublicID string
}

// Service is the image hosting gateway. Delete is best-effort: failures are
// logged and reported as false, never as an error.
type Service interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) bool
}

const (
	maxFileSize  = 10 * 1024 * 1024
	maxBatchSize = 7
)

var allowedTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

// ValidateFile rejects empty files, disallowed content types and oversize payloads
func ValidateFile(file *multipart.FileHeader) error {
	if file == nil || file.Size == 0 {
		return fmt.Errorf("file is null or empty")
	}

	contentType := strings.ToLower(file.Header.Get("Content-Type"))
	allowed := false
	for _, t := range allowedTypes {
		if contentType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("invalid file type. Only JPEG, PNG, and WebP are allowed")
	}

	if file.Size > maxFileSize {
		return fmt.Errorf("file size cannot exceed 10MB")
	}

	return nil
}

// UploadMany uploads a batch of files. A single file's failure is logged and
// that file skipped; it is not fatal to the batch.
func UploadMany(ctx context.Context, svc Service, files []*multipart.FileHeader) ([]UploadResult, error) {
	results := make([]UploadResult, 0, len(files))

	if len(files) == 0 {
		return results, nil
	}
	if len(files) > maxBatchSize {
		return nil, fmt.Errorf("maximum %d images allowed per product", maxBatchSize)
	}

	for _, file := range files {
		result, err := svc.Upload(ctx, file)
		if err != nil {
			log.Printf("Error uploading image %s: %v", file.Filename, err)
			continue
		}
		results = append(results, *result)
	}

	return results, nil
}
