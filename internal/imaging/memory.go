package imaging

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process image store used by tests and by credential-less
// development deployments. URLs it returns resolve nowhere.
type Memory struct {
	mu      sync.Mutex
	images  map[string]string // publicID -> URL
	uploads int
	deletes int

	// Test hooks: force the next call of the respective kind to fail
	FailUpload bool
	FailDelete bool
}

// NewMemory creates an empty in-memory image store
func NewMemory() *Memory {
	return &Memory{images: make(map[string]string)}
}

// Upload validates the file and records a synthetic URL for it
func (s *Memory) Upload(ctx context.Context, file *multipart.FileHeader) (*UploadResult, error) {
	if err := ValidateFile(file); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads++

	if s.FailUpload {
		return nil, fmt.Errorf("upload rejected")
	}

	publicID := uuid.NewString()
	url := "https://images.invalid/products/" + publicID
	s.images[publicID] = url

	return &UploadResult{URL: url, PublicID: publicID}, nil
}

// Delete forgets a stored image, best-effort
func (s *Memory) Delete(ctx context.Context, publicID string) bool {
	if publicID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++

	if s.FailDelete {
		log.Printf("Error deleting image: %s: delete rejected", publicID)
		return false
	}

	if _, ok := s.images[publicID]; !ok {
		return false
	}
	delete(s.images, publicID)
	return true
}

// Len reports how many images are currently stored
func (s *Memory) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images)
}

// UploadCount reports how many uploads were attempted
func (s *Memory) UploadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploads
}

// DeleteCount reports how many deletes were attempted
func (s *Memory) DeleteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletes
}

// Has reports whether the given public ID is still stored
func (s *Memory) Has(publicID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.images[publicID]
	return ok
}
