package s3mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spotilove/core/internal/model"
)

// S3Storage is an in-memory stand-in used when AWS credentials are absent.
type S3Storage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func New() *S3Storage {
	return &S3Storage{objects: make(map[string][]byte)}
}

func (s *S3Storage) Save(ctx context.Context, obj *model.Photo, readyKey *string) (string, error) {
	key := fmt.Sprintf("%s/%s", obj.GetParent(), obj.GetFilename())
	if readyKey != nil {
		key = *readyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = obj.GetContent()

	return key, nil
}

func (s *S3Storage) Load(ctx context.Context, readyKey string) (*model.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.objects[readyKey]
	if !ok {
		return nil, fmt.Errorf("no such object: %s", readyKey)
	}

	return &model.Photo{Content: content, Filename: readyKey}, nil
}

func (s *S3Storage) Delete(ctx context.Context, readyKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, readyKey)
	return nil
}

func (s *S3Storage) GeneratePresignedURL(ctx context.Context, rawURL string, ttl time.Duration) (string, error) {
	return "https://media.local/" + rawURL, nil
}
