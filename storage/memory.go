package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
)

var ErrObjectNotFound = errors.New("object not found")

// StoredObject is what MemoryUploader keeps per key.
type StoredObject struct {
	ContentType string
	Body        []byte
}

// MemoryUploader keeps uploaded objects in memory. Used by tests and by the
// CLI when publishing to a local dry run.
type MemoryUploader struct {
	mu      sync.RWMutex
	baseURL *url.URL
	objects map[string]StoredObject
}

func NewMemoryUploader(publicBaseURL string) (*MemoryUploader, error) {
	baseURL, err := parseBaseURL(publicBaseURL)
	if err != nil {
		return nil, err
	}
	return &MemoryUploader{baseURL: baseURL, objects: make(map[string]StoredObject)}, nil
}

func (u *MemoryUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body (key: %s): %w", key, err)
	}
	sum := md5.Sum(body)

	u.mu.Lock()
	u.objects[key] = StoredObject{ContentType: contentType, Body: body}
	u.mu.Unlock()

	return &UploadResult{Key: key, Location: u.GetPublicURL(key), ETag: hex.EncodeToString(sum[:])}, nil
}

func (u *MemoryUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.objects[key]; !ok {
		return ErrObjectNotFound
	}
	delete(u.objects, key)
	return nil
}

func (u *MemoryUploader) GetPublicURL(key string) string {
	return publicURL(u.baseURL, key)
}

func (u *MemoryUploader) Object(key string) (StoredObject, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	obj, ok := u.objects[key]
	return obj, ok
}

func (u *MemoryUploader) Keys() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	keys := make([]string, 0, len(u.objects))
	for k := range u.objects {
		keys = append(keys, k)
	}
	return keys
}
