package storage

import (
	"context"
	"io"
)

// UploadResult описывает объект после загрузки. Location - публичный адрес,
// ETag - контрольная сумма, которую вернуло хранилище.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader - объектное хранилище для опубликованных JSON-документов площадки.
// Реализации: R2 (S3 API) и MemoryUploader для тестов и пробного запуска CLI.
type FileUploader interface {
	// Upload перезаписывает объект по ключу.
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	// Delete снимает документ с публикации. Для отсутствующего ключа
	// MemoryUploader возвращает ErrObjectNotFound, R2 ошибки не даёт.
	Delete(ctx context.Context, key string) error

	// GetPublicURL строит адрес, по которому документ читают клиенты.
	GetPublicURL(key string) string
}
