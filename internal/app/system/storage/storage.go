// internal/app/system/storage/storage.go

// Package storage abstracts the remote object store that holds property
// media. The concrete backend is S3; handlers and the media manager
// only ever see ObjectStore.
package storage

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// ObjectStore is the remote blob API the media layer depends on.
//
// Delete returns the backend's HTTP status code so callers can decide
// whether the remote object is really gone; only 204 means success.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) (statusCode int, err error)
}

// NewKey builds a unique object key under the given folder. The suffix
// carries the file extension, e.g. "jpeg".
func NewKey(folder, ext string) string {
	return folder + "/" + uuid.NewString() + "." + ext
}
