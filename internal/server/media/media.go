// Package media stores uploaded images (profile photos, project images,
// post covers). Records keep only the object key; the HTTP layer serves
// objects under /media/.
package media

import (
	"context"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Object is a stored file.
type Object struct {
	Data        []byte
	ContentType string
}

type Store interface {
	Put(ctx context.Context, key string, obj Object) error
	// Get returns common.ErrorNotFound for unknown keys.
	Get(ctx context.Context, key string) (*Object, error)
	// Delete ignores unknown keys.
	Delete(ctx context.Context, key string) error
}

// NewKey returns "<prefix>/<uuid><ext>", keeping the lower-cased extension
// of filename.
func NewKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) > 8 || strings.ContainsAny(ext, `/\?#`) {
		ext = ""
	}
	return prefix + "/" + uuid.NewString() + ext
}

// ValidKey reports whether key has the shape NewKey produces, so request
// paths cannot reach outside the upload namespace.
func ValidKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return false
	}
	dir, file := path.Split(key)
	return dir != "" && file != "" && !strings.Contains(strings.TrimSuffix(dir, "/"), "/")
}
