package file

import (
	"context"
	"fmt"
	"strings"
)

// File describes a stored upload.
type File struct {
	Key       string
	Name      string
	Size      int64
	MIMEType  string
	Extension string
}

// Storage persists validated uploads. Implementations sanitize keys with
// SanitizeStoragePath and validate uploads with ValidateUpload before
// writing anything.
type Storage interface {
	Save(ctx context.Context, key string, u Upload) (*File, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) bool
	URL(key string) string
}

// prepare is the common gate in front of every Save.
func prepare(key string, u Upload, opts []Option) (string, *File, error) {
	clean, ok := SanitizeStoragePath(key)
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}

	if res := ValidateUpload(u, opts...); !res.Valid {
		return "", nil, fmt.Errorf("%w: %s: %w", ErrInvalidUpload, res.Message, res.Err)
	}

	name := baseName(u.Name())
	ext := ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		ext = strings.ToLower(name[i+1:])
	}

	return clean, &File{
		Key:       clean,
		Name:      name,
		Size:      u.Size(),
		MIMEType:  normalizeMIME(u.Type()),
		Extension: ext,
	}, nil
}

// cleanKey sanitizes keys for read and delete operations.
func cleanKey(key string) (string, error) {
	clean, ok := SanitizeStoragePath(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return clean, nil
}
