package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/file"
)

func newLocalStorage(t *testing.T, opts ...file.LocalOption) (*file.LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := file.NewLocalStorage(dir, "/uploads", opts...)
	require.NoError(t, err)
	return s, dir
}

func TestNewLocalStorage(t *testing.T) {
	t.Parallel()

	_, err := file.NewLocalStorage("", "")
	assert.ErrorIs(t, err, file.ErrInvalidConfig)

	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err = file.NewLocalStorage(dir, "")
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocalStorageSave(t *testing.T) {
	t.Parallel()

	t.Run("writes a valid upload", func(t *testing.T) {
		s, dir := newLocalStorage(t)

		f, err := s.Save(context.Background(), "/avatars/u1.png", file.FromBytes("me.PNG", "image/png", pngBytes))
		require.NoError(t, err)
		assert.Equal(t, "avatars/u1.png", f.Key)
		assert.Equal(t, "me.PNG", f.Name)
		assert.Equal(t, "png", f.Extension)
		assert.Equal(t, "image/png", f.MIMEType)
		assert.Equal(t, int64(len(pngBytes)), f.Size)

		data, err := os.ReadFile(filepath.Join(dir, "avatars", "u1.png"))
		require.NoError(t, err)
		assert.Equal(t, pngBytes, data)
	})

	t.Run("multipart upload", func(t *testing.T) {
		s, dir := newLocalStorage(t)

		fh := multipartFile(t, "logo.jpg", "image/jpeg", jpegBytes)
		_, err := s.Save(context.Background(), "logo.jpg", file.FromFileHeader(fh))
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "logo.jpg"))
	})

	t.Run("rejects traversal", func(t *testing.T) {
		s, _ := newLocalStorage(t)

		_, err := s.Save(context.Background(), "../../etc/passwd", file.FromBytes("a.png", "image/png", pngBytes))
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})

	t.Run("rejects spoofed content", func(t *testing.T) {
		s, dir := newLocalStorage(t)

		_, err := s.Save(context.Background(), "a.png", file.FromBytes("a.png", "image/png", jpegBytes))
		assert.ErrorIs(t, err, file.ErrInvalidUpload)
		assert.ErrorIs(t, err, file.ErrSignatureMismatch)
		assert.NoFileExists(t, filepath.Join(dir, "a.png"))
	})

	t.Run("applies validation options", func(t *testing.T) {
		s, _ := newLocalStorage(t, file.WithLocalValidation(file.WithMaxSize(4)))

		_, err := s.Save(context.Background(), "a.png", file.FromBytes("a.png", "image/png", pngBytes))
		assert.ErrorIs(t, err, file.ErrFileTooLarge)
	})

	t.Run("cancelled context", func(t *testing.T) {
		s, _ := newLocalStorage(t, file.WithLocalUploadTimeout(time.Minute))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.Save(ctx, "a.png", file.FromBytes("a.png", "image/png", pngBytes))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalStorageDeleteAndExists(t *testing.T) {
	t.Parallel()

	s, dir := newLocalStorage(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "docs/a.webp", file.FromBytes("a.webp", "image/webp", webpBytes))
	require.NoError(t, err)

	assert.True(t, s.Exists(ctx, "docs/a.webp"))
	assert.True(t, s.Exists(ctx, `\docs\a.webp`))
	assert.False(t, s.Exists(ctx, "docs/missing.webp"))
	assert.False(t, s.Exists(ctx, "../docs/a.webp"))

	err = s.Delete(ctx, "docs")
	assert.ErrorIs(t, err, file.ErrIsDirectory)

	require.NoError(t, s.Delete(ctx, "docs/a.webp"))
	assert.NoFileExists(t, filepath.Join(dir, "docs", "a.webp"))

	err = s.Delete(ctx, "docs/a.webp")
	assert.ErrorIs(t, err, file.ErrFileNotFound)

	err = s.Delete(ctx, "../outside")
	assert.ErrorIs(t, err, file.ErrInvalidPath)
}

func TestLocalStorageURL(t *testing.T) {
	t.Parallel()

	s, _ := newLocalStorage(t)
	assert.Equal(t, "/uploads/a/b.png", s.URL(`\a\b.png`))
	assert.Empty(t, s.URL("../a.png"))
}
