package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/akinalp/quickchat/pkg"
)

// PublicUploadPrefix is where stored assets are served from.
const PublicUploadPrefix = "/api/uploads/"

// AssetStore persists message images and returns their public reference.
type AssetStore interface {
	Upload(ctx context.Context, dataURI string) (string, error)
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type diskAssetStore struct {
	dir     string
	maxSize int64
}

// NewDiskAssetStore stores images as files under dir, creating it if needed.
func NewDiskAssetStore(dir string, maxSize int64) (AssetStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &diskAssetStore{dir: dir, maxSize: maxSize}, nil
}

// Upload decodes a base64 data URI, checks the real content type (the
// declared one is ignored) and writes the bytes under a random name.
func (s *diskAssetStore) Upload(ctx context.Context, dataURI string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	header, payload, ok := strings.Cut(dataURI, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return "", fmt.Errorf("%w: image must be a base64 data URI", pkg.ErrBadRequest)
	}

	if int64(base64.StdEncoding.DecodedLen(len(payload))) > s.maxSize+2 {
		return "", fmt.Errorf("%w: image too large (max %d bytes)", pkg.ErrPayloadTooLarge, s.maxSize)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64 image data", pkg.ErrBadRequest)
	}
	if int64(len(data)) > s.maxSize {
		return "", fmt.Errorf("%w: image too large (max %d bytes)", pkg.ErrPayloadTooLarge, s.maxSize)
	}

	mt := mimetype.Detect(data)
	if !allowedImageTypes[mt.String()] {
		return "", fmt.Errorf("%w: image type not allowed: %s", pkg.ErrUnsupportedMedia, mt.String())
	}

	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	name := hex.EncodeToString(randomBytes) + mt.Extension()

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return PublicUploadPrefix + name, nil
}
