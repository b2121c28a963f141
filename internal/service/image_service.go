package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yusufkecer/fit-assistant/internal/domain"
	"github.com/yusufkecer/fit-assistant/internal/logger"
	"go.uber.org/zap"
)

const MaxImageSize = 5 << 20

var (
	ErrImageTooLarge = errors.New("image size exceeds 5MB limit")
	ErrNotAnImage    = errors.New("file is not an image")
)

// ImageService validates garment photos picked from disk and keeps accepted
// ones in a local media directory.
type ImageService struct {
	dir string
	log *zap.Logger
}

func NewImageService(dir string, log *zap.Logger) *ImageService {
	return &ImageService{dir: dir, log: logger.OrNop(log)}
}

// Inspect checks the file at path and describes it. Oversized and non-image
// files are rejected with ErrImageTooLarge or ErrNotAnImage.
func (s *ImageService) Inspect(path string) (domain.ImageFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.ImageFile{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return domain.ImageFile{}, fmt.Errorf("failed to stat image: %w", err)
	}
	if info.Size() > MaxImageSize {
		return domain.ImageFile{}, ErrImageTooLarge
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return domain.ImageFile{}, fmt.Errorf("failed to read image: %w", err)
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return domain.ImageFile{}, ErrNotAnImage
	}

	return domain.ImageFile{Path: path, ContentType: contentType, Size: info.Size()}, nil
}

// Store copies the image into the media directory and returns its file URL.
func (s *ImageService) Store(ctx context.Context, img domain.ImageFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if img.Size > MaxImageSize {
		return "", ErrImageTooLarge
	}
	if img.ContentType != "" && !strings.HasPrefix(img.ContentType, "image/") {
		return "", ErrNotAnImage
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	src, err := os.Open(img.Path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(img.Path))
	dstPath := filepath.Join(s.dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create image: %w", err)
	}

	n, err := io.Copy(dst, io.LimitReader(src, MaxImageSize+1))
	if err != nil {
		dst.Close()
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to copy image: %w", err)
	}
	if n > MaxImageSize {
		dst.Close()
		os.Remove(dstPath)
		return "", ErrImageTooLarge
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	abs, err := filepath.Abs(dstPath)
	if err != nil {
		abs = dstPath
	}
	s.log.Debug("stored garment image", zap.String("path", abs))
	return "file://" + filepath.ToSlash(abs), nil
}
