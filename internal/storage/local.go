package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"homestay-backend/internal/logger"

	"github.com/google/uuid"
)

// sniffLen is the number of bytes http.DetectContentType inspects.
const sniffLen = 512

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// LocalStore implements ImageStore on the local filesystem.
type LocalStore struct {
	cfg Config
}

// NewLocalStore creates the root and prefix directories if they don't exist.
func NewLocalStore(cfg Config) (*LocalStore, error) {
	for _, prefix := range []string{PrefixApartments, PrefixProfiles} {
		if err := os.MkdirAll(filepath.Join(cfg.Dir, prefix), 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", prefix, err)
		}
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return &LocalStore{cfg: cfg}, nil
}

func (s *LocalStore) Save(ctx context.Context, prefix, filename string, r io.Reader) (string, error) {
	if prefix != PrefixApartments && prefix != PrefixProfiles {
		return "", fmt.Errorf("%w: unknown prefix %q", ErrInvalidKey, prefix)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if !s.cfg.allows(contentType) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || extensions[contentType] != normalizeExt(ext) {
		ext = extensions[contentType]
	}
	key := path.Join(prefix, uuid.New().String()+ext)
	fullPath := filepath.Join(s.cfg.Dir, filepath.FromSlash(key))

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	body := io.MultiReader(bytes.NewReader(head), r)
	if s.cfg.MaxFileSize > 0 {
		body = io.LimitReader(body, s.cfg.MaxFileSize+1)
	}
	written, err := io.Copy(file, body)
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && s.cfg.MaxFileSize > 0 && written > s.cfg.MaxFileSize {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(fullPath)
		if errors.Is(err, ErrTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	logger.Debug("Image stored", "key", key, "bytes", written, "contentType", contentType)
	return key, nil
}

func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}

	err = os.Remove(fullPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStore) List(ctx context.Context, prefix string, before time.Time) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.cfg.Dir, prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(before) {
			continue
		}
		keys = append(keys, path.Join(prefix, e.Name()))
	}
	return keys, nil
}

func (s *LocalStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.cfg.BaseURL + "/images/" + key
}

// resolve maps key to a path inside the store, rejecting anything that escapes it.
func (s *LocalStore) resolve(key string) (string, error) {
	clean := path.Clean(key)
	if clean != key || strings.HasPrefix(clean, "/") || strings.Contains(clean, "..") {
		return "", ErrInvalidKey
	}
	prefix, name, ok := strings.Cut(clean, "/")
	if !ok || name == "" || strings.Contains(name, "/") || (prefix != PrefixApartments && prefix != PrefixProfiles) {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.cfg.Dir, prefix, name), nil
}

func normalizeExt(ext string) string {
	if ext == ".jpeg" {
		return ".jpg"
	}
	return ext
}
