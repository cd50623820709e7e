package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"homestay-backend/internal/logger"
	"homestay-backend/internal/storage"

	"github.com/gorilla/mux"
)

// ImageHandler serves stored apartment and profile pictures.
type ImageHandler struct {
	images storage.ImageStore
}

func NewImageHandler(images storage.ImageStore) *ImageHandler {
	return &ImageHandler{images: images}
}

func (h *ImageHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	file, err := h.images.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			writeJSON(w, http.StatusNotFound, "image not found", nil)
			return
		}
		writeError(w, r, err)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if _, err := io.Copy(w, file); err != nil {
		logger.Warn("Image download interrupted", "key", key, "error", err)
	}
}

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		logger.Error("Health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, "database unreachable", nil)
		return
	}
	writeOK(w, "ok", nil)
}
