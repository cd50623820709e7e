package storage

// Config holds storage configuration
type Config struct {
	Dir          string   // Root directory for stored images
	BaseURL      string   // Public server URL used to build download links
	MaxFileSize  int64    // Bytes, 0 means unlimited
	AllowedTypes []string // Sniffed MIME types, e.g. "image/jpeg"
}

func (c Config) allows(contentType string) bool {
	for _, t := range c.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
