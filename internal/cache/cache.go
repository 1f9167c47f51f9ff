package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// keyVersion changes whenever the cached payload format changes
const keyVersion = "ghsextract:v1:"

// Cache defines the interface for caching extracted document text
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// DocumentKey identifies one rendition of a document: the same file read
// with a different page limit, or modified since, gets a different key.
func DocumentKey(path string, size int64, modTime time.Time, maxPages int) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	raw := fmt.Sprintf("%s|%d|%d|%d", abs, size, modTime.UnixNano(), maxPages)
	hash := sha256.Sum256([]byte(raw))
	return keyVersion + hex.EncodeToString(hash[:])
}

// DefaultDir returns the per-user cache directory
func DefaultDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "ghsextract")
	}
	return filepath.Join(os.TempDir(), "ghsextract-cache")
}
