package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// storageName builds the on-disk name for an upload: a UTC timestamp at
// microsecond precision followed by a sanitized form of the original name.
// Two uploads in the same microsecond with the same sanitized name would
// collide; that risk is accepted.
func storageName(now time.Time, original string) string {
	t := now.UTC()
	return fmt.Sprintf("%s%06d_%s", t.Format("20060102150405"), t.Nanosecond()/1000, sanitizeFilename(original))
}

// sanitizeFilename strips any path components and reduces the name to
// characters safe on common filesystems. An empty result falls back to
// "video" so the storage name stays well formed.
func sanitizeFilename(name string) string {
	// Browsers may send full client paths; both separator styles show up.
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}

	cleaned := strings.Trim(b.String(), "._-")
	if cleaned == "" {
		return "video"
	}
	return cleaned
}

// fileExtension returns the lower-cased extension without the dot, or ""
// when the name has none.
func fileExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
