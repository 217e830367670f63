package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "movie.mp4", "movie.mp4"},
		{"spaces", "my holiday clip.mp4", "my_holiday_clip.mp4"},
		{"path stripped", "../../etc/passwd.mp4", "passwd.mp4"},
		{"windows path stripped", `C:\videos\clip.mp4`, "clip.mp4"},
		{"unsafe runes dropped", "cl<>ip?.mp4", "clip.mp4"},
		{"leading dots trimmed", "...hidden.mp4", "hidden.mp4"},
		{"empty falls back", "///", "video"},
		{"only unsafe falls back", "<>?*", "video"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, sanitizeFilename(tc.in))
		})
	}
}

func TestStorageName(t *testing.T) {
	t.Parallel()

	t.Run("embeds microsecond timestamp and sanitized name", func(t *testing.T) {
		at := time.Date(2025, 3, 14, 15, 9, 26, 535897000, time.UTC)
		got := storageName(at, "my clip.mp4")
		require.Equal(t, "20250314150926535897_my_clip.mp4", got)
	})

	t.Run("uses UTC regardless of input zone", func(t *testing.T) {
		zone := time.FixedZone("UTC+2", 2*60*60)
		at := time.Date(2025, 3, 14, 17, 9, 26, 0, zone)
		got := storageName(at, "clip.mp4")
		require.True(t, strings.HasPrefix(got, "20250314150926"), "got %q", got)
	})

	t.Run("different instants never collide", func(t *testing.T) {
		base := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
		first := storageName(base, "movie.mp4")
		second := storageName(base.Add(time.Microsecond), "movie.mp4")
		require.NotEqual(t, first, second)
	})
}

func TestFileExtension(t *testing.T) {
	t.Parallel()

	require.Equal(t, "mp4", fileExtension("clip.mp4"))
	require.Equal(t, "mov", fileExtension("CLIP.MOV"))
	require.Equal(t, "webm", fileExtension("a.b.webm"))
	require.Equal(t, "", fileExtension("noext"))
}
