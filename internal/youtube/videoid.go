package youtube

import (
	"fmt"
	"regexp"
)

// IDLength is the length of a YouTube video identifier.
const IDLength = 11

// idPatterns match the URL shapes we accept. The first capture group is the id.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/|v/|live/)|youtu\.be/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
}

// ParseVideoID extracts the 11-character video id from a watch, short,
// embed, shorts or live link. It reports false for anything else.
func ParseVideoID(url string) (string, bool) {
	for _, re := range idPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// WatchURL returns the canonical watch page for id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// EmbedURL returns the embedded player URL for id.
func EmbedURL(id string) string {
	return fmt.Sprintf("https://www.youtube.com/embed/%s?rel=0&modestbranding=1&controls=1", id)
}

// Thumbnail qualities served by img.youtube.com.
const (
	ThumbMaxRes = "maxresdefault"
	ThumbHigh   = "hqdefault"
)

// ThumbnailURL returns the thumbnail image URL for id at the given quality.
func ThumbnailURL(id, quality string) string {
	if quality == "" {
		quality = ThumbHigh
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/%s.jpg", id, quality)
}
