package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/shorts/a_B-c1d2e3F", "a_B-c1d2e3F", true},
		{"https://www.youtube.com/live/jfKfPfyJRdk?feature=share", "jfKfPfyJRdk", true},
		{"youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://example.com/video", "", false},
		{"https://youtu.be/short", "", false},
		{"https://www.youtube.com/watch?list=PL123", "", false},
		{"https://www.youtube.com/channel/UCxxxxxxxxxxxx", "", false},
		{"dQw4w9WgXcQ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := ParseVideoID(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			if ok {
				assert.Len(t, got, IDLength)
			}
		})
	}
}

func TestDerivedURLs(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"))
	assert.Contains(t, EmbedURL("dQw4w9WgXcQ"), "/embed/dQw4w9WgXcQ?")
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", ThumbnailURL("dQw4w9WgXcQ", ""))
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", ThumbnailURL("dQw4w9WgXcQ", ThumbMaxRes))
}
