package open

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrowserCommand(t *testing.T) {
	const url = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	tests := []struct {
		browser, goos string
		want          []string
	}{
		{"", "linux", []string{"xdg-open", url}},
		{"", "darwin", []string{"open", url}},
		{"", "windows", []string{"rundll32", "url.dll,FileProtocolHandler", url}},
		{"firefox --new-tab", "linux", []string{"firefox", "--new-tab", url}},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.browser, func(t *testing.T) {
			cmd := browserCommand(tt.browser, tt.goos, url)
			assert.Equal(t, tt.want, cmd.Args)
		})
	}
}

func TestVideoRejectsNonYouTube(t *testing.T) {
	assert.Error(t, Video("https://example.com/video"))
}
