package main

import (
	"bytes"
	"testing"

	"github.com/Zuo-Peng/thinktube/internal/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	rows := []archive.VideoRow{{VideoID: "dQw4w9WgXcQ", RawURL: "https://youtu.be/dQw4w9WgXcQ", MessageCount: 3}}

	var buf bytes.Buffer
	require.NoError(t, encode(&buf, "yaml", rows))
	assert.Contains(t, buf.String(), "- video_id: dQw4w9WgXcQ")
	assert.Contains(t, buf.String(), "  message_count: 3")

	buf.Reset()
	require.NoError(t, encode(&buf, "json", rows))
	assert.Contains(t, buf.String(), `"video_id": "dQw4w9WgXcQ"`)
}
