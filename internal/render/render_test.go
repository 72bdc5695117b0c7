package render

import (
	"strings"
	"testing"
	"time"

	"github.com/Zuo-Peng/thinktube/internal/session"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestWrapLine(t *testing.T) {
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, WrapLine("abcdefghij", 4))
	assert.Equal(t, []string{"abc"}, WrapLine("abc", 0))
	assert.Equal(t, []string{""}, WrapLine("", 10))

	// wide runes count double
	lines := WrapLine("视频讲了什么", 4)
	assert.Equal(t, []string{"视频", "讲了", "什么"}, lines)

	// escapes take no width
	colored := colorUser + "abcdef" + colorReset
	lines = WrapLine(colored, 3)
	assert.Len(t, lines, 2)
	for _, l := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(stripANSI(l)), 3)
	}
}

func stripANSI(s string) string {
	for _, c := range []string{colorReset, colorUser, colorAssist, colorDim, colorBoldRed} {
		s = strings.ReplaceAll(s, c, "")
	}
	return s
}

func TestTranscriptPlain(t *testing.T) {
	at := time.Date(2026, 10, 16, 12, 30, 0, 0, time.Local)
	out := Transcript([]session.Message{
		{Role: session.RoleAssistant, Text: "Hi!", CreatedAt: at},
		{Role: session.RoleUser, Text: "line one\nline two", CreatedAt: at},
	}, Options{Header: "dQw4w9WgXcQ"})

	assert.NotContains(t, out, "\033[")
	assert.Equal(t, "--- dQw4w9WgXcQ ---\nASST > 12:30\n  Hi!\n\nYOU > 12:30\n  line one\n  line two\n", out)
}

func TestTranscriptColorHighlights(t *testing.T) {
	out := Transcript([]session.Message{{Role: session.RoleAssistant, Text: "The Chorus repeats"}}, Options{Color: true, Query: "chorus"})
	assert.Contains(t, out, colorBoldRed+"Chorus"+colorReset)
}

func TestTranscriptEmpty(t *testing.T) {
	assert.Equal(t, "(empty transcript)\n", Transcript(nil, Options{}))
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "the chorus is", Snippet("the >>>chorus<<< is", false))
	assert.Equal(t, "the "+colorBoldRed+"chorus"+colorReset+" is", Snippet("the >>>chorus<<< is", true))
}
