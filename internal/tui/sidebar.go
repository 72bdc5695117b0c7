package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/Zuo-Peng/thinktube/internal/session"
	"github.com/Zuo-Peng/thinktube/internal/youtube"
)

// fields already shown as dedicated rows
var shownFields = map[string]bool{
	"video_id": true,
	"status":   true,
}

func (m model) renderSidebar(width, height int) string {
	var lines []string

	v, ok := m.ctl.Video()
	if !ok || v.Info == nil {
		lines = append(lines,
			styleTitle.Render("▶ Video"),
			"",
			styleLabel.Render("No video loaded."),
			styleLabel.Render("Paste a URL above and"),
			styleLabel.Render("press enter."),
		)
		return clipLines(lines, height)
	}

	lines = append(lines, styleTitle.Render("▶ Video"), "")
	lines = append(lines, row("Video ID", v.ExtractedID, width))
	lines = append(lines, row("Status", styleOK.Render(v.Info.Status), width))

	initialized := styleLabel.Render("pending")
	if v.Initialized {
		initialized = styleOK.Render("✓")
	}
	lines = append(lines, row("Initialized", initialized, width))
	lines = append(lines, styleLabel.Render(truncate(youtube.WatchURL(v.ExtractedID), width)))

	for _, k := range extraFields(v.Info.Fields) {
		lines = append(lines, row(k, fmt.Sprint(v.Info.Fields[k]), width))
	}

	lines = append(lines, "", styleTitle.Render("⚡ Quick Questions"), "")
	for i, q := range session.QuickQuestions {
		k := styleQuickKey.Render(fmt.Sprintf("F%d", i+1))
		lines = append(lines, k+" "+styleValue.Render(truncate(q.Label, width-3)))
	}

	return clipLines(lines, height)
}

func extraFields(fields map[string]any) []string {
	var keys []string
	for k := range fields {
		if !shownFields[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func row(label, value string, width int) string {
	l := styleLabel.Render(label + ": ")
	room := width - runewidth.StringWidth(label) - 2
	if room < 4 {
		room = 4
	}
	// value may already carry styling; only truncate plain text
	if !strings.Contains(value, "\x1b") {
		value = styleValue.Render(truncate(value, room))
	}
	return l + value
}

func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

func clipLines(lines []string, height int) string {
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
