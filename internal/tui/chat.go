package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/Zuo-Peng/thinktube/internal/render"
	"github.com/Zuo-Peng/thinktube/internal/session"
)

// renderTranscript lays out the chat for the viewport. A thinking line is
// appended while any answer is pending.
func renderTranscript(msgs []session.Message, width int, thinking bool, spin string) string {
	var b strings.Builder
	textWidth := width - 2
	if textWidth < 10 {
		textWidth = 10
	}

	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}

		var label string
		if msg.Role == session.RoleUser {
			label = styleUserLabel.Render("You")
		} else {
			label = styleAssistLabel.Render("🤖 Assistant")
		}
		if !msg.CreatedAt.IsZero() {
			label += " " + styleTime.Render(msg.CreatedAt.Local().Format("15:04"))
		}
		b.WriteString(label)
		b.WriteString("\n")

		for _, line := range strings.Split(render.Wrap(msg.Text, textWidth), "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if thinking {
		b.WriteString("\n")
		b.WriteString(styleThinking.Render(spin + " Thinking..."))
		b.WriteString("\n")
	}
	return b.String()
}

// renderPlaceholder fills the chat panel before any video is loaded.
func renderPlaceholder(width, height int) string {
	features := []string{"Video Summarization", "Content Analysis", "Q&A Chat"}
	var chips []string
	for _, f := range features {
		chips = append(chips, styleOK.Render("✓")+" "+styleLabel.Render(f))
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		"🎬",
		"",
		styleTitle.Render("Ready to Analyze"),
		"",
		styleLabel.Render(render.Wrap(
			"Load a YouTube video to start asking questions and get AI-powered insights about the content.",
			max(width-4, 10))),
		"",
		strings.Join(chips, "   "),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
