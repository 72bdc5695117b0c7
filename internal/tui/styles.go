package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary   = lipgloss.Color("14")  // bright cyan
	colorSecondary = lipgloss.Color("10")  // bright green
	colorUser      = lipgloss.Color("11")  // bright yellow
	colorError     = lipgloss.Color("9")   // bright red
	colorInfo      = lipgloss.Color("12")  // bright blue
	colorDim       = lipgloss.Color("240") // gray
	colorBorder    = lipgloss.Color("238") // dark gray

	// Header
	styleHeader = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Padding(0, 1)

	// Inputs
	styleInput = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleAskPrompt = lipgloss.NewStyle().
			Foreground(colorUser).
			Bold(true)

	// Panels
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	styleActiveBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	styleTitle = lipgloss.NewStyle().
			Foreground(colorDim).
			Bold(true)

	// Sidebar
	styleLabel = lipgloss.NewStyle().
			Foreground(colorDim)

	styleValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleOK = lipgloss.NewStyle().
		Foreground(colorSecondary)

	styleQuickKey = lipgloss.NewStyle().
			Foreground(colorUser).
			Bold(true)

	// Transcript
	styleUserLabel = lipgloss.NewStyle().
			Foreground(colorUser).
			Bold(true)

	styleAssistLabel = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	styleTime = lipgloss.NewStyle().
			Foreground(colorDim)

	styleThinking = lipgloss.NewStyle().
			Foreground(colorUser)

	// Banner, one per kind
	styleBannerSuccess = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true).
				Padding(0, 1)

	styleBannerError = lipgloss.NewStyle().
				Foreground(colorError).
				Bold(true).
				Padding(0, 1)

	styleBannerInfo = lipgloss.NewStyle().
			Foreground(colorInfo).
			Bold(true).
			Padding(0, 1)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)
)
