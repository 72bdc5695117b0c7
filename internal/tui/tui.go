package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/Zuo-Peng/thinktube/internal/open"
	"github.com/Zuo-Peng/thinktube/internal/session"
	"github.com/Zuo-Peng/thinktube/internal/youtube"
)

const sidebarWidth = 36

type focusArea int

const (
	focusURL focusArea = iota
	focusQuestion
)

// message types

type submitURLMsg struct {
	url string
}

type videoLoadedMsg struct {
	res session.LoadResult
}

type videoInitializedMsg struct {
	res session.InitResult
}

type answerMsg struct {
	ans session.Answer
}

type bannerExpiredMsg struct {
	seq uint64
}

type quickAskMsg struct {
	question string
}

// model

type model struct {
	ctl        *session.Controller
	initialURL string

	urlInput textinput.Model
	askInput textinput.Model
	focus    focusArea
	chat     viewport.Model
	spinner  spinner.Model
	spinning bool

	bannerSeq uint64 // last banner an expiry was scheduled for
	msgCount  int    // transcript length last rendered
	note      string // local feedback shown in the status bar

	width    int
	height   int
	ready    bool
	quitting bool
}

func newModel(ctl *session.Controller, initialURL string) model {
	urlIn := textinput.New()
	urlIn.Placeholder = "Paste YouTube URL here..."
	urlIn.Prompt = "📺 "
	urlIn.PromptStyle = styleInputPrompt
	urlIn.TextStyle = styleInput
	urlIn.CharLimit = 512
	urlIn.SetValue(initialURL)
	urlIn.Focus()

	askIn := textinput.New()
	askIn.Placeholder = "Ask a question about the video..."
	askIn.Prompt = "💬 "
	askIn.PromptStyle = styleAskPrompt
	askIn.TextStyle = styleInput
	askIn.CharLimit = 1000

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styleThinking

	return model{
		ctl:        ctl,
		initialURL: initialURL,
		urlInput:   urlIn,
		askInput:   askIn,
		chat:       viewport.New(0, 0),
		spinner:    sp,
	}
}

// Run starts the TUI and blocks until it exits. A non-empty initialURL is
// loaded right away.
func Run(ctl *session.Controller, initialURL string) error {
	p := tea.NewProgram(newModel(ctl, initialURL), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.initialURL != "" {
		url := m.initialURL
		cmds = append(cmds, func() tea.Msg { return submitURLMsg{url: url} })
	}
	return tea.Batch(cmds...)
}

// Update handles a message, then schedules banner expiry and the spinner
// for whatever state the controller ended up in.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	return m.sync(cmd)
}

func (m model) update(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.chat = viewport.New(m.chatWidth(), m.chatHeight())
		m.msgCount = -1
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	case submitURLMsg:
		m.urlInput.SetValue(msg.url)
		return m, m.loadVideo(msg.url)

	case videoLoadedMsg:
		req, ok := m.ctl.FinishLoad(msg.res)
		if !ok {
			return m, nil
		}
		m.setFocus(focusQuestion)
		return m, m.initializeVideo(req)

	case videoInitializedMsg:
		m.ctl.FinishInitialize(msg.res)
		return m, nil

	case answerMsg:
		m.ctl.ResolveQuestion(msg.ans)
		return m, nil

	case bannerExpiredMsg:
		m.ctl.ExpireBanner(msg.seq)
		return m, nil

	case quickAskMsg:
		q, ok := m.ctl.SubmitQuestion(msg.question)
		if !ok {
			return m, nil
		}
		if m.askInput.Value() == msg.question {
			m.askInput.Reset()
		}
		return m, m.ask(q)

	case spinner.TickMsg:
		if !m.ctl.Loading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Focus):
		if m.focus == focusURL {
			m.setFocus(focusQuestion)
		} else {
			m.setFocus(focusURL)
		}
		return m, nil

	case key.Matches(msg, keys.Submit):
		m.note = ""
		if m.focus == focusURL {
			return m, m.loadVideo(m.urlInput.Value())
		}
		// the question box is disabled while an answer is pending
		if m.ctl.Thinking() {
			return m, nil
		}
		q, ok := m.ctl.SubmitQuestion(m.askInput.Value())
		if !ok {
			return m, nil
		}
		m.askInput.Reset()
		return m, m.ask(q)

	case key.Matches(msg, keys.ChatUp):
		m.chat.LineUp(m.chatHeight() / 2)
		return m, nil

	case key.Matches(msg, keys.ChatDown):
		m.chat.LineDown(m.chatHeight() / 2)
		return m, nil

	case key.Matches(msg, keys.Copy):
		m.note = copyLastAnswer(m.ctl)
		return m, nil

	case key.Matches(msg, keys.Open):
		if v, ok := m.ctl.Video(); ok {
			if err := open.Browser(youtube.WatchURL(v.ExtractedID)); err != nil {
				m.note = err.Error()
			}
		}
		return m, nil
	}

	for i, b := range keys.Quick {
		if key.Matches(msg, b) && i < len(session.QuickQuestions) {
			return m, m.quickAsk(session.QuickQuestions[i].Question)
		}
	}

	var cmd tea.Cmd
	if m.focus == focusURL {
		m.urlInput, cmd = m.urlInput.Update(msg)
	} else {
		m.askInput, cmd = m.askInput.Update(msg)
	}
	return m, cmd
}

// sync reconciles timers with controller state after every update.
func (m model) sync(cmd tea.Cmd) (model, tea.Cmd) {
	cmds := []tea.Cmd{cmd}

	if b, ok := m.ctl.Banner(); ok && b.Seq != m.bannerSeq {
		m.bannerSeq = b.Seq
		if b.Kind.Expires() {
			cmds = append(cmds, expireBannerCmd(b.Seq))
		}
	}

	if m.ctl.Loading() && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}

	m.refreshChat()
	return m, tea.Batch(cmds...)
}

func (m *model) setFocus(f focusArea) {
	m.focus = f
	if f == focusURL {
		m.askInput.Blur()
		m.urlInput.Focus()
	} else {
		m.urlInput.Blur()
		m.askInput.Focus()
	}
}

func (m model) loadVideo(raw string) tea.Cmd {
	req, ok := m.ctl.BeginLoad(raw)
	if !ok {
		return nil
	}
	ctl := m.ctl
	return func() tea.Msg {
		return videoLoadedMsg{res: ctl.FetchVideo(context.Background(), req)}
	}
}

func (m model) initializeVideo(req session.InitRequest) tea.Cmd {
	ctl := m.ctl
	return func() tea.Msg {
		return videoInitializedMsg{res: ctl.Initialize(context.Background(), req)}
	}
}

func (m model) ask(q session.Question) tea.Cmd {
	ctl := m.ctl
	return func() tea.Msg {
		return answerMsg{ans: ctl.Answer(context.Background(), q)}
	}
}

// quickAsk puts the preset in the question box and submits it shortly after.
func (m *model) quickAsk(question string) tea.Cmd {
	m.askInput.SetValue(question)
	m.setFocus(focusQuestion)
	return tea.Tick(session.QuickQuestionDelay, func(time.Time) tea.Msg {
		return quickAskMsg{question: question}
	})
}

func expireBannerCmd(seq uint64) tea.Cmd {
	return tea.Tick(session.BannerTTL, func(time.Time) tea.Msg {
		return bannerExpiredMsg{seq: seq}
	})
}

func copyLastAnswer(ctl *session.Controller) string {
	last, ok := ctl.LastAnswer()
	if !ok {
		return "Nothing to copy yet"
	}
	if err := clipboard.WriteAll(last.Text); err != nil {
		return "Copy failed: " + err.Error()
	}
	return "Copied last answer to clipboard"
}

// refreshChat re-renders the transcript and follows the bottom when new
// messages arrived.
func (m *model) refreshChat() {
	if !m.ready {
		return
	}
	msgs := m.ctl.Messages()
	m.chat.SetContent(renderTranscript(msgs, m.chatWidth(), m.ctl.Thinking(), m.spinner.View()))
	if len(msgs) != m.msgCount {
		m.msgCount = len(msgs)
		m.chat.GotoBottom()
	}
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	header := styleHeader.Render("🎥 YouTube AI Assistant") +
		styleLabel.Render("  analyze videos, get instant answers")

	loadHint := styleLabel.Render("  enter: Load Video")
	if m.ctl.LoadingVideo() {
		loadHint = styleThinking.Render("  " + m.spinner.View() + " Loading...")
	}
	urlRow := m.urlInput.View() + loadHint

	side := stylePanelBorder.
		Width(sidebarWidth).
		Height(m.chatHeight()).
		Render(m.renderSidebar(sidebarWidth, m.chatHeight()))

	chatStyle := stylePanelBorder
	if m.focus == focusQuestion {
		chatStyle = styleActiveBorder
	}
	var chatBody string
	if m.ctl.ChatVisible() {
		chatBody = m.chat.View()
	} else {
		chatBody = renderPlaceholder(m.chatWidth(), m.chatHeight())
	}
	chatPanel := chatStyle.
		Width(m.chatWidth()).
		Height(m.chatHeight()).
		Render(chatBody)

	panels := lipgloss.JoinHorizontal(lipgloss.Top, side, chatPanel)

	askRow := m.askInput.View()
	if m.ctl.Thinking() {
		askRow = styleLabel.Render("💬 Sending...")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header, urlRow, panels, askRow, m.bannerLine(), m.statusBar())
}

// helper methods

func (m model) chatWidth() int {
	if m.width <= 0 {
		return 60
	}
	// sidebar plus two borders on each panel
	w := m.width - sidebarWidth - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) chatHeight() int {
	if m.height <= 0 {
		return 20
	}
	// header, url row, ask row, banner, status bar, borders
	h := m.height - 7
	if h < 5 {
		h = 5
	}
	return h
}

func (m model) bannerLine() string {
	b, ok := m.ctl.Banner()
	if !ok {
		return ""
	}
	switch b.Kind {
	case session.BannerSuccess:
		return styleBannerSuccess.Render(b.Text)
	case session.BannerError:
		return styleBannerError.Render(b.Text)
	default:
		return styleBannerInfo.Render(b.Text)
	}
}

func (m model) statusBar() string {
	var parts []string
	if m.note != "" {
		parts = append(parts, m.note)
	}
	if v, ok := m.ctl.Video(); ok {
		parts = append(parts, v.ExtractedID)
	}
	parts = append(parts, fmt.Sprintf("%d messages", len(m.ctl.Messages())))
	parts = append(parts, "tab url/question")
	parts = append(parts, "F1-F4 quick questions")
	parts = append(parts, "pgup/pgdn scroll")
	parts = append(parts, "C-y copy")
	parts = append(parts, "C-o open")
	parts = append(parts, "esc quit")
	return styleStatusBar.Render(strings.Join(parts, " | "))
}
