package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/Zuo-Peng/thinktube/internal/backend"
	"github.com/Zuo-Peng/thinktube/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

type stubAPI struct {
	infoCalls int
}

func (s *stubAPI) VideoInfo(_ context.Context, rawURL string) (*backend.VideoInfo, error) {
	s.infoCalls++
	return &backend.VideoInfo{VideoID: rawURL, Status: "ready", Fields: map[string]any{"title": "Never"}}, nil
}

func (s *stubAPI) InitializeVideo(context.Context, string) error { return nil }

func (s *stubAPI) Ask(_ context.Context, question, _ string) (string, error) {
	return "answer to " + question, nil
}

func step(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func loaded(t *testing.T, api *stubAPI) model {
	t.Helper()
	ctl := session.New(api)
	m := newModel(ctl, "")
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	req, ok := ctl.BeginLoad(testURL)
	require.True(t, ok)
	m, _ = step(t, m, videoLoadedMsg{res: ctl.FetchVideo(context.Background(), req)})
	return m
}

func TestEnterWithEmptyURL(t *testing.T) {
	api := &stubAPI{}
	m := newModel(session.New(api), "")

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	b, ok := m.ctl.Banner()
	require.True(t, ok)
	assert.Equal(t, session.BannerError, b.Kind)
	assert.Equal(t, session.TextEmptyURL, b.Text)
	assert.Zero(t, api.infoCalls)
	assert.False(t, m.ctl.LoadingVideo())
}

func TestVideoLoadedShowsChat(t *testing.T) {
	m := loaded(t, &stubAPI{})

	assert.True(t, m.ctl.ChatVisible())
	assert.Equal(t, focusQuestion, m.focus)
	msgs := m.ctl.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, session.Greeting, msgs[0].Text)
	assert.Contains(t, m.View(), "Quick Questions")
	assert.Contains(t, m.View(), "dQw4w9WgXcQ")
}

func TestQuickQuestionKey(t *testing.T) {
	m := loaded(t, &stubAPI{})

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.NotNil(t, cmd)
	assert.Equal(t, session.QuickQuestions[0].Question, m.askInput.Value())
	// nothing is submitted until the delayed message arrives
	assert.Len(t, m.ctl.Messages(), 1)

	m, cmd = step(t, m, quickAskMsg{question: session.QuickQuestions[0].Question})
	assert.NotNil(t, cmd)
	assert.True(t, m.ctl.Thinking())
	assert.Empty(t, m.askInput.Value())
	msgs := m.ctl.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, session.RoleUser, msgs[1].Role)
	assert.Equal(t, session.QuickQuestions[0].Question, msgs[1].Text)
}

func TestAnswerResolves(t *testing.T) {
	m := loaded(t, &stubAPI{})
	q, ok := m.ctl.SubmitQuestion("why?")
	require.True(t, ok)

	m, _ = step(t, m, answerMsg{ans: m.ctl.Answer(context.Background(), q)})

	assert.False(t, m.ctl.Thinking())
	last, ok := m.ctl.LastAnswer()
	require.True(t, ok)
	assert.Equal(t, "answer to why?", last.Text)
}

func TestEnterIgnoredWhileThinking(t *testing.T) {
	m := loaded(t, &stubAPI{})
	_, ok := m.ctl.SubmitQuestion("first")
	require.True(t, ok)

	m.askInput.SetValue("second")
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "second", m.askInput.Value())
	assert.Len(t, m.ctl.Messages(), 2)
}

func TestBannerExpiry(t *testing.T) {
	m := loaded(t, &stubAPI{})
	b, ok := m.ctl.Banner()
	require.True(t, ok)
	assert.Equal(t, session.BannerSuccess, b.Kind)
	assert.Equal(t, b.Seq, m.bannerSeq)

	// a stale expiry leaves the banner alone
	m, _ = step(t, m, bannerExpiredMsg{seq: b.Seq - 1})
	_, ok = m.ctl.Banner()
	assert.True(t, ok)

	m, _ = step(t, m, bannerExpiredMsg{seq: b.Seq})
	_, ok = m.ctl.Banner()
	assert.False(t, ok)
	assert.NotContains(t, m.View(), session.TextLoaded)
}

func TestFocusToggle(t *testing.T) {
	m := newModel(session.New(&stubAPI{}), "")
	assert.Equal(t, focusURL, m.focus)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusQuestion, m.focus)
	assert.True(t, m.askInput.Focused())

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusURL, m.focus)
	assert.True(t, m.urlInput.Focused())
}

func TestPlaceholderBeforeLoad(t *testing.T) {
	m := newModel(session.New(&stubAPI{}), "")
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Contains(t, m.View(), "Ready to Analyze")
	assert.Contains(t, m.View(), "No video loaded.")
}

func TestExtraFieldsSorted(t *testing.T) {
	got := extraFields(map[string]any{"video_id": "x", "title": "t", "author": "a", "status": "ok"})
	assert.Equal(t, []string{"author", "title"}, got)
}
