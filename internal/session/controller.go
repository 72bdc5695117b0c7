package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Zuo-Peng/thinktube/internal/backend"
	"github.com/Zuo-Peng/thinktube/internal/youtube"
	"github.com/google/uuid"
)

var (
	ErrEmptyURL      = errors.New("empty video url")
	ErrInvalidURL    = errors.New("not a youtube video url")
	ErrNoVideo       = errors.New("no video loaded")
	ErrEmptyQuestion = errors.New("empty question")
)

// API is the analysis backend as seen by the controller.
type API interface {
	VideoInfo(ctx context.Context, rawURL string) (*backend.VideoInfo, error)
	InitializeVideo(ctx context.Context, videoID string) error
	Ask(ctx context.Context, question, videoID string) (string, error)
}

// Recorder observes loaded videos and appended messages.
type Recorder interface {
	RecordVideo(v Video) error
	RecordMessage(videoID string, m Message) error
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// Controller owns the session state. Begin*/Finish*/Submit*/Resolve* and
// the accessors must be called from one goroutine; FetchVideo, Initialize
// and Answer only talk to the API and may run anywhere.
type Controller struct {
	api      API
	recorder Recorder
	now      func() time.Time

	video       *Video
	gen         uint64 // bumped each time a new video replaces the current one
	messages    []Message
	chatVisible bool

	banner    *Banner
	bannerSeq uint64

	loads   int
	lastQ   uint64
	pending []*pendingQuestion // submission order
}

type pendingQuestion struct {
	seq    uint64
	answer *Answer
}

type LoadRequest struct {
	RawURL  string
	VideoID string
}

type LoadResult struct {
	Request LoadRequest
	Info    *backend.VideoInfo
	Err     error
}

type InitRequest struct {
	VideoID string
	gen     uint64
}

type InitResult struct {
	Request InitRequest
	Err     error
}

type Question struct {
	Text    string
	VideoID string
	gen     uint64
	seq     uint64
}

type Answer struct {
	Question Question
	Text     string
	Err      error
}

// Reply is the assistant text for this answer.
func (a Answer) Reply() string {
	if a.Err != nil {
		return backend.UserMessage(a.Err)
	}
	return a.Text
}

func New(api API, opts ...Option) *Controller {
	c := &Controller{api: api, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BeginLoad validates rawURL. On failure it sets an error banner and
// reports false; no request must be issued.
func (c *Controller) BeginLoad(rawURL string) (LoadRequest, bool) {
	req, err := c.beginLoad(rawURL)
	return req, err == nil
}

func (c *Controller) beginLoad(rawURL string) (LoadRequest, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		c.setBanner(BannerError, TextEmptyURL)
		return LoadRequest{}, ErrEmptyURL
	}
	id, ok := youtube.ParseVideoID(rawURL)
	if !ok {
		c.setBanner(BannerError, TextInvalidURL)
		return LoadRequest{}, ErrInvalidURL
	}
	c.loads++
	return LoadRequest{RawURL: rawURL, VideoID: id}, nil
}

func (c *Controller) FetchVideo(ctx context.Context, req LoadRequest) LoadResult {
	info, err := c.api.VideoInfo(ctx, req.RawURL)
	return LoadResult{Request: req, Info: info, Err: err}
}

// FinishLoad applies a load result. On success the transcript is reset to
// the greeting and the returned InitRequest should be sent best-effort.
func (c *Controller) FinishLoad(res LoadResult) (InitRequest, bool) {
	if c.loads > 0 {
		c.loads--
	}

	if res.Err != nil {
		slog.Warn("load video failed", "url", res.Request.RawURL, "error", res.Err)
		c.setBanner(BannerError, backend.UserMessage(res.Err))
		if c.video != nil {
			c.video.Info = nil
		}
		return InitRequest{}, false
	}

	c.gen++
	c.video = &Video{
		RawURL:      res.Request.RawURL,
		ExtractedID: res.Request.VideoID,
		Info:        res.Info,
	}
	c.messages = nil
	c.pending = nil
	c.chatVisible = true

	if c.recorder != nil {
		if err := c.recorder.RecordVideo(*c.video); err != nil {
			slog.Warn("record video failed", "video", c.video.ExtractedID, "error", err)
		}
	}

	c.appendMessage(RoleAssistant, Greeting)
	c.setBanner(BannerSuccess, TextLoaded)
	slog.Info("video loaded", "video", c.video.ExtractedID)

	return InitRequest{VideoID: c.video.ExtractedID, gen: c.gen}, true
}

func (c *Controller) Initialize(ctx context.Context, req InitRequest) InitResult {
	return InitResult{Request: req, Err: c.api.InitializeVideo(ctx, req.VideoID)}
}

// FinishInitialize flips Initialized on the video the request was issued
// for. Failures are only logged.
func (c *Controller) FinishInitialize(res InitResult) {
	if res.Err != nil {
		slog.Info("video initialization failed, queries will still work",
			"video", res.Request.VideoID, "error", res.Err)
		return
	}
	if c.video == nil || res.Request.gen != c.gen {
		return
	}
	c.video.Initialized = true
}

// SubmitQuestion appends the user message and marks the question pending.
// Empty text is ignored; without a video an error banner is shown and
// nothing is appended.
func (c *Controller) SubmitQuestion(text string) (Question, bool) {
	q, err := c.submitQuestion(text)
	return q, err == nil
}

func (c *Controller) submitQuestion(text string) (Question, error) {
	if strings.TrimSpace(text) == "" {
		return Question{}, ErrEmptyQuestion
	}
	if c.video == nil || c.video.ExtractedID == "" {
		c.setBanner(BannerError, TextNoVideo)
		return Question{}, ErrNoVideo
	}

	c.appendMessage(RoleUser, text)
	c.lastQ++
	q := Question{Text: text, VideoID: c.video.ExtractedID, gen: c.gen, seq: c.lastQ}
	c.pending = append(c.pending, &pendingQuestion{seq: q.seq})
	return q, nil
}

func (c *Controller) Answer(ctx context.Context, q Question) Answer {
	text, err := c.api.Ask(ctx, q.Text, q.VideoID)
	return Answer{Question: q, Text: text, Err: err}
}

// ResolveQuestion appends the assistant reply for a. Replies are released
// in submission order, so an early answer waits for the ones before it.
// Answers for a replaced video are dropped.
func (c *Controller) ResolveQuestion(a Answer) {
	if a.Question.gen != c.gen {
		return
	}
	for _, p := range c.pending {
		if p.seq == a.Question.seq {
			ans := a
			p.answer = &ans
			break
		}
	}
	for len(c.pending) > 0 && c.pending[0].answer != nil {
		ans := c.pending[0].answer
		c.pending = c.pending[1:]
		if ans.Err != nil {
			slog.Warn("question failed", "video", ans.Question.VideoID, "error", ans.Err)
		}
		c.appendMessage(RoleAssistant, ans.Reply())
	}
}

// ExpireBanner clears the banner identified by seq unless it has been
// replaced or is an error banner.
func (c *Controller) ExpireBanner(seq uint64) bool {
	if c.banner == nil || c.banner.Seq != seq || !c.banner.Kind.Expires() {
		return false
	}
	c.banner = nil
	return true
}

// LoadVideo runs a whole load, including the initialize call, synchronously.
func (c *Controller) LoadVideo(ctx context.Context, rawURL string) error {
	req, err := c.beginLoad(rawURL)
	if err != nil {
		return err
	}
	res := c.FetchVideo(ctx, req)
	init, ok := c.FinishLoad(res)
	if !ok {
		return res.Err
	}
	c.FinishInitialize(c.Initialize(ctx, init))
	return nil
}

// AskQuestion submits text and waits for the reply. The returned message is
// the assistant reply, also when the request failed.
func (c *Controller) AskQuestion(ctx context.Context, text string) (Message, error) {
	q, err := c.submitQuestion(text)
	if err != nil {
		return Message{}, err
	}
	a := c.Answer(ctx, q)
	c.ResolveQuestion(a)
	return c.messages[len(c.messages)-1], a.Err
}

// Video returns a copy of the current video.
func (c *Controller) Video() (Video, bool) {
	if c.video == nil {
		return Video{}, false
	}
	return *c.video, true
}

// Messages returns a copy of the transcript.
func (c *Controller) Messages() []Message {
	return append([]Message(nil), c.messages...)
}

// LastAnswer returns the most recent assistant message.
func (c *Controller) LastAnswer() (Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == RoleAssistant {
			return c.messages[i], true
		}
	}
	return Message{}, false
}

func (c *Controller) Banner() (Banner, bool) {
	if c.banner == nil {
		return Banner{}, false
	}
	return *c.banner, true
}

func (c *Controller) ChatVisible() bool {
	return c.chatVisible
}

// LoadingVideo reports whether a video load is in flight.
func (c *Controller) LoadingVideo() bool {
	return c.loads > 0
}

// Thinking reports whether any question is still waiting for its reply.
func (c *Controller) Thinking() bool {
	return len(c.pending) > 0
}

func (c *Controller) Loading() bool {
	return c.LoadingVideo() || c.Thinking()
}

func (c *Controller) setBanner(kind BannerKind, text string) {
	c.bannerSeq++
	c.banner = &Banner{Text: text, Kind: kind, Seq: c.bannerSeq}
}

func (c *Controller) appendMessage(role Role, text string) {
	m := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: c.now(),
	}
	c.messages = append(c.messages, m)

	if c.recorder != nil && c.video != nil {
		if err := c.recorder.RecordMessage(c.video.ExtractedID, m); err != nil {
			slog.Warn("record message failed", "video", c.video.ExtractedID, "error", err)
		}
	}
}
