package session

import (
	"time"

	"github.com/Zuo-Peng/thinktube/internal/backend"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry. Messages are never edited once appended.
type Message struct {
	ID        string
	Role      Role
	Text      string
	CreatedAt time.Time
}

// Video is the video currently being discussed.
type Video struct {
	RawURL      string
	ExtractedID string
	Initialized bool
	Info        *backend.VideoInfo // nil after a failed reload
}

type BannerKind int

const (
	BannerInfo BannerKind = iota
	BannerSuccess
	BannerError
)

func (k BannerKind) String() string {
	switch k {
	case BannerSuccess:
		return "success"
	case BannerError:
		return "error"
	default:
		return "info"
	}
}

// Expires reports whether banners of this kind clear themselves after BannerTTL.
func (k BannerKind) Expires() bool {
	return k != BannerError
}

// Banner is the status line. Seq identifies one particular banner so a
// delayed expiry cannot clear its replacement.
type Banner struct {
	Text string
	Kind BannerKind
	Seq  uint64
}

const (
	BannerTTL          = 5 * time.Second
	QuickQuestionDelay = 100 * time.Millisecond
)

const (
	Greeting = "👋 Hi! I've analyzed your video and I'm ready to answer any questions you have about it. What would you like to know?"

	TextEmptyURL   = "Please enter a YouTube URL"
	TextInvalidURL = "Please enter a valid YouTube URL"
	TextNoVideo    = "Please load a video first"
	TextLoaded     = "✅ Video loaded successfully! You can now ask questions."
)

type QuickQuestion struct {
	Label    string
	Question string
}

var QuickQuestions = []QuickQuestion{
	{Label: "📝 Summarize Video", Question: "Can you summarize this video?"},
	{Label: "🎯 Main Points", Question: "What are the main points discussed?"},
	{Label: "📚 Topics Covered", Question: "What topics are covered?"},
	{Label: "👥 Target Audience", Question: "Who is the target audience?"},
}
