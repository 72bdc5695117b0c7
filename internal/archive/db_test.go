package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Zuo-Peng/thinktube/internal/backend"
	"github.com/Zuo-Peng/thinktube/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func msg(id string, role session.Role, text string, at time.Time) session.Message {
	return session.Message{ID: id, Role: role, Text: text, CreatedAt: at}
}

func seed(t *testing.T, db *DB) {
	t.Helper()
	base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	db.now = func() time.Time { return base }
	require.NoError(t, db.RecordVideo(session.Video{
		RawURL:      "https://youtu.be/dQw4w9WgXcQ",
		ExtractedID: "dQw4w9WgXcQ",
		Info:        &backend.VideoInfo{Status: "ready"},
	}))
	require.NoError(t, db.RecordMessage("dQw4w9WgXcQ", msg("m1", session.RoleAssistant, session.Greeting, base)))
	require.NoError(t, db.RecordMessage("dQw4w9WgXcQ", msg("m2", session.RoleUser, "What is the chorus about?", base.Add(time.Second))))
	require.NoError(t, db.RecordMessage("dQw4w9WgXcQ", msg("m3", session.RoleAssistant, "The chorus is a promise of commitment.", base.Add(1500*time.Millisecond))))

	db.now = func() time.Time { return base.Add(time.Hour) }
	require.NoError(t, db.RecordVideo(session.Video{
		RawURL:      "https://www.youtube.com/live/jfKfPfyJRdk",
		ExtractedID: "jfKfPfyJRdk",
	}))
	require.NoError(t, db.RecordMessage("jfKfPfyJRdk", msg("m4", session.RoleUser, "视频讲了什么?", base.Add(time.Hour))))
}

func TestRecordAndList(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	videos, err := db.ListVideos(0)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "jfKfPfyJRdk", videos[0].VideoID, "most recently seen first")
	assert.Equal(t, 1, videos[0].MessageCount)
	assert.Equal(t, "dQw4w9WgXcQ", videos[1].VideoID)
	assert.Equal(t, "ready", videos[1].Status)
	assert.Equal(t, 3, videos[1].MessageCount)

	n, err := db.VideoCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = db.MessageCount()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestRecordVideoKeepsFirstSeen(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)
	before, err := db.GetVideo("dQw4w9WgXcQ")
	require.NoError(t, err)

	db.now = func() time.Time { return time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, db.RecordVideo(session.Video{RawURL: "https://youtube.com/watch?v=dQw4w9WgXcQ", ExtractedID: "dQw4w9WgXcQ"}))

	after, err := db.GetVideo("dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, before.FirstSeen, after.FirstSeen)
	assert.NotEqual(t, before.LastSeen, after.LastSeen)
	assert.Equal(t, "https://youtube.com/watch?v=dQw4w9WgXcQ", after.RawURL)

	missing, err := db.GetVideo("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMessagesInOrder(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	msgs, err := db.Messages("dQw4w9WgXcQ")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, []string{"m1", "m2", "m3"}, []string{msgs[0].ID, msgs[1].ID, msgs[2].ID})

	m := msgs[2].Message()
	assert.Equal(t, session.RoleAssistant, m.Role)
	assert.True(t, m.CreatedAt.Equal(time.Date(2026, 10, 16, 9, 0, 1, 500_000_000, time.UTC)))

	// duplicates are ignored
	require.NoError(t, db.RecordMessage("dQw4w9WgXcQ", msg("m2", session.RoleUser, "dup", time.Now())))
	msgs, err = db.Messages("dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Len(t, msgs, 3)
}

func TestSearchFTS(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	results, err := db.Search(SearchOptions{Query: "chorus"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, "dQw4w9WgXcQ", r.VideoID)
		assert.Contains(t, r.Snippet, ">>>chorus<<<")
	}

	results, err = db.Search(SearchOptions{Query: "chorus", Role: "assistant"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "m3", results[0].MessageID)

	// punctuation does not break the query parser
	results, err = db.Search(SearchOptions{Query: "chorus about?"})
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = db.Search(SearchOptions{Query: "chorus", VideoID: "jfKfPfyJRdk"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchCJK(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	results, err := db.Search(SearchOptions{Query: "视频"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "jfKfPfyJRdk", results[0].VideoID)
	assert.Contains(t, results[0].Snippet, ">>>视频<<<")
}

func TestSearchEmptyQuery(t *testing.T) {
	db := openTestDB(t)
	results, err := db.Search(SearchOptions{Query: "  "})
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestFTSQuery(t *testing.T) {
	assert.Equal(t, `"why" "is" "it"`, ftsQuery("why is it"))
	assert.Equal(t, `"a" OR "b?"`, ftsQuery("a OR b?"))
	assert.Equal(t, `"say""hi"""`, ftsQuery(`say"hi"`))
}

func TestMakeSnippet(t *testing.T) {
	assert.Equal(t, "...lo >>>wor<<<ld", makeSnippet("hello world", "wor", 3))
	assert.Equal(t, "abc", makeSnippet("abc", "zzz", 10))
}
