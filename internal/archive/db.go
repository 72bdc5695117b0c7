package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Zuo-Peng/thinktube/internal/session"
	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS videos (
    video_id   TEXT PRIMARY KEY,
    raw_url    TEXT NOT NULL,
    status     TEXT NOT NULL DEFAULT '',
    first_seen TEXT NOT NULL,
    last_seen  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
    id         TEXT PRIMARY KEY,
    video_id   TEXT NOT NULL,
    role       TEXT NOT NULL,
    text       TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS messages_video ON messages(video_id, created_at);

CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
    text,
    content=messages,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, text) VALUES (new.rowid, new.text);
END;

CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, text) VALUES('delete', old.rowid, old.text);
END;
`

// tsLayout is fixed width so timestamps sort as strings.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DB is an append-only log of loaded videos and chat messages. Nothing in
// it is fed back into a live session.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &DB{db: db, now: time.Now}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

// RecordVideo upserts a loaded video, keeping its first_seen time.
func (d *DB) RecordVideo(v session.Video) error {
	status := ""
	if v.Info != nil {
		status = v.Info.Status
	}
	ts := d.now().UTC().Format(tsLayout)
	_, err := d.db.Exec(`
		INSERT INTO videos (video_id, raw_url, status, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			raw_url = excluded.raw_url,
			status = excluded.status,
			last_seen = excluded.last_seen`,
		v.ExtractedID, v.RawURL, status, ts, ts,
	)
	if err != nil {
		return fmt.Errorf("record video %s: %w", v.ExtractedID, err)
	}
	return nil
}

func (d *DB) RecordMessage(videoID string, m session.Message) error {
	_, err := d.db.Exec(
		"INSERT OR IGNORE INTO messages (id, video_id, role, text, created_at) VALUES (?, ?, ?, ?, ?)",
		m.ID, videoID, string(m.Role), m.Text, m.CreatedAt.UTC().Format(tsLayout),
	)
	if err != nil {
		return fmt.Errorf("record message: %w", err)
	}
	return nil
}

type VideoRow struct {
	VideoID      string `json:"video_id" yaml:"video_id"`
	RawURL       string `json:"raw_url" yaml:"raw_url"`
	Status       string `json:"status" yaml:"status"`
	FirstSeen    string `json:"first_seen" yaml:"first_seen"`
	LastSeen     string `json:"last_seen" yaml:"last_seen"`
	MessageCount int    `json:"message_count" yaml:"message_count"`
}

type MessageRow struct {
	ID        string `json:"id" yaml:"id"`
	VideoID   string `json:"video_id" yaml:"video_id"`
	Role      string `json:"role" yaml:"role"`
	Text      string `json:"text" yaml:"text"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// Message converts the row back to a transcript message.
func (r MessageRow) Message() session.Message {
	t, _ := time.Parse(tsLayout, r.CreatedAt)
	return session.Message{
		ID:        r.ID,
		Role:      session.Role(r.Role),
		Text:      r.Text,
		CreatedAt: t,
	}
}

// ListVideos returns archived videos, most recently seen first.
func (d *DB) ListVideos(limit int) ([]VideoRow, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := d.db.Query(`
		SELECT v.video_id, v.raw_url, v.status, v.first_seen, v.last_seen,
			(SELECT COUNT(*) FROM messages m WHERE m.video_id = v.video_id)
		FROM videos v
		ORDER BY v.last_seen DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []VideoRow
	for rows.Next() {
		var v VideoRow
		if err := rows.Scan(&v.VideoID, &v.RawURL, &v.Status, &v.FirstSeen, &v.LastSeen, &v.MessageCount); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func (d *DB) GetVideo(videoID string) (*VideoRow, error) {
	var v VideoRow
	err := d.db.QueryRow(
		"SELECT video_id, raw_url, status, first_seen, last_seen FROM videos WHERE video_id = ?",
		videoID,
	).Scan(&v.VideoID, &v.RawURL, &v.Status, &v.FirstSeen, &v.LastSeen)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Messages returns every archived message for a video in the order they
// were appended.
func (d *DB) Messages(videoID string) ([]MessageRow, error) {
	rows, err := d.db.Query(
		"SELECT id, video_id, role, text, created_at FROM messages WHERE video_id = ? ORDER BY created_at, rowid",
		videoID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []MessageRow
	for rows.Next() {
		var m MessageRow
		if err := rows.Scan(&m.ID, &m.VideoID, &m.Role, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (d *DB) VideoCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM videos").Scan(&n)
	return n, err
}

func (d *DB) MessageCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}
