package archive

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"
)

type Result struct {
	MessageID string  `json:"message_id" yaml:"message_id"`
	VideoID   string  `json:"video_id" yaml:"video_id"`
	RawURL    string  `json:"raw_url" yaml:"raw_url"`
	Role      string  `json:"role" yaml:"role"`
	CreatedAt string  `json:"created_at" yaml:"created_at"`
	Snippet   string  `json:"snippet" yaml:"snippet"`
	Rank      float64 `json:"rank" yaml:"rank"`
}

type SearchOptions struct {
	Query   string
	VideoID string // "" = all videos
	Role    string // "" = all, "user", "assistant"
	Since   string // "" = no filter, e.g. "2026-01-01"
	Limit   int
}

// containsCJK returns true if the string contains any CJK Unified Ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

var ftsOperators = map[string]bool{"AND": true, "OR": true, "NOT": true, "NEAR": true}

// ftsQuery quotes every term so punctuation in a question ("why?") does not
// trip the FTS5 query parser. Upper-case operators pass through.
func ftsQuery(q string) string {
	terms := strings.Fields(q)
	for i, t := range terms {
		if ftsOperators[t] {
			continue
		}
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, strings.ToLower(query))
	runes := []rune(text)
	if idx < 0 {
		if len(runes) > contextChars*2 {
			return string(runes[:contextChars*2]) + "..."
		}
		return text
	}
	qLen := len([]rune(query))
	runePos := len([]rune(text[:idx]))
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + qLen + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix, suffix := "", ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	return prefix + string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+qLen]) + "<<<" +
		string(runes[runePos+qLen:end]) + suffix
}

func (d *DB) Search(opts SearchOptions) ([]Result, error) {
	if strings.TrimSpace(opts.Query) == "" {
		return nil, nil
	}
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if containsCJK(opts.Query) {
		return d.searchLike(opts)
	}
	return d.searchFTS(opts)
}

func filters(opts SearchOptions, conditions []string, args []any) ([]string, []any) {
	if opts.VideoID != "" {
		conditions = append(conditions, "m.video_id = ?")
		args = append(args, opts.VideoID)
	}
	if opts.Role != "" {
		conditions = append(conditions, "m.role = ?")
		args = append(args, opts.Role)
	}
	if opts.Since != "" {
		conditions = append(conditions, "m.created_at >= ?")
		args = append(args, opts.Since)
	}
	return conditions, args
}

func (d *DB) searchFTS(opts SearchOptions) ([]Result, error) {
	conditions, args := filters(opts,
		[]string{"messages_fts MATCH ?"},
		[]any{ftsQuery(opts.Query)},
	)

	query := fmt.Sprintf(`
		SELECT
			m.id,
			m.video_id,
			v.raw_url,
			m.role,
			m.created_at,
			snippet(messages_fts, 0, '>>>', '<<<', '...', 24) AS snip,
			bm25(messages_fts) AS rank
		FROM messages_fts
		JOIN messages m ON messages_fts.rowid = m.rowid
		JOIN videos v ON v.video_id = m.video_id
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, strings.Join(conditions, " AND "))
	args = append(args, opts.Limit)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func (d *DB) searchLike(opts SearchOptions) ([]Result, error) {
	conditions, args := filters(opts,
		[]string{"m.text LIKE ?"},
		[]any{"%" + opts.Query + "%"},
	)

	query := fmt.Sprintf(`
		SELECT m.id, m.video_id, v.raw_url, m.role, m.created_at, m.text
		FROM messages m
		JOIN videos v ON v.video_id = m.video_id
		WHERE %s
		ORDER BY m.created_at DESC
		LIMIT ?
	`, strings.Join(conditions, " AND "))
	args = append(args, opts.Limit)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var fullText string
		if err := rows.Scan(&r.MessageID, &r.VideoID, &r.RawURL, &r.Role, &r.CreatedAt, &fullText); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(fullText, opts.Query, 30)
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.MessageID, &r.VideoID, &r.RawURL, &r.Role, &r.CreatedAt, &r.Snippet, &r.Rank); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
