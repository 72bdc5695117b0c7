package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Zuo-Peng/thinktube/internal/session"
	"github.com/mattn/go-runewidth"
)

const (
	colorReset   = "\033[0m"
	colorUser    = "\033[1;34m" // bold blue
	colorAssist  = "\033[1;32m" // bold green
	colorDim     = "\033[2m"
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

type Options struct {
	Width  int    // wrap width (0 = no wrap)
	Color  bool   // emit ANSI colors
	Query  string // keywords to highlight
	Header string // optional first line
}

var ftsOperators = map[string]bool{"AND": true, "OR": true, "NOT": true, "NEAR": true}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	for _, term := range strings.Fields(query) {
		if ftsOperators[term] {
			continue
		}
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			idx := strings.Index(strings.ToLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// WrapLine breaks a single line into lines that fit within maxWidth visible
// columns, skipping ANSI escape sequences when measuring width.
func WrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth && visW > 0 {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// Wrap wraps every line of a multi-line text.
func Wrap(text string, maxWidth int) string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		out = append(out, WrapLine(l, maxWidth)...)
	}
	return strings.Join(out, "\n")
}

// Transcript renders chat messages as labelled, indented blocks.
func Transcript(msgs []session.Message, opts Options) string {
	var b strings.Builder
	paint := func(color, s string) string {
		if !opts.Color {
			return s
		}
		return color + s + colorReset
	}
	writeLine := func(s string) {
		for _, wl := range WrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
		}
	}

	if opts.Header != "" {
		writeLine(paint(colorDim, "--- "+opts.Header+" ---"))
	}
	if len(msgs) == 0 {
		writeLine("(empty transcript)")
		return b.String()
	}

	for i, m := range msgs {
		if i > 0 {
			writeLine("")
		}

		var label, color string
		switch m.Role {
		case session.RoleUser:
			label, color = "YOU", colorUser
		case session.RoleAssistant:
			label, color = "ASST", colorAssist
		default:
			label, color = strings.ToUpper(string(m.Role)), colorDim
		}

		ts := ""
		if !m.CreatedAt.IsZero() {
			ts = m.CreatedAt.Local().Format("15:04")
		}
		writeLine(fmt.Sprintf("%s %s", paint(color, label+" >"), paint(colorDim, ts)))

		text := m.Text
		if opts.Color {
			text = highlightKeywords(text, opts.Query)
		}
		for _, tl := range strings.Split(indentLines(text, "  "), "\n") {
			writeLine(tl)
		}
	}
	return b.String()
}

// Snippet turns the >>> <<< markers of a search snippet into highlights,
// or strips them when color is off.
func Snippet(s string, color bool) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	if !color {
		s = strings.ReplaceAll(s, ">>>", "")
		return strings.ReplaceAll(s, "<<<", "")
	}
	s = strings.ReplaceAll(s, ">>>", colorBoldRed)
	return strings.ReplaceAll(s, "<<<", colorReset)
}
