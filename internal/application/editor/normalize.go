package editor

import (
	"strings"

	"github.com/msamy/portfolio-api/internal/domain/portfolio"
)

// Free-text list normalization. Single-line lists (tags, skills, timeline
// points) split on commas; multi-line "title | desc" lists split on
// newlines. Entries are trimmed and empties dropped, which makes the
// normalization idempotent: re-splitting a joined result reproduces the
// same list.

// SplitList turns comma separated free text into a trimmed list.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList is the inverse view SplitList accepts back unchanged.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// NormalizeList re-normalizes an already split list: trims entries and
// drops empties, preserving order.
func NormalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

// SplitLines turns newline separated free text into a trimmed list.
func SplitLines(s string) []string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// ParseSoftSkills reads one "title | desc" pair per line. Lines without a
// title are dropped; extra pipes stay inside the description.
func ParseSoftSkills(s string) []portfolio.SoftSkill {
	lines := strings.Split(s, "\n")
	out := make([]portfolio.SoftSkill, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		title, desc, _ := strings.Cut(line, "|")
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		out = append(out, portfolio.SoftSkill{
			Title: title,
			Desc:  strings.TrimSpace(desc),
		})
	}
	return out
}

// FormatSoftSkills renders pairs back into the editable multi-line form.
func FormatSoftSkills(skills []portfolio.SoftSkill) string {
	lines := make([]string, len(skills))
	for i, s := range skills {
		lines[i] = s.Title + " | " + s.Desc
	}
	return strings.Join(lines, "\n")
}
