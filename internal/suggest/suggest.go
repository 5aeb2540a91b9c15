// Package suggest offers title completions while a task is being typed.
package suggest

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

const DefaultLimit = 5

var builtin = []string{
	"Review pull request", "Update documentation", "Fix bug in auth", "Implement new feature",
	"Write unit tests", "Optimize database query", "Deploy to staging", "Refactor legacy code",
	"Design new mockup", "Team meeting", "Code review", "Client call", "Plan sprint",
	"Update dependencies", "Research new technology",
}

// Builtin returns the stock title suggestions.
func Builtin() []string {
	return append([]string(nil), builtin...)
}

type Suggester struct {
	candidates []string
}

// New builds a suggester over the stock titles plus extra (usually the titles
// already on the board). Duplicates are dropped case-insensitively.
func New(extra ...string) *Suggester {
	seen := make(map[string]bool, len(builtin)+len(extra))
	var out []string
	for _, c := range append(Builtin(), extra...) {
		c = strings.TrimSpace(c)
		key := strings.ToLower(c)
		if c == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return &Suggester{candidates: out}
}

// Suggest ranks candidates by fuzzy match quality against input. Empty input
// gives no suggestions. A candidate equal to the input is not suggested.
func (s *Suggester) Suggest(input string, limit int) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	matches := fuzzy.Find(input, s.candidates)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})

	var out []string
	for _, m := range matches {
		if strings.EqualFold(m.Str, input) {
			continue
		}
		out = append(out, m.Str)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Cursor tracks the highlighted suggestion. -1 means nothing is highlighted.
type Cursor struct {
	Items []string
	Index int
}

func NewCursor(items []string) Cursor {
	return Cursor{Items: items, Index: -1}
}

func (c *Cursor) Next() {
	if len(c.Items) == 0 {
		return
	}
	c.Index = (c.Index + 1) % len(c.Items)
}

func (c *Cursor) Prev() {
	if len(c.Items) == 0 {
		return
	}
	if c.Index <= 0 {
		c.Index = len(c.Items) - 1
		return
	}
	c.Index--
}

func (c Cursor) Selected() (string, bool) {
	if c.Index < 0 || c.Index >= len(c.Items) {
		return "", false
	}
	return c.Items[c.Index], true
}
