package suggest

import (
	"slices"
	"testing"
)

func TestSuggest(t *testing.T) {
	s := New("Write release notes", "write unit tests")

	if got := s.Suggest("   ", 0); got != nil {
		t.Errorf("blank input suggested %v", got)
	}

	got := s.Suggest("test", 0)
	if !slices.Contains(got, "Write unit tests") {
		t.Errorf("Suggest(test) = %v, want it to include %q", got, "Write unit tests")
	}
	if len(got) > DefaultLimit {
		t.Errorf("Suggest returned %d items, limit is %d", len(got), DefaultLimit)
	}

	got = s.Suggest("rel", 1)
	if len(got) != 1 {
		t.Fatalf("Suggest(rel, 1) = %v", got)
	}

	if got := s.Suggest("zzzz", 0); len(got) != 0 {
		t.Errorf("Suggest(zzzz) = %v, want none", got)
	}

	if got := s.Suggest("Team meeting", 0); slices.Contains(got, "Team meeting") {
		t.Errorf("exact input suggested back: %v", got)
	}
}

func TestNewDeduplicates(t *testing.T) {
	s := New("write UNIT tests", "", "Brand new")
	count := 0
	for _, c := range s.candidates {
		if c == "Write unit tests" || c == "write UNIT tests" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("duplicate titles kept: %d", count)
	}
	if !slices.Contains(s.candidates, "Brand new") {
		t.Error("extra title missing")
	}
	if len(s.candidates) != len(Builtin())+1 {
		t.Errorf("candidates = %d, want %d", len(s.candidates), len(Builtin())+1)
	}
}

func TestCursorWraps(t *testing.T) {
	c := NewCursor([]string{"a", "b", "c"})
	if _, ok := c.Selected(); ok {
		t.Fatal("new cursor should have no selection")
	}

	c.Next()
	c.Next()
	c.Next()
	c.Next()
	if got, _ := c.Selected(); got != "a" {
		t.Errorf("after 4x Next: %q, want a", got)
	}

	c.Prev()
	if got, _ := c.Selected(); got != "c" {
		t.Errorf("Prev from first: %q, want c", got)
	}

	empty := NewCursor(nil)
	empty.Next()
	empty.Prev()
	if _, ok := empty.Selected(); ok {
		t.Error("empty cursor selected something")
	}
}
