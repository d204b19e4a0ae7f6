package timeline

import (
	"strings"
	"testing"
)

func addThreeSuggestions(t *testing.T) Clips {
	t.Helper()
	c := Clips{Media: []MediaClip{testClip("video-clip-1", 0, 10)}}
	item := NewClip{SourceRef: "broll-1", Type: ClipVideo, SourceIn: 0, SourceOut: 2}
	c, _ = AddSuggested(c, "sug-1", item, 2)
	c, _ = AddSuggested(c, "sug-2", item, 4)
	c, _ = AddSuggested(c, "sug-3", item, 6)
	return c
}

func TestAddSuggested(t *testing.T) {
	c := Clips{}
	out, clip := AddSuggested(c, "sug-1", NewClip{SourceRef: "b", Type: ClipVideo, SourceOut: 3}, 5)

	if !clip.Provisional || clip.SuggestionID != "sug-1" {
		t.Fatalf("suggested clip not provisional: %+v", clip)
	}
	if !strings.HasPrefix(clip.ID, "suggested-clip-") {
		t.Fatalf("provisional id = %q", clip.ID)
	}
	if clip.Start != 5 || clip.End != 8 {
		t.Fatalf("suggested clip at [%v,%v], want [5,8]", clip.Start, clip.End)
	}
	// Previewed clips count toward duration like committed ones.
	if out.Duration() != 8 {
		t.Fatalf("duration = %v, want 8", out.Duration())
	}
}

func TestRemoveSuggested(t *testing.T) {
	c := addThreeSuggestions(t)
	target := c.Media[1].ID

	out, removed := RemoveSuggested(c, target)
	if !removed {
		t.Fatal("RemoveSuggested reported no removal")
	}
	if _, ok := out.MediaByID(target); ok {
		t.Fatal("clip still present after removal")
	}
	if len(out.Media) != 3 {
		t.Fatalf("got %d clips, want 3", len(out.Media))
	}

	// Committed clips cannot be removed through the suggestion path.
	if _, removed := RemoveSuggested(out, "video-clip-1"); removed {
		t.Fatal("RemoveSuggested dropped a committed clip")
	}
}

func TestConfirmSuggested(t *testing.T) {
	c := addThreeSuggestions(t)

	out, renamed := ConfirmSuggested(c)
	if len(renamed) != 3 {
		t.Fatalf("renamed %d clips, want 3", len(renamed))
	}
	if len(out.Media) != 4 {
		t.Fatalf("got %d clips, want 4", len(out.Media))
	}

	seen := map[string]bool{}
	for _, m := range out.Media {
		if m.Provisional || m.SuggestionID != "" {
			t.Fatalf("clip %s still provisional after confirm", m.ID)
		}
		if strings.HasPrefix(m.ID, "suggested-clip-") {
			t.Fatalf("clip kept temporary id %s", m.ID)
		}
		if seen[m.ID] {
			t.Fatalf("id collision on %s after confirm", m.ID)
		}
		seen[m.ID] = true
	}

	// Sequential ids continue past the pre-existing permanent clip.
	for _, want := range []string{"video-clip-2", "video-clip-3", "video-clip-4"} {
		if !seen[want] {
			t.Fatalf("expected permanent id %s, have %v", want, seen)
		}
	}
}

func TestCancelSuggested(t *testing.T) {
	c := addThreeSuggestions(t)

	out, removed := CancelSuggested(c)
	if len(removed) != 3 {
		t.Fatalf("removed %d clips, want 3", len(removed))
	}
	if len(out.Media) != 1 || out.Media[0].ID != "video-clip-1" {
		t.Fatalf("committed clip disturbed: %+v", out.Media)
	}
}
