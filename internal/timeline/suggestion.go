package timeline

import (
	"sort"

	"github.com/google/uuid"
)

// Suggestion previews insert provisional clips straight into the live
// document so the user can scrub them as if they were real. A provisional
// clip carries a temporary id and a correlation id back to its suggestion;
// it participates in duration exactly like a committed clip. Confirming
// replaces temporary ids with permanent sequential ones; cancelling removes
// the provisional clips and nothing else.

// AddSuggested inserts one provisional clip for the given suggestion. One
// suggestion maps to exactly one provisional clip at a time.
func AddSuggested(c Clips, suggestionID string, item NewClip, at float64) (Clips, MediaClip) {
	t := item.Type
	if t == "" {
		t = ClipUnknown
	}
	track := DefaultTrack(t)
	length := item.SourceOut - item.SourceIn

	clip := MediaClip{
		ID:           "suggested-clip-" + uuid.NewString()[:8],
		Type:         t,
		Track:        track,
		SourceRef:    item.SourceRef,
		SourceIn:     item.SourceIn,
		SourceOut:    item.SourceOut,
		Start:        at,
		End:          at + length,
		ZIndex:       DefaultZIndex(track),
		Provisional:  true,
		SuggestionID: suggestionID,
	}

	out := c.Clone()
	out.Media = append(out.Media, clip)
	return out, clip
}

// RemoveSuggested toggles a single suggestion preview off before confirm,
// removing the provisional clip by its clip id.
func RemoveSuggested(c Clips, clipID string) (Clips, bool) {
	out := c.Clone()
	for i, m := range out.Media {
		if m.ID == clipID && m.Provisional {
			out.Media = append(out.Media[:i], out.Media[i+1:]...)
			return out, true
		}
	}
	return c, false
}

// ConfirmSuggested commits every provisional clip: the provisional flag is
// cleared and the temporary id is swapped for a freshly allocated permanent
// one. Allocation runs in a stable order (timeline position, then id) against
// an accumulating set of already-confirmed ids, so simultaneously confirmed
// clips cannot collide with each other or with pre-existing permanent clips.
func ConfirmSuggested(c Clips) (Clips, map[string]string) {
	out := c.Clone()

	var order []int
	for i, m := range out.Media {
		if m.Provisional {
			order = append(order, i)
		}
	}
	sort.Slice(order, func(a, b int) bool {
		ca, cb := out.Media[order[a]], out.Media[order[b]]
		if ca.Start != cb.Start {
			return ca.Start < cb.Start
		}
		return ca.ID < cb.ID
	})

	renamed := make(map[string]string, len(order))
	var minted []string
	for _, i := range order {
		m := &out.Media[i]
		newID := NextID(out, m.Type, minted...)
		minted = append(minted, newID)
		renamed[m.ID] = newID
		m.ID = newID
		m.Provisional = false
		m.SuggestionID = ""
	}

	return out, renamed
}

// CancelSuggested removes every provisional clip and returns the ids that
// were dropped. Committed clips are untouched.
func CancelSuggested(c Clips) (Clips, []string) {
	out := Clips{Text: c.Clone().Text}
	var removed []string
	for _, m := range c.Media {
		if m.Provisional {
			removed = append(removed, m.ID)
			continue
		}
		out.Media = append(out.Media, m)
	}
	return out, removed
}
