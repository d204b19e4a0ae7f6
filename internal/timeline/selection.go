package timeline

import (
	"errors"
	"sort"
)

var (
	ErrNoSelection    = errors.New("no clip selected")
	ErrMultiSelection = errors.New("select exactly one clip to split")
	ErrOutOfBounds    = errors.New("playhead is outside the selected clip")
)

// SplitSelected cuts the single selected clip at the playhead. It requires
// exactly one selected clip (media or text) and a playhead strictly inside
// its bounds; each violation is a distinct, user-facing error.
func SplitSelected(c Clips, sel Selection, playhead float64) (Clips, SplitResult, error) {
	if sel.Empty() {
		return c, SplitResult{}, ErrNoSelection
	}
	if sel.Size() > 1 {
		return c, SplitResult{}, ErrMultiSelection
	}

	if len(sel.MediaIDs) == 1 {
		clip, ok := c.MediaByID(sel.MediaIDs[0])
		if !ok {
			return c, SplitResult{}, ErrNoSelection
		}
		if playhead <= clip.Start || playhead >= clip.End {
			return c, SplitResult{}, ErrOutOfBounds
		}
		return SplitMedia(c, clip.ID, playhead)
	}

	clip, ok := c.TextByID(sel.TextIDs[0])
	if !ok {
		return c, SplitResult{}, ErrNoSelection
	}
	if playhead <= clip.Start || playhead >= clip.End {
		return c, SplitResult{}, ErrOutOfBounds
	}
	return SplitText(c, clip.ID, playhead)
}

// DuplicateSelected copies every selected clip in place: identical timing and
// position, fresh id. Duplicates deliberately overlap their originals; the
// user drags them where they want them.
func DuplicateSelected(c Clips, sel Selection) (Clips, []string, error) {
	if sel.Empty() {
		return c, nil, ErrNoSelection
	}

	out := c.Clone()
	var created []string
	var minted []string

	for _, id := range sel.MediaIDs {
		clip, ok := out.MediaByID(id)
		if !ok {
			continue
		}
		dup := clip
		dup.ID = NextID(out, clip.Type, minted...)
		minted = append(minted, dup.ID)
		out.Media = append(out.Media, dup)
		created = append(created, dup.ID)
	}
	for _, id := range sel.TextIDs {
		clip, ok := out.TextByID(id)
		if !ok {
			continue
		}
		dup := clip
		dup.ID = NextID(out, ClipText, minted...)
		minted = append(minted, dup.ID)
		out.Text = append(out.Text, dup)
		created = append(created, dup.ID)
	}

	return out, created, nil
}

// DeleteSelectedResult reports what an interactive deletion did.
type DeleteSelectedResult struct {
	RemovedIDs []string `json:"removed_ids"`
	ShiftedIDs []string `json:"shifted_ids"`
	Rippled    bool     `json:"rippled"`
	Duration   float64  `json:"duration"`
}

// DeleteSelected removes the selected clips. Ripple is decided by an
// aggregate rule: if any selected media clip sits on the primary track the
// deletion is treated as removing narration, and survivors on the primary,
// secondary, and image tracks shift left to close the gaps (text always
// follows the ripple, audio never does). Without a primary clip in the
// selection the clips are simply removed and other tracks keep their timing.
//
// Note this policy intentionally differs from DeleteRange, which ripples all
// tracks uniformly; the two are reachable through different entry points and
// both behaviors are load-bearing.
func DeleteSelected(c Clips, sel Selection) (Clips, DeleteSelectedResult, error) {
	if sel.Empty() {
		return c, DeleteSelectedResult{}, ErrNoSelection
	}

	mediaSel := make(map[string]bool, len(sel.MediaIDs))
	for _, id := range sel.MediaIDs {
		mediaSel[id] = true
	}
	textSel := make(map[string]bool, len(sel.TextIDs))
	for _, id := range sel.TextIDs {
		textSel[id] = true
	}

	res := DeleteSelectedResult{}
	var bands []TimeRange
	ripple := false

	out := Clips{}
	for _, m := range c.Media {
		if !mediaSel[m.ID] {
			out.Media = append(out.Media, m)
			continue
		}
		res.RemovedIDs = append(res.RemovedIDs, m.ID)
		bands = append(bands, TimeRange{Start: m.Start, End: m.End})
		if m.Track == TrackPrimary {
			ripple = true
		}
	}
	for _, t := range c.Text {
		if !textSel[t.ID] {
			out.Text = append(out.Text, t)
			continue
		}
		res.RemovedIDs = append(res.RemovedIDs, t.ID)
		bands = append(bands, TimeRange{Start: t.Start, End: t.End})
	}

	if ripple {
		merged := mergeBands(bands)
		for i := range out.Media {
			m := &out.Media[i]
			if m.Track == TrackAudio {
				continue
			}
			if off := offsetAt(merged, m.Start); off > 0 {
				m.Start -= off
				m.End -= off
				res.ShiftedIDs = append(res.ShiftedIDs, m.ID)
			}
		}
		for i := range out.Text {
			t := &out.Text[i]
			if off := offsetAt(merged, t.Start); off > 0 {
				t.Start -= off
				t.End -= off
				res.ShiftedIDs = append(res.ShiftedIDs, t.ID)
			}
		}
	}

	res.Rippled = ripple
	res.Duration = out.Duration()
	return out, res, nil
}

// mergeBands sorts extents by start and coalesces overlapping or touching
// ones into disjoint bands.
func mergeBands(bands []TimeRange) []TimeRange {
	if len(bands) == 0 {
		return nil
	}
	sorted := make([]TimeRange, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(a, b int) bool {
		return sorted[a].Start < sorted[b].Start
	})

	merged := []TimeRange{sorted[0]}
	for _, b := range sorted[1:] {
		last := &merged[len(merged)-1]
		if b.Start <= last.End {
			if b.End > last.End {
				last.End = b.End
			}
			continue
		}
		merged = append(merged, b)
	}
	return merged
}

// offsetAt returns the cumulative deleted time before position s: the length
// of every band below s, counting a band s falls inside only up to s. A clip
// shifts by the offset at its own start so its duration is preserved.
func offsetAt(merged []TimeRange, s float64) float64 {
	var off float64
	for _, b := range merged {
		if s <= b.Start {
			break
		}
		end := b.End
		if s < end {
			end = s
		}
		off += end - b.Start
	}
	return off
}
