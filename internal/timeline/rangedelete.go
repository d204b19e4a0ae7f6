package timeline

import (
	"fmt"
	"sort"
)

// TimeRange is a half-open interval of timeline seconds.
type TimeRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (r TimeRange) Length() float64 {
	return r.End - r.Start
}

// RangeDeleteResult reports what a single range deletion did.
type RangeDeleteResult struct {
	DeletedIDs []string `json:"deleted_ids"`
	CreatedIDs []string `json:"created_ids"`
	ShiftedIDs []string `json:"shifted_ids"`
	Duration   float64  `json:"duration"`
}

// DeleteRange removes the open time range [start, end) from the media
// collection. Overlapping clips are deleted, trimmed, or split depending on
// how they sit relative to the range, then every remaining clip starting at
// or after the range end is shifted left to close the gap. The ripple is
// uniform across tracks; only the interactive selection delete is
// track-aware.
func DeleteRange(c Clips, start, end float64) (Clips, RangeDeleteResult, error) {
	if start >= end {
		return c, RangeDeleteResult{}, fmt.Errorf("invalid range: start %.3f must be before end %.3f", start, end)
	}

	var minted []string
	allocate := func(t ClipType) string {
		id := NextID(c, t, minted...)
		minted = append(minted, id)
		return id
	}

	res := RangeDeleteResult{}
	var kept []MediaClip

	for _, m := range c.Media {
		overlaps := m.Start < end && m.End > start
		if !overlaps {
			kept = append(kept, m)
			continue
		}

		switch {
		case m.Start >= start && m.End <= end:
			// Fully contained: drop the clip.
			res.DeletedIDs = append(res.DeletedIDs, m.ID)

		case m.Start < start && m.End > end:
			// Spans the range: keep the two outer pieces, discard
			// the middle.
			before, right := splitMediaClip(m, start, allocate)
			_, after := splitMediaClip(right, end, allocate)
			kept = append(kept, before, after)
			res.DeletedIDs = append(res.DeletedIDs, m.ID)
			res.CreatedIDs = append(res.CreatedIDs, before.ID, after.ID)

		case m.Start < start:
			// Left overhang: keep only the piece before the range.
			before, _ := splitMediaClip(m, start, allocate)
			kept = append(kept, before)
			res.DeletedIDs = append(res.DeletedIDs, m.ID)
			res.CreatedIDs = append(res.CreatedIDs, before.ID)

		default:
			// Right overhang: keep only the piece after the range.
			_, after := splitMediaClip(m, end, allocate)
			kept = append(kept, after)
			res.DeletedIDs = append(res.DeletedIDs, m.ID)
			res.CreatedIDs = append(res.CreatedIDs, after.ID)
		}
	}

	shift := end - start
	for i := range kept {
		if kept[i].Start >= end {
			kept[i].Start -= shift
			kept[i].End -= shift
			res.ShiftedIDs = append(res.ShiftedIDs, kept[i].ID)
		}
	}

	out := Clips{Media: kept, Text: c.Clone().Text}
	res.Duration = out.Duration()
	return out, res, nil
}

// RangeOutcome is the per-range report of a multi-range deletion.
type RangeOutcome struct {
	Range   TimeRange `json:"range"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
	RangeDeleteResult
}

// DeleteRanges applies several range deletions to one timeline. Each range is
// validated independently; invalid ranges are reported as failed outcomes and
// the rest of the batch proceeds. Valid ranges are processed right-to-left so
// an earlier deletion's ripple cannot move a range that has not been handled
// yet; outcomes are reported in the caller's input order regardless.
func DeleteRanges(c Clips, ranges []TimeRange) (Clips, []RangeOutcome) {
	outcomes := make([]RangeOutcome, len(ranges))

	var order []int
	for i, r := range ranges {
		outcomes[i].Range = r
		if r.Start >= r.End {
			outcomes[i].Error = fmt.Sprintf("invalid range: start %.3f must be before end %.3f", r.Start, r.End)
			continue
		}
		order = append(order, i)
	}

	sort.Slice(order, func(a, b int) bool {
		return ranges[order[a]].Start > ranges[order[b]].Start
	})

	current := c
	for _, i := range order {
		next, res, err := DeleteRange(current, ranges[i].Start, ranges[i].End)
		if err != nil {
			outcomes[i].Error = err.Error()
			continue
		}
		current = next
		outcomes[i].Success = true
		outcomes[i].RangeDeleteResult = res
	}

	return current, outcomes
}
