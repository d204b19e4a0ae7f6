package timeline

import "fmt"

// SplitResult reports the two halves a split produced.
type SplitResult struct {
	RemovedID string   `json:"removed_id"`
	BeforeID  string   `json:"before_id"`
	AfterID   string   `json:"after_id"`
	Position  float64  `json:"position"`
	Duration  float64  `json:"duration"`
}

// SplitMedia cuts the media clip with the given id into two at timeline
// position at. The source interval is remapped proportionally so both halves
// keep the linear timeline-to-source mapping of the original. The split point
// must lie strictly inside the clip: cutting exactly on an edge would mint a
// zero-length clip and is rejected.
func SplitMedia(c Clips, clipID string, at float64) (Clips, SplitResult, error) {
	clip, ok := c.MediaByID(clipID)
	if !ok {
		return c, SplitResult{}, fmt.Errorf("clip %s not found", clipID)
	}
	if at <= clip.Start || at >= clip.End {
		return c, SplitResult{}, fmt.Errorf("split position %.3f is outside clip bounds (%.3f, %.3f)", at, clip.Start, clip.End)
	}

	ratio := (at - clip.Start) / (clip.End - clip.Start)
	sourceSplit := clip.SourceIn + ratio*(clip.SourceOut-clip.SourceIn)

	before := clip
	before.ID = NextID(c, clip.Type)
	before.End = at
	before.SourceOut = sourceSplit

	after := clip
	// Allocate against a set that already contains before, or both halves
	// would receive the same id.
	after.ID = NextID(c, clip.Type, before.ID)
	after.Start = at
	after.SourceIn = sourceSplit

	out := c.Clone()
	for i := range out.Media {
		if out.Media[i].ID == clipID {
			out.Media = append(out.Media[:i], out.Media[i+1:]...)
			break
		}
	}
	out.Media = append(out.Media, before, after)

	return out, SplitResult{
		RemovedID: clipID,
		BeforeID:  before.ID,
		AfterID:   after.ID,
		Position:  at,
		Duration:  out.Duration(),
	}, nil
}

// SplitText cuts a text clip in two at the given position. Text has no
// source interval, so only the timeline extents change.
func SplitText(c Clips, clipID string, at float64) (Clips, SplitResult, error) {
	clip, ok := c.TextByID(clipID)
	if !ok {
		return c, SplitResult{}, fmt.Errorf("clip %s not found", clipID)
	}
	if at <= clip.Start || at >= clip.End {
		return c, SplitResult{}, fmt.Errorf("split position %.3f is outside clip bounds (%.3f, %.3f)", at, clip.Start, clip.End)
	}

	before := clip
	before.ID = NextID(c, ClipText)
	before.End = at

	after := clip
	after.ID = NextID(c, ClipText, before.ID)
	after.Start = at

	out := c.Clone()
	for i := range out.Text {
		if out.Text[i].ID == clipID {
			out.Text = append(out.Text[:i], out.Text[i+1:]...)
			break
		}
	}
	out.Text = append(out.Text, before, after)

	return out, SplitResult{
		RemovedID: clipID,
		BeforeID:  before.ID,
		AfterID:   after.ID,
		Position:  at,
		Duration:  out.Duration(),
	}, nil
}

// splitMediaClip cuts one clip value into two without touching a collection.
// Used by range deletion, which allocates ids against a working set it
// threads through the whole operation.
func splitMediaClip(clip MediaClip, at float64, allocate func(ClipType) string) (MediaClip, MediaClip) {
	ratio := (at - clip.Start) / (clip.End - clip.Start)
	sourceSplit := clip.SourceIn + ratio*(clip.SourceOut-clip.SourceIn)

	before := clip
	before.ID = allocate(clip.Type)
	before.End = at
	before.SourceOut = sourceSplit

	after := clip
	after.ID = allocate(clip.Type)
	after.Start = at
	after.SourceIn = sourceSplit

	return before, after
}
