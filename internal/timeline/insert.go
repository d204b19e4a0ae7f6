package timeline

// NewClip describes one media clip to place on the timeline: a resolved
// source reference plus the source interval to use. Resolution of the
// reference against the media library happens before this package is
// reached.
type NewClip struct {
	SourceRef string
	Type      ClipType
	SourceIn  float64
	SourceOut float64
}

// InsertSequence places items back-to-back starting at the given position.
// A cursor starts at `at` and advances by each clip's source-interval length,
// so the clips are contiguous in input order. Items that failed resolution
// never reach this function; successors simply close ranks behind them.
func InsertSequence(c Clips, at float64, items []NewClip) (Clips, []MediaClip) {
	out := c.Clone()
	inserted := make([]MediaClip, 0, len(items))
	var minted []string

	cursor := at
	for _, item := range items {
		t := item.Type
		if t == "" {
			t = ClipUnknown
		}
		track := DefaultTrack(t)
		length := item.SourceOut - item.SourceIn

		id := NextID(out, t, minted...)
		minted = append(minted, id)

		clip := MediaClip{
			ID:        id,
			Type:      t,
			Track:     track,
			SourceRef: item.SourceRef,
			SourceIn:  item.SourceIn,
			SourceOut: item.SourceOut,
			Start:     cursor,
			End:       cursor + length,
			ZIndex:    DefaultZIndex(track),
		}
		out.Media = append(out.Media, clip)
		inserted = append(inserted, clip)
		cursor += length
	}

	return out, inserted
}

// InsertText places a single text overlay on the timeline.
func InsertText(c Clips, text string, start, end float64) (Clips, TextClip) {
	out := c.Clone()
	clip := TextClip{
		ID:    NextID(out, ClipText),
		Text:  text,
		Start: start,
		End:   end,
	}
	out.Text = append(out.Text, clip)
	return out, clip
}
