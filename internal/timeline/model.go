// Package timeline implements the clip data model and the pure editing
// algorithms of the Cutline Agent: split, range deletion with ripple,
// sequential insertion, selection edits, and suggestion previews.
//
// Every function in this package operates on an immutable Clips snapshot and
// returns a new one. Nothing here holds a reference to shared state; the
// editor session is the single owner of the live document.
package timeline

type ClipType string

const (
	ClipVideo   ClipType = "video"
	ClipAudio   ClipType = "audio"
	ClipImage   ClipType = "image"
	ClipUnknown ClipType = "unknown"
	ClipText    ClipType = "text"
)

type Track string

const (
	TrackPrimary   Track = "primary"
	TrackSecondary Track = "secondary"
	TrackAudio     Track = "audio"
	TrackImage     Track = "image"
)

// MediaClip is a non-destructive reference into a source media file placed on
// the shared timeline. SourceIn/SourceOut are offsets into the source;
// Start/End are timeline positions. Both intervals are in seconds and the
// editing algorithms assume a fixed linear mapping between them at the moment
// of an edit.
type MediaClip struct {
	ID        string   `json:"id"`
	Type      ClipType `json:"type"`
	Track     Track    `json:"track"`
	SourceRef string   `json:"source_ref"`
	SourceIn  float64  `json:"source_in"`
	SourceOut float64  `json:"source_out"`
	Start     float64  `json:"start"`
	End       float64  `json:"end"`
	ZIndex    int      `json:"z_index"`

	// Provisional marks a suggestion-preview clip that has not been
	// confirmed yet. SuggestionID correlates it back to the suggestion
	// that produced it.
	Provisional  bool   `json:"provisional,omitempty"`
	SuggestionID string `json:"suggestion_id,omitempty"`
}

func (c MediaClip) Duration() float64 {
	return c.End - c.Start
}

// TextClip is a synthesized overlay; it has no source interval to trim.
type TextClip struct {
	ID    string  `json:"id"`
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (c TextClip) Duration() float64 {
	return c.End - c.Start
}

// Clips is the timeline document: insertion-ordered, not time-ordered.
// Treat values as immutable; editing functions return fresh collections.
type Clips struct {
	Media []MediaClip `json:"media"`
	Text  []TextClip  `json:"text"`
}

// Duration derives the total timeline length: the maximum End across both
// collections, 0 when empty. It is recomputed after every mutation and never
// stored as an independent source of truth.
func (c Clips) Duration() float64 {
	var max float64
	for _, m := range c.Media {
		if m.End > max {
			max = m.End
		}
	}
	for _, t := range c.Text {
		if t.End > max {
			max = t.End
		}
	}
	return max
}

// Clone deep-copies the collections so callers can build a new snapshot
// without aliasing the previous one.
func (c Clips) Clone() Clips {
	out := Clips{}
	if len(c.Media) > 0 {
		out.Media = make([]MediaClip, len(c.Media))
		copy(out.Media, c.Media)
	}
	if len(c.Text) > 0 {
		out.Text = make([]TextClip, len(c.Text))
		copy(out.Text, c.Text)
	}
	return out
}

func (c Clips) MediaByID(id string) (MediaClip, bool) {
	for _, m := range c.Media {
		if m.ID == id {
			return m, true
		}
	}
	return MediaClip{}, false
}

func (c Clips) TextByID(id string) (TextClip, bool) {
	for _, t := range c.Text {
		if t.ID == id {
			return t, true
		}
	}
	return TextClip{}, false
}

// DefaultTrack maps a clip type to the track it lands on when inserted
// without an explicit placement.
func DefaultTrack(t ClipType) Track {
	switch t {
	case ClipAudio:
		return TrackAudio
	case ClipImage:
		return TrackImage
	case ClipVideo:
		return TrackPrimary
	default:
		return TrackSecondary
	}
}

// DefaultZIndex returns the default stacking order for a track.
func DefaultZIndex(tr Track) int {
	switch tr {
	case TrackImage:
		return 20
	case TrackSecondary:
		return 10
	default:
		return 0
	}
}

// Selection is the ephemeral pair of id sets the interactive edits operate
// on. It is never persisted.
type Selection struct {
	MediaIDs []string `json:"media_ids"`
	TextIDs  []string `json:"text_ids"`
}

func (s Selection) Empty() bool {
	return len(s.MediaIDs) == 0 && len(s.TextIDs) == 0
}

func (s Selection) Size() int {
	return len(s.MediaIDs) + len(s.TextIDs)
}
