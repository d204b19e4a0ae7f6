package timeline

import (
	"math"
	"testing"
)

func testClip(id string, start, end float64) MediaClip {
	return MediaClip{
		ID:        id,
		Type:      ClipVideo,
		Track:     TrackPrimary,
		SourceRef: "media-1",
		SourceIn:  0,
		SourceOut: end - start,
		Start:     start,
		End:       end,
	}
}

func TestSplitMedia_Exactness(t *testing.T) {
	c := Clips{Media: []MediaClip{testClip("video-clip-1", 2, 10)}}

	out, res, err := SplitMedia(c, "video-clip-1", 5)
	if err != nil {
		t.Fatalf("SplitMedia error = %v", err)
	}

	if _, ok := out.MediaByID("video-clip-1"); ok {
		t.Fatal("original clip still present after split")
	}
	before, ok := out.MediaByID(res.BeforeID)
	if !ok {
		t.Fatalf("before clip %s missing", res.BeforeID)
	}
	after, ok := out.MediaByID(res.AfterID)
	if !ok {
		t.Fatalf("after clip %s missing", res.AfterID)
	}

	if before.Start != 2 || before.End != 5 || after.Start != 5 || after.End != 10 {
		t.Fatalf("split extents wrong: before [%v,%v], after [%v,%v]", before.Start, before.End, after.Start, after.End)
	}
	if before.End != after.Start {
		t.Fatalf("gap or overlap at split point: %v vs %v", before.End, after.Start)
	}
}

func TestSplitMedia_SourceRemap(t *testing.T) {
	clip := MediaClip{
		ID: "video-clip-1", Type: ClipVideo, Track: TrackPrimary,
		SourceIn: 10, SourceOut: 30,
		Start: 0, End: 10,
	}
	c := Clips{Media: []MediaClip{clip}}

	out, res, err := SplitMedia(c, "video-clip-1", 2.5)
	if err != nil {
		t.Fatalf("SplitMedia error = %v", err)
	}

	before, _ := out.MediaByID(res.BeforeID)
	after, _ := out.MediaByID(res.AfterID)

	// 25% into a [10,30] source interval is 15.
	if math.Abs(before.SourceOut-15) > 1e-9 || math.Abs(after.SourceIn-15) > 1e-9 {
		t.Fatalf("source split point wrong: before.SourceOut=%v after.SourceIn=%v, want 15", before.SourceOut, after.SourceIn)
	}
	if before.SourceIn != 10 || after.SourceOut != 30 {
		t.Fatalf("outer source bounds changed: %v, %v", before.SourceIn, after.SourceOut)
	}
}

func TestSplitMedia_RejectsBoundaries(t *testing.T) {
	c := Clips{Media: []MediaClip{testClip("video-clip-1", 2, 10)}}

	for _, at := range []float64{2, 10, 1, 11} {
		if _, _, err := SplitMedia(c, "video-clip-1", at); err == nil {
			t.Errorf("SplitMedia at %v succeeded, want validation error", at)
		}
	}
}

func TestSplitMedia_UnknownClip(t *testing.T) {
	if _, _, err := SplitMedia(Clips{}, "video-clip-9", 1); err == nil {
		t.Fatal("SplitMedia on missing clip succeeded")
	}
}

func TestSplitMedia_DistinctIDs(t *testing.T) {
	c := Clips{Media: []MediaClip{testClip("video-clip-1", 0, 10)}}
	out, res, err := SplitMedia(c, "video-clip-1", 4)
	if err != nil {
		t.Fatalf("SplitMedia error = %v", err)
	}
	if res.BeforeID == res.AfterID {
		t.Fatalf("both halves got id %q", res.BeforeID)
	}
	seen := map[string]bool{}
	for _, m := range out.Media {
		if seen[m.ID] {
			t.Fatalf("duplicate id %q after split", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestSplitText(t *testing.T) {
	c := Clips{Text: []TextClip{{ID: "text-clip-1", Text: "lower third", Start: 1, End: 5}}}

	out, res, err := SplitText(c, "text-clip-1", 3)
	if err != nil {
		t.Fatalf("SplitText error = %v", err)
	}
	before, _ := out.TextByID(res.BeforeID)
	after, _ := out.TextByID(res.AfterID)
	if before.End != 3 || after.Start != 3 {
		t.Fatalf("text split extents wrong: %v / %v", before.End, after.Start)
	}
	if before.Text != "lower third" || after.Text != "lower third" {
		t.Fatal("text content not carried to both halves")
	}

	if _, _, err := SplitText(c, "text-clip-1", 5); err == nil {
		t.Fatal("SplitText at boundary succeeded, want validation error")
	}
}
