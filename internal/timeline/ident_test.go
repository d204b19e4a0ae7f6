package timeline

import "testing"

func TestNextID_EmptyCollection(t *testing.T) {
	got := NextID(Clips{}, ClipVideo)
	if got != "video-clip-1" {
		t.Fatalf("NextID on empty collection = %q, want video-clip-1", got)
	}
}

func TestNextID_IndependentSequences(t *testing.T) {
	c := Clips{
		Media: []MediaClip{
			{ID: "video-clip-3", Type: ClipVideo},
			{ID: "audio-clip-7", Type: ClipAudio},
		},
		Text: []TextClip{{ID: "text-clip-2"}},
	}

	cases := []struct {
		kind ClipType
		want string
	}{
		{ClipVideo, "video-clip-4"},
		{ClipAudio, "audio-clip-8"},
		{ClipImage, "image-clip-1"},
		{ClipText, "text-clip-3"},
	}
	for _, tc := range cases {
		if got := NextID(c, tc.kind); got != tc.want {
			t.Errorf("NextID(%s) = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestNextID_UnparseableSuffixTreatedAsZero(t *testing.T) {
	c := Clips{Media: []MediaClip{{ID: "video-clip-abc"}}}
	if got := NextID(c, ClipVideo); got != "video-clip-1" {
		t.Fatalf("NextID with unparseable suffix = %q, want video-clip-1", got)
	}
}

func TestNextID_ExtraMintedIDs(t *testing.T) {
	c := Clips{Media: []MediaClip{{ID: "video-clip-2"}}}

	first := NextID(c, ClipVideo)
	second := NextID(c, ClipVideo, first)
	if first == second {
		t.Fatalf("two allocations in one step collided: %q", first)
	}
	if first != "video-clip-3" || second != "video-clip-4" {
		t.Fatalf("got %q, %q; want video-clip-3, video-clip-4", first, second)
	}
}
