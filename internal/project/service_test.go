package project

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cutline/cutline-agent/internal/blob"
	"github.com/cutline/cutline-agent/internal/db"
	"github.com/cutline/cutline-agent/internal/timeline"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "cutline.db"), nil)
	if err != nil {
		t.Fatalf("db.New error = %v", err)
	}
	t.Cleanup(func() { database.Close() })

	blobs, err := blob.Open(t.TempDir())
	if err != nil {
		t.Fatalf("blob.Open error = %v", err)
	}
	t.Cleanup(func() { blobs.Close() })

	return NewService(NewRepository(database.Conn()), blobs, nil)
}

func TestService_ProjectLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "Launch video")
	if err != nil {
		t.Fatalf("CreateProject error = %v", err)
	}
	if p.ID == "" || p.Name != "Launch video" {
		t.Fatalf("unexpected project %+v", p)
	}

	got, err := svc.GetProject(ctx, p.ID)
	if err != nil || got == nil {
		t.Fatalf("GetProject = %v, %v", got, err)
	}

	if err := svc.RenameProject(ctx, p.ID, "Launch video v2"); err != nil {
		t.Fatalf("RenameProject error = %v", err)
	}
	got, _ = svc.GetProject(ctx, p.ID)
	if got.Name != "Launch video v2" {
		t.Fatalf("name = %q after rename", got.Name)
	}

	missing, err := svc.GetProject(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("missing project = %v, %v; want nil, nil", missing, err)
	}
}

func TestService_TimelineRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "")
	if err != nil {
		t.Fatalf("CreateProject error = %v", err)
	}

	clips := timeline.Clips{
		Media: []timeline.MediaClip{{
			ID: "video-clip-1", Type: timeline.ClipVideo, Track: timeline.TrackPrimary,
			SourceRef: "media-1", SourceOut: 5, End: 5,
		}},
		Text: []timeline.TextClip{{ID: "text-clip-1", Text: "hi", Start: 1, End: 2}},
	}
	if err := svc.SaveTimeline(ctx, p.ID, clips); err != nil {
		t.Fatalf("SaveTimeline error = %v", err)
	}

	got, err := svc.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProject error = %v", err)
	}
	if len(got.Timeline.Media) != 1 || len(got.Timeline.Text) != 1 {
		t.Fatalf("timeline did not round-trip: %+v", got.Timeline)
	}
	if got.Timeline.Media[0].ID != "video-clip-1" || got.Timeline.Duration() != 5 {
		t.Fatalf("timeline content wrong: %+v", got.Timeline.Media[0])
	}
}

func TestService_MediaLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, _ := svc.CreateProject(ctx, "p")

	f, err := svc.AddMedia(ctx, p.ID, "interview.mp4", 42.5, []byte("bytes"))
	if err != nil {
		t.Fatalf("AddMedia error = %v", err)
	}
	if f.Kind != timeline.ClipVideo {
		t.Fatalf("kind = %s, want video", f.Kind)
	}
	if f.Size != 5 {
		t.Fatalf("size = %d, want 5", f.Size)
	}

	got, data, err := svc.GetMediaBytes(ctx, f.ID)
	if err != nil || got == nil {
		t.Fatalf("GetMediaBytes = %v, %v", got, err)
	}
	if string(data) != "bytes" {
		t.Fatalf("blob data = %q", data)
	}

	if err := svc.DeleteMedia(ctx, f.ID); err != nil {
		t.Fatalf("DeleteMedia error = %v", err)
	}
	got, _, _ = svc.GetMediaBytes(ctx, f.ID)
	if got != nil {
		t.Fatal("media record still present after delete")
	}
}

func TestService_AddMediaToMissingProject(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.AddMedia(context.Background(), "nope", "a.mp4", 0, nil); err == nil {
		t.Fatal("AddMedia to missing project succeeded")
	}
}

func TestService_DeleteProjectCascadesBlobs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, _ := svc.CreateProject(ctx, "p")
	f1, _ := svc.AddMedia(ctx, p.ID, "a.mp4", 0, []byte("a"))
	f2, _ := svc.AddMedia(ctx, p.ID, "b.wav", 0, []byte("b"))

	if err := svc.DeleteProject(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProject error = %v", err)
	}

	for _, key := range []string{f1.BlobKey, f2.BlobKey} {
		data, err := svc.blobs.Get(key)
		if err != nil {
			t.Fatalf("blob Get error = %v", err)
		}
		if data != nil {
			t.Fatalf("blob %s survived project deletion", key)
		}
	}
	if got, _ := svc.GetProject(ctx, p.ID); got != nil {
		t.Fatal("project record survived deletion")
	}
}

func TestKindForFilename(t *testing.T) {
	cases := map[string]timeline.ClipType{
		"clip.MP4":    timeline.ClipVideo,
		"voice.wav":   timeline.ClipAudio,
		"logo.png":    timeline.ClipImage,
		"notes.txt":   timeline.ClipUnknown,
		"no-ext":      timeline.ClipUnknown,
	}
	for name, want := range cases {
		if got := KindForFilename(name); got != want {
			t.Errorf("KindForFilename(%q) = %s, want %s", name, got, want)
		}
	}
}
