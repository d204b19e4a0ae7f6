package playback

import (
	"bytes"
	"net/http/httptest"
	"testing"
)

func TestServeBlob_FullResponse(t *testing.T) {
	data := []byte("0123456789")
	req := httptest.NewRequest("GET", "/media/x", nil)
	rec := httptest.NewRecorder()

	ServeBlob(rec, req, "clip.mp4", data)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "video/mp4" {
		t.Errorf("Content-Type = %s", got)
	}
	if got := rec.Header().Get("Accept-Ranges"); got != "bytes" {
		t.Errorf("Accept-Ranges = %s", got)
	}
	if !bytes.Equal(rec.Body.Bytes(), data) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestServeBlob_PartialContent(t *testing.T) {
	data := []byte("0123456789")
	req := httptest.NewRequest("GET", "/media/x", nil)
	req.Header.Set("Range", "bytes=2-5")
	rec := httptest.NewRecorder()

	ServeBlob(rec, req, "clip.mp4", data)

	if rec.Code != 206 {
		t.Fatalf("status = %d, want 206", rec.Code)
	}
	if got := rec.Header().Get("Content-Range"); got != "bytes 2-5/10" {
		t.Errorf("Content-Range = %s", got)
	}
	if got := rec.Header().Get("Content-Length"); got != "4" {
		t.Errorf("Content-Length = %s", got)
	}
	if rec.Body.String() != "2345" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestServeBlob_Unsatisfiable(t *testing.T) {
	req := httptest.NewRequest("GET", "/media/x", nil)
	req.Header.Set("Range", "bytes=50-")
	rec := httptest.NewRecorder()

	ServeBlob(rec, req, "clip.mp4", []byte("0123456789"))

	if rec.Code != 416 {
		t.Fatalf("status = %d, want 416", rec.Code)
	}
	if got := rec.Header().Get("Content-Range"); got != "bytes */10" {
		t.Errorf("Content-Range = %s", got)
	}
}

func TestServeBlob_InvalidRangeDegradesToFull(t *testing.T) {
	data := []byte("0123456789")
	req := httptest.NewRequest("GET", "/media/x", nil)
	req.Header.Set("Range", "chars=0-5")
	rec := httptest.NewRecorder()

	ServeBlob(rec, req, "clip.bin", data)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/octet-stream" {
		t.Errorf("Content-Type = %s", got)
	}
	if !bytes.Equal(rec.Body.Bytes(), data) {
		t.Errorf("body = %q", rec.Body.String())
	}
}
