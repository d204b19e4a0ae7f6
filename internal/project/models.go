package project

import (
	"crypto/rand"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cutline/cutline-agent/internal/timeline"
)

// Project is one editing project: a name, the persisted timeline document,
// and the export settings object. Export settings are configuration only;
// the agent does no encoding.
type Project struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Timeline       timeline.Clips `json:"timeline"`
	ExportSettings ExportSettings `json:"export_settings"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ExportSettings holds the user's chosen output parameters.
type ExportSettings struct {
	Format    string  `json:"format,omitempty"`
	FrameRate float64 `json:"frame_rate,omitempty"`
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
}

// MediaFile is one library entry: an uploaded source file whose bytes live
// in the blob store under BlobKey. Its id is the source reference clips
// carry.
type MediaFile struct {
	ID        string            `json:"id"`
	ProjectID string            `json:"project_id"`
	Filename  string            `json:"filename"`
	Kind      timeline.ClipType `json:"kind"`
	Duration  float64           `json:"duration"`
	Size      int64             `json:"size"`
	BlobKey   string            `json:"blob_key"`
	CreatedAt time.Time         `json:"created_at"`
}

func NewID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:])
}

var extensionKinds = map[string]timeline.ClipType{
	".mp4":  timeline.ClipVideo,
	".mov":  timeline.ClipVideo,
	".mkv":  timeline.ClipVideo,
	".webm": timeline.ClipVideo,
	".mp3":  timeline.ClipAudio,
	".wav":  timeline.ClipAudio,
	".aac":  timeline.ClipAudio,
	".flac": timeline.ClipAudio,
	".png":  timeline.ClipImage,
	".jpg":  timeline.ClipImage,
	".jpeg": timeline.ClipImage,
	".gif":  timeline.ClipImage,
	".webp": timeline.ClipImage,
}

// KindForFilename infers the clip type an upload produces from its
// extension.
func KindForFilename(filename string) timeline.ClipType {
	ext := strings.ToLower(filepath.Ext(filename))
	if kind, ok := extensionKinds[ext]; ok {
		return kind
	}
	return timeline.ClipUnknown
}
