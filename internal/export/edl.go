// Package export renders a timeline document as a CMX 3600 style EDL so a
// cut can move into a desktop NLE.
package export

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cutline/cutline-agent/internal/timeline"
)

// Result carries the rendered list plus any clips whose source could not be
// resolved to a library filename.
type Result struct {
	EDL        string   `json:"edl"`
	EventCount int      `json:"event_count"`
	Unresolved []string `json:"unresolved_clips,omitempty"`
}

// GenerateEDL renders the primary video track. Overlay tracks and text have
// no EDL representation and are skipped. The media map resolves source
// references to library filenames; events with an unknown reference are
// still emitted under their raw reference and reported as unresolved.
func GenerateEDL(clips timeline.Clips, media map[string]string, title string, frameRate float64) Result {
	fps := int(math.Round(frameRate))
	if fps <= 0 {
		fps = 30
	}
	isDropFrame := math.Abs(frameRate-29.97) < 0.01 || math.Abs(frameRate-59.94) < 0.01

	lines := []string{fmt.Sprintf("TITLE: %s", SanitizeName(title, 70))}
	if isDropFrame {
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	events := make([]timeline.MediaClip, 0, len(clips.Media))
	for _, c := range clips.Media {
		if c.Track == timeline.TrackPrimary && !c.Provisional {
			events = append(events, c)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Start < events[j].Start })

	var unresolved []string
	for i, c := range events {
		srcIn := msToTimecode(toMs(c.SourceIn), fps)
		srcOut := msToTimecode(toMs(c.SourceOut), fps)
		recIn := msToTimecode(toMs(c.Start), fps)
		recOut := msToTimecode(toMs(c.End), fps)

		name, ok := media[c.SourceRef]
		if !ok {
			name = c.SourceRef
			unresolved = append(unresolved, c.ID)
		}

		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s", i+1, "AX", "V", srcIn, srcOut, recIn, recOut),
			fmt.Sprintf("* FROM CLIP NAME:  %s", SanitizeName(name, 120)),
		)
	}

	lines = append(lines, "")
	return Result{
		EDL:        strings.Join(lines, "\n"),
		EventCount: len(events),
		Unresolved: unresolved,
	}
}

func toMs(seconds float64) int {
	return int(math.Round(seconds * 1000))
}

func msToTimecode(ms int, fps int) string {
	totalFrames := int(math.Round(float64(ms) * float64(fps) / 1000.0))
	frames := totalFrames % fps
	totalSeconds := totalFrames / fps
	seconds := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, seconds, frames)
}
