// Package agentlink is the WebSocket channel an external agent drives edits
// through. The agent sends batches of named actions and receives one
// structured result per action; every outbound message carries a fresh
// timeline context so the agent always reasons over current state.
package agentlink

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/cutline/cutline-agent/internal/actions"
	"github.com/cutline/cutline-agent/internal/editor"
	"github.com/cutline/cutline-agent/internal/timeline"
)

const (
	// Inbound message types.
	TypeAction = "frontend_action"

	// Outbound message types.
	TypeResult    = "frontend_result"
	TypeConnected = "connected"
)

// ActionEnvelope is the inbound request: a non-empty ordered batch of
// actions applied as one serialized unit.
type ActionEnvelope struct {
	Type     string               `json:"type"`
	ActionID string               `json:"action_id"`
	Actions  []editor.AgentAction `json:"actions"`
}

// ResultEnvelope answers one ActionEnvelope. TimelineContext reflects the
// document after the batch was applied.
type ResultEnvelope struct {
	Type            string          `json:"type"`
	ActionID        string          `json:"action_id"`
	Result          BatchResult     `json:"result"`
	TimelineContext TimelineContext `json:"timeline_context"`
}

// ConnectedEnvelope is sent once after the upgrade. It advertises the
// action catalog so the agent knows what it may request.
type ConnectedEnvelope struct {
	Type            string          `json:"type"`
	ProjectID       string          `json:"project_id"`
	Actions         []actions.Spec  `json:"actions"`
	TimelineContext TimelineContext `json:"timeline_context"`
}

// BatchResult aggregates per-action outcomes. Results preserve the input
// order; Success is true only if every action succeeded.
type BatchResult struct {
	Success   bool             `json:"success"`
	Total     int              `json:"total"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Results   []actions.Result `json:"results"`
	Error     string           `json:"error,omitempty"`
}

// aggregate folds per-action results into the envelope shape.
func aggregate(results []actions.Result) BatchResult {
	br := BatchResult{Total: len(results), Results: results}
	for _, r := range results {
		if r.Success {
			br.Succeeded++
		} else {
			br.Failed++
		}
	}
	br.Success = br.Failed == 0
	if results == nil {
		br.Results = []actions.Result{}
	}
	return br
}

// rejected is the structured error for a malformed request.
func rejected(msg string) BatchResult {
	return BatchResult{Results: []actions.Result{}, Error: msg}
}

// parseEnvelope validates an inbound frame. It returns the recovered
// action_id even on failure so the rejection can reference it.
func parseEnvelope(raw []byte) (ActionEnvelope, string, error) {
	var env ActionEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Best effort to recover the correlation id from the broken frame.
		var partial struct {
			ActionID string `json:"action_id"`
		}
		_ = json.Unmarshal(raw, &partial)
		return ActionEnvelope{}, partial.ActionID, errMalformed
	}
	if env.Type != TypeAction {
		return ActionEnvelope{}, env.ActionID, errBadType
	}
	if len(env.Actions) == 0 {
		return ActionEnvelope{}, env.ActionID, errEmptyBatch
	}
	return env, env.ActionID, nil
}

// TimelineContext is the agent-facing view of the document: flattened,
// time-sorted, all times in milliseconds.
type TimelineContext struct {
	Clips      []ClipDescriptor `json:"clips"`
	PlayheadMs int64            `json:"playhead_ms"`
	DurationMs int64            `json:"duration_ms"`
}

// ClipDescriptor flattens one media or text clip. Source fields are absent
// for text overlays; Text is absent for media.
type ClipDescriptor struct {
	ClipID          string `json:"clip_id"`
	SourceFileAlias string `json:"source_file_alias,omitempty"`
	Track           string `json:"track,omitempty"`
	TimelineStartMs int64  `json:"timeline_start_ms"`
	TimelineEndMs   int64  `json:"timeline_end_ms"`
	SourceStartMs   int64  `json:"source_start_ms,omitempty"`
	SourceEndMs     int64  `json:"source_end_ms,omitempty"`
	Text            string `json:"text,omitempty"`
}

func toMs(seconds float64) int64 {
	return int64(math.Round(seconds * 1000))
}

// BuildTimelineContext converts the internal seconds-based document into the
// millisecond view exported to the agent. Seconds are scaled here and
// nowhere else.
func BuildTimelineContext(clips timeline.Clips, playhead float64) TimelineContext {
	descriptors := make([]ClipDescriptor, 0, len(clips.Media)+len(clips.Text))

	for _, c := range clips.Media {
		descriptors = append(descriptors, ClipDescriptor{
			ClipID:          c.ID,
			SourceFileAlias: c.SourceRef,
			Track:           string(c.Track),
			TimelineStartMs: toMs(c.Start),
			TimelineEndMs:   toMs(c.End),
			SourceStartMs:   toMs(c.SourceIn),
			SourceEndMs:     toMs(c.SourceOut),
		})
	}
	for _, c := range clips.Text {
		descriptors = append(descriptors, ClipDescriptor{
			ClipID:          c.ID,
			TimelineStartMs: toMs(c.Start),
			TimelineEndMs:   toMs(c.End),
			Text:            c.Text,
		})
	}

	sort.Slice(descriptors, func(i, j int) bool {
		if descriptors[i].TimelineStartMs != descriptors[j].TimelineStartMs {
			return descriptors[i].TimelineStartMs < descriptors[j].TimelineStartMs
		}
		return descriptors[i].ClipID < descriptors[j].ClipID
	})

	return TimelineContext{
		Clips:      descriptors,
		PlayheadMs: toMs(playhead),
		DurationMs: toMs(clips.Duration()),
	}
}
