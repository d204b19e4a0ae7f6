// Package editor owns the live timeline document. A Session is the single
// mutation authority for one project: every edit, interactive or
// agent-driven, is serialized through it, applied via the pure timeline
// functions, and persisted back to the project store. The algorithms
// themselves never see shared state.
package editor

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/cutline/cutline-agent/internal/actions"
	"github.com/cutline/cutline-agent/internal/project"
	"github.com/cutline/cutline-agent/internal/timeline"
)

type Session struct {
	mu        sync.Mutex
	projectID string
	clips     timeline.Clips
	selection timeline.Selection
	playhead  float64

	projects *project.Service
	registry *actions.Registry
	logger   *slog.Logger
}

// Snapshot returns the current timeline document.
func (s *Session) Snapshot() timeline.Clips {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clips.Clone()
}

func (s *Session) ProjectID() string {
	return s.projectID
}

func (s *Session) Playhead() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playhead
}

func (s *Session) SetPlayhead(p float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p < 0 {
		p = 0
	}
	s.playhead = p
}

func (s *Session) Select(sel timeline.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = sel
}

// commit replaces the document and persists it. Callers hold s.mu.
func (s *Session) commit(ctx context.Context, clips timeline.Clips) error {
	if err := s.projects.SaveTimeline(ctx, s.projectID, clips); err != nil {
		return err
	}
	s.clips = clips
	return nil
}

// SplitSelected cuts the single selected clip at the playhead.
func (s *Session) SplitSelected(ctx context.Context) (timeline.SplitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clips, res, err := timeline.SplitSelected(s.clips, s.selection, s.playhead)
	if err != nil {
		return timeline.SplitResult{}, err
	}
	if err := s.commit(ctx, clips); err != nil {
		return timeline.SplitResult{}, err
	}
	s.selection = timeline.Selection{}
	return res, nil
}

// DuplicateSelected copies every selected clip in place.
func (s *Session) DuplicateSelected(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clips, created, err := timeline.DuplicateSelected(s.clips, s.selection)
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, clips); err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteSelected removes the selected clips with the track-aware ripple
// policy.
func (s *Session) DeleteSelected(ctx context.Context) (timeline.DeleteSelectedResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clips, res, err := timeline.DeleteSelected(s.clips, s.selection)
	if err != nil {
		return timeline.DeleteSelectedResult{}, err
	}
	if err := s.commit(ctx, clips); err != nil {
		return timeline.DeleteSelectedResult{}, err
	}
	s.selection = timeline.Selection{}
	return res, nil
}

// ToggleSuggestion removes one previewed clip before confirm.
func (s *Session) ToggleSuggestion(ctx context.Context, clipID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clips, removed := timeline.RemoveSuggested(s.clips, clipID)
	if !removed {
		return false, nil
	}
	if err := s.commit(ctx, clips); err != nil {
		return false, err
	}
	return true, nil
}

// Clear empties the timeline.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = timeline.Selection{}
	return s.commit(ctx, timeline.Clips{})
}

// AgentAction is one requested operation of an inbound agent batch.
type AgentAction struct {
	Action     string          `json:"action"`
	Parameters json.RawMessage `json:"parameters"`
}

// ExecuteActions runs an agent batch against the session. The whole batch is
// serialized under the session lock: each action sees the context its
// predecessor produced, and the final document is committed once at the end.
// One action's failure is recorded and the batch continues.
func (s *Session) ExecuteActions(ctx context.Context, batch []AgentAction) []actions.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	ec := actions.Context{
		Clips:    s.clips.Clone(),
		Playhead: s.playhead,
		Resolver: &libraryResolver{projects: s.projects, projectID: s.projectID},
	}

	results := make([]actions.Result, 0, len(batch))
	for _, a := range batch {
		var res actions.Result
		ec, res = s.registry.Execute(ctx, a.Action, a.Parameters, ec)
		results = append(results, res)
		if s.logger != nil && !res.Success {
			s.logger.Warn("agent action failed", "action", a.Action, "error", res.Error)
		}
	}

	if err := s.commit(ctx, ec.Clips); err != nil {
		s.logger.Error("failed to persist agent edits", "project_id", s.projectID, "error", err)
	}
	return results
}
