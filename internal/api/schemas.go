package api

import (
	"time"

	"github.com/cutline/cutline-agent/internal/project"
	"github.com/cutline/cutline-agent/internal/timeline"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	UptimeS  int64  `json:"uptime_s"`
	DeviceID string `json:"device_id"`
}

type StatusResponse struct {
	State         string `json:"state"`
	ProjectsCount int    `json:"projects_count"`
	OpenSessions  int    `json:"open_sessions"`
}

type CreateProjectRequest struct {
	Name string `json:"name"`
}

type RenameProjectRequest struct {
	Name string `json:"name"`
}

type ProjectResponse struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	ExportSettings project.ExportSettings `json:"export_settings"`
	CreatedAt      string                 `json:"created_at"`
	UpdatedAt      string                 `json:"updated_at"`
}

type ProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type MediaFileResponse struct {
	ID        string  `json:"id"`
	ProjectID string  `json:"project_id"`
	Filename  string  `json:"filename"`
	Kind      string  `json:"kind"`
	Duration  float64 `json:"duration"`
	Size      int64   `json:"size"`
	CreatedAt string  `json:"created_at"`
}

type MediaFilesResponse struct {
	Files []MediaFileResponse `json:"files"`
}

type TimelineResponse struct {
	Media    []timeline.MediaClip `json:"media"`
	Text     []timeline.TextClip  `json:"text"`
	Playhead float64              `json:"playhead"`
	Duration float64              `json:"duration"`
}

type SelectionRequest struct {
	MediaIDs []string `json:"media_ids"`
	TextIDs  []string `json:"text_ids"`
}

type PlayheadRequest struct {
	Position float64 `json:"position"`
}

type ToggleSuggestionResponse struct {
	Removed bool `json:"removed"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func ProjectToResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:             p.ID,
		Name:           p.Name,
		ExportSettings: p.ExportSettings,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
	}
}

func MediaFileToResponse(f *project.MediaFile) MediaFileResponse {
	return MediaFileResponse{
		ID:        f.ID,
		ProjectID: f.ProjectID,
		Filename:  f.Filename,
		Kind:      string(f.Kind),
		Duration:  f.Duration,
		Size:      f.Size,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	}
}
