package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cutline/cutline-agent/internal/config"
	"github.com/cutline/cutline-agent/internal/editor"
	"github.com/cutline/cutline-agent/internal/export"
	"github.com/cutline/cutline-agent/internal/playback"
	"github.com/cutline/cutline-agent/internal/project"
	"github.com/cutline/cutline-agent/internal/timeline"
)

// uploads are held in memory before landing in the blob store
const maxUploadBytes = 512 << 20

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))

	// Browser WebSocket clients cannot set an Authorization header, so the
	// agent channel sits outside the auth group. The server only binds to
	// loopback.
	r.Get("/projects/{projectID}/agent", cfg.Agent.Handler)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Repository, cfg.Logger))

		r.Get("/status", statusHandler(cfg))

		r.Get("/projects", listProjectsHandler(cfg))
		r.Post("/projects", createProjectHandler(cfg))
		r.Get("/projects/{id}", getProjectHandler(cfg))
		r.Patch("/projects/{id}", renameProjectHandler(cfg))
		r.Delete("/projects/{id}", deleteProjectHandler(cfg))

		r.Post("/projects/{id}/media", uploadMediaHandler(cfg))
		r.Get("/projects/{id}/media", listMediaHandler(cfg))
		r.Get("/media/{id}", playbackHandler(cfg))
		r.Delete("/media/{id}", deleteMediaHandler(cfg))

		r.Get("/projects/{id}/timeline", getTimelineHandler(cfg))
		r.Post("/projects/{id}/timeline/selection", selectionHandler(cfg))
		r.Post("/projects/{id}/timeline/playhead", playheadHandler(cfg))
		r.Post("/projects/{id}/timeline/split", splitHandler(cfg))
		r.Post("/projects/{id}/timeline/duplicate", duplicateHandler(cfg))
		r.Post("/projects/{id}/timeline/delete", deleteSelectedHandler(cfg))
		r.Post("/projects/{id}/timeline/clear", clearHandler(cfg))
		r.Post("/projects/{id}/timeline/suggestions/{clipID}/toggle", toggleSuggestionHandler(cfg))

		r.Put("/projects/{id}/export/settings", exportSettingsHandler(cfg))
		r.Get("/projects/{id}/export/edl", exportEDLHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:   "ok",
			Version:  config.Version,
			UptimeS:  uptime,
			DeviceID: cfg.DeviceID,
		})
	}
}

func statusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := cfg.Projects.ListProjects(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list projects", "INTERNAL_ERROR")
			return
		}

		WriteJSON(w, http.StatusOK, StatusResponse{
			State:         "idle",
			ProjectsCount: len(projects),
			OpenSessions:  cfg.Sessions.Open(),
		})
	}
}

func listProjectsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := cfg.Projects.ListProjects(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list projects", "INTERNAL_ERROR")
			return
		}

		resp := ProjectsResponse{Projects: make([]ProjectResponse, len(projects))}
		for i, p := range projects {
			resp.Projects[i] = ProjectToResponse(p)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func createProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		p, err := cfg.Projects.CreateProject(r.Context(), req.Name)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		WriteJSON(w, http.StatusCreated, ProjectToResponse(p))
	}
}

func getProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := cfg.Projects.GetProject(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if p == nil {
			WriteError(w, http.StatusNotFound, "project not found", "NOT_FOUND")
			return
		}

		WriteJSON(w, http.StatusOK, ProjectToResponse(p))
	}
}

func renameProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RenameProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Name == "" {
			WriteError(w, http.StatusBadRequest, "name is required", "BAD_REQUEST")
			return
		}

		if err := cfg.Projects.RenameProject(r.Context(), chi.URLParam(r, "id"), req.Name); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := cfg.Projects.DeleteProject(r.Context(), id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		cfg.Sessions.Drop(id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// uploadMediaHandler accepts a multipart form with a "file" part and an
// optional "duration" field in seconds.
func uploadMediaHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "id")

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid multipart form", "BAD_REQUEST")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "file part is required", "BAD_REQUEST")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to read upload", "INTERNAL_ERROR")
			return
		}

		var duration float64
		if v := r.FormValue("duration"); v != "" {
			duration, err = strconv.ParseFloat(v, 64)
			if err != nil || duration < 0 {
				WriteError(w, http.StatusBadRequest, "invalid duration", "BAD_REQUEST")
				return
			}
		}

		f, err := cfg.Projects.AddMedia(r.Context(), projectID, header.Filename, duration, data)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusCreated, MediaFileToResponse(f))
	}
}

func listMediaHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		files, err := cfg.Projects.ListMedia(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		resp := MediaFilesResponse{Files: make([]MediaFileResponse, len(files))}
		for i, f := range files {
			resp.Files[i] = MediaFileToResponse(f)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func playbackHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		f, data, err := cfg.Projects.GetMediaBytes(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if f == nil {
			WriteError(w, http.StatusNotFound, "media not found", "NOT_FOUND")
			return
		}

		playback.ServeBlob(w, r, f.Filename, data)
	}
}

func deleteMediaHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := cfg.Projects.DeleteMedia(r.Context(), chi.URLParam(r, "id")); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// session resolves the editing session for the project in the URL, writing
// the error response itself when the project does not exist.
func session(cfg ServerConfig, w http.ResponseWriter, r *http.Request) *editor.Session {
	s, err := cfg.Sessions.Session(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusNotFound, "project not found", "NOT_FOUND")
		return nil
	}
	return s
}

func getTimelineHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session(cfg, w, r)
		if s == nil {
			return
		}

		clips := s.Snapshot()
		WriteJSON(w, http.StatusOK, TimelineResponse{
			Media:    clips.Media,
			Text:     clips.Text,
			Playhead: s.Playhead(),
			Duration: clips.Duration(),
		})
	}
}

func selectionHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session(cfg, w, r)
		if s == nil {
			return
		}

		var req SelectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		s.Select(timeline.Selection{MediaIDs: req.MediaIDs, TextIDs: req.TextIDs})
		w.WriteHeader(http.StatusNoContent)
	}
}

func playheadHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session(cfg, w, r)
		if s == nil {
			return
		}

		var req PlayheadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		s.SetPlayhead(req.Position)
		w.WriteHeader(http.StatusNoContent)
	}
}

// editErrorStatus maps selection edit failures onto HTTP statuses.
func editErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, timeline.ErrNoSelection),
		errors.Is(err, timeline.ErrMultiSelection),
		errors.Is(err, timeline.ErrOutOfBounds):
		return http.StatusBadRequest, "BAD_REQUEST"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func splitHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session(cfg, w, r)
		if s == nil {
			return
		}

		res, err := s.SplitSelected(r.Context())
		if err != nil {
			status, code := editErrorStatus(err)
			WriteError(w, status, err.Error(), code)
			return
		}
		WriteJSON(w, http.StatusOK, res)
	}
}

func duplicateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session(cfg, w, r)
		if s == nil {
			return
		}

		created, err := s.DuplicateSelected(r.Context())
		if err != nil {
			status, code := editErrorStatus(err)
			WriteError(w, status, err.Error(), code)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"created_ids": created})
	}
}

func deleteSelectedHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session(cfg, w, r)
		if s == nil {
			return
		}

		res, err := s.DeleteSelected(r.Context())
		if err != nil {
			status, code := editErrorStatus(err)
			WriteError(w, status, err.Error(), code)
			return
		}
		WriteJSON(w, http.StatusOK, res)
	}
}

func clearHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session(cfg, w, r)
		if s == nil {
			return
		}

		if err := s.Clear(r.Context()); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toggleSuggestionHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session(cfg, w, r)
		if s == nil {
			return
		}

		removed, err := s.ToggleSuggestion(r.Context(), chi.URLParam(r, "clipID"))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, ToggleSuggestionResponse{Removed: removed})
	}
}

func exportSettingsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req project.ExportSettings
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		if err := cfg.Projects.UpdateExportSettings(r.Context(), chi.URLParam(r, "id"), req); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func exportEDLHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		p, err := cfg.Projects.GetProject(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if p == nil {
			WriteError(w, http.StatusNotFound, "project not found", "NOT_FOUND")
			return
		}

		s := session(cfg, w, r)
		if s == nil {
			return
		}

		files, err := cfg.Projects.ListMedia(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		media := make(map[string]string, len(files))
		for _, f := range files {
			media[f.ID] = f.Filename
		}

		frameRate := p.ExportSettings.FrameRate
		if v := r.URL.Query().Get("frame_rate"); v != "" {
			frameRate, err = strconv.ParseFloat(v, 64)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "invalid frame_rate", "BAD_REQUEST")
				return
			}
		}

		WriteJSON(w, http.StatusOK, export.GenerateEDL(s.Snapshot(), media, p.Name, frameRate))
	}
}
