package editor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cutline/cutline-agent/internal/actions"
	"github.com/cutline/cutline-agent/internal/project"
)

// Manager hands out one Session per project, loading the persisted timeline
// document on first use. Sessions live for the life of the process; the
// document inside them is the authority and the store follows it.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	projects *project.Service
	registry *actions.Registry
	logger   *slog.Logger
}

func NewManager(projects *project.Service, registry *actions.Registry, logger *slog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		projects: projects,
		registry: registry,
		logger:   logger,
	}
}

// Session returns the editing session for a project, creating it from the
// persisted document if needed.
func (m *Manager) Session(ctx context.Context, projectID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[projectID]; ok {
		return s, nil
	}

	p, err := m.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("project %s not found", projectID)
	}

	s := &Session{
		projectID: projectID,
		clips:     p.Timeline,
		projects:  m.projects,
		registry:  m.registry,
		logger:    m.logger,
	}
	m.sessions[projectID] = s
	return s, nil
}

// Open reports how many sessions are live.
func (m *Manager) Open() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Drop forgets a project's session, e.g. after the project is deleted.
func (m *Manager) Drop(projectID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, projectID)
}
