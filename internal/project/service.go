package project

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cutline/cutline-agent/internal/blob"
	"github.com/cutline/cutline-agent/internal/timeline"
)

// Service owns project records and the media library. It is the only place
// that coordinates the record store and the blob store: deleting a project
// cascades to every blob its source files reference.
type Service struct {
	repo   Repository
	blobs  blob.Store
	logger *slog.Logger
}

func NewService(repo Repository, blobs blob.Store, logger *slog.Logger) *Service {
	return &Service{repo: repo, blobs: blobs, logger: logger}
}

func (s *Service) CreateProject(ctx context.Context, name string) (*Project, error) {
	if name == "" {
		name = "Untitled project"
	}
	now := time.Now()
	p := &Project{
		ID:        NewID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateProject(ctx, p); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.Info("project created", "project_id", p.ID, "name", p.Name)
	}
	return p, nil
}

func (s *Service) GetProject(ctx context.Context, id string) (*Project, error) {
	return s.repo.GetProject(ctx, id)
}

func (s *Service) ListProjects(ctx context.Context) ([]*Project, error) {
	return s.repo.ListProjects(ctx)
}

// SaveTimeline persists the timeline document of a project.
func (s *Service) SaveTimeline(ctx context.Context, id string, clips timeline.Clips) error {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("project %s not found", id)
	}
	p.Timeline = clips
	return s.repo.UpdateProject(ctx, p)
}

func (s *Service) UpdateExportSettings(ctx context.Context, id string, settings ExportSettings) error {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("project %s not found", id)
	}
	p.ExportSettings = settings
	return s.repo.UpdateProject(ctx, p)
}

func (s *Service) RenameProject(ctx context.Context, id, name string) error {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("project %s not found", id)
	}
	p.Name = name
	return s.repo.UpdateProject(ctx, p)
}

// DeleteProject removes the project record and every blob referenced by its
// source-file list. Blob deletion failures are logged and skipped so a
// half-removed blob directory can never strand the record.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	files, err := s.repo.ListMediaFiles(ctx, id)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := s.blobs.Delete(f.BlobKey); err != nil && s.logger != nil {
			s.logger.Warn("failed to delete blob", "blob_key", f.BlobKey, "error", err)
		}
	}
	return s.repo.DeleteProject(ctx, id)
}

// AddMedia stores an uploaded file's bytes and registers it in the library.
// The returned MediaFile's id is the source reference timeline clips use.
func (s *Service) AddMedia(ctx context.Context, projectID, filename string, duration float64, data []byte) (*MediaFile, error) {
	p, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("project %s not found", projectID)
	}

	f := &MediaFile{
		ID:        NewID(),
		ProjectID: projectID,
		Filename:  filename,
		Kind:      KindForFilename(filename),
		Duration:  duration,
		Size:      int64(len(data)),
		CreatedAt: time.Now(),
	}
	f.BlobKey = f.ID

	if err := s.blobs.Put(f.BlobKey, data); err != nil {
		return nil, fmt.Errorf("failed to store media bytes: %w", err)
	}
	if err := s.repo.CreateMediaFile(ctx, f); err != nil {
		// Keep store and records consistent when the insert fails.
		if derr := s.blobs.Delete(f.BlobKey); derr != nil && s.logger != nil {
			s.logger.Warn("failed to roll back blob", "blob_key", f.BlobKey, "error", derr)
		}
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("media added", "project_id", projectID, "media_id", f.ID, "filename", filename, "size", f.Size)
	}
	return f, nil
}

func (s *Service) GetMedia(ctx context.Context, id string) (*MediaFile, error) {
	return s.repo.GetMediaFile(ctx, id)
}

func (s *Service) ListMedia(ctx context.Context, projectID string) ([]*MediaFile, error) {
	return s.repo.ListMediaFiles(ctx, projectID)
}

// GetMediaBytes fetches a library entry's stored bytes.
func (s *Service) GetMediaBytes(ctx context.Context, id string) (*MediaFile, []byte, error) {
	f, err := s.repo.GetMediaFile(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if f == nil {
		return nil, nil, nil
	}
	data, err := s.blobs.Get(f.BlobKey)
	if err != nil {
		return nil, nil, err
	}
	return f, data, nil
}

func (s *Service) DeleteMedia(ctx context.Context, id string) error {
	f, err := s.repo.GetMediaFile(ctx, id)
	if err != nil {
		return err
	}
	if f == nil {
		return nil
	}
	if err := s.blobs.Delete(f.BlobKey); err != nil && s.logger != nil {
		s.logger.Warn("failed to delete blob", "blob_key", f.BlobKey, "error", err)
	}
	return s.repo.DeleteMediaFile(ctx, id)
}
