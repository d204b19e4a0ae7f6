package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cutline/cutline-agent/internal/timeline"
)

type Repository interface {
	CreateProject(ctx context.Context, p *Project) error
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context) ([]*Project, error)
	UpdateProject(ctx context.Context, p *Project) error
	DeleteProject(ctx context.Context, id string) error

	CreateMediaFile(ctx context.Context, f *MediaFile) error
	GetMediaFile(ctx context.Context, id string) (*MediaFile, error)
	ListMediaFiles(ctx context.Context, projectID string) ([]*MediaFile, error)
	DeleteMediaFile(ctx context.Context, id string) error

	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CreateProject(ctx context.Context, p *Project) error {
	timelineJSON, settingsJSON, err := marshalProject(p)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, timeline_json, export_settings_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, timelineJSON, settingsJSON, p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) GetProject(ctx context.Context, id string) (*Project, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, timeline_json, export_settings_json, created_at, updated_at
		FROM projects WHERE id = ?
	`, id)
	return scanProject(row.Scan)
}

func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]*Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, timeline_json, export_settings_json, created_at, updated_at
		FROM projects ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *SQLiteRepository) UpdateProject(ctx context.Context, p *Project) error {
	timelineJSON, settingsJSON, err := marshalProject(p)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE projects SET name = ?, timeline_json = ?, export_settings_json = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, timelineJSON, settingsJSON, time.Now().Format(time.RFC3339), p.ID)
	return err
}

func (r *SQLiteRepository) DeleteProject(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	return err
}

func (r *SQLiteRepository) CreateMediaFile(ctx context.Context, f *MediaFile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO media_files (id, project_id, filename, kind, duration, size, blob_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, f.ID, f.ProjectID, f.Filename, string(f.Kind), f.Duration, f.Size, f.BlobKey, f.CreatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) GetMediaFile(ctx context.Context, id string) (*MediaFile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, project_id, filename, kind, duration, size, blob_key, created_at
		FROM media_files WHERE id = ?
	`, id)

	f, err := scanMediaFile(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *SQLiteRepository) ListMediaFiles(ctx context.Context, projectID string) ([]*MediaFile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, filename, kind, duration, size, blob_key, created_at
		FROM media_files WHERE project_id = ? ORDER BY created_at
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*MediaFile
	for rows.Next() {
		f, err := scanMediaFile(rows.Scan)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (r *SQLiteRepository) DeleteMediaFile(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM media_files WHERE id = ?", id)
	return err
}

func (r *SQLiteRepository) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *SQLiteRepository) SetConfig(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func marshalProject(p *Project) (string, string, error) {
	timelineJSON, err := json.Marshal(p.Timeline)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal timeline: %w", err)
	}
	settingsJSON, err := json.Marshal(p.ExportSettings)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal export settings: %w", err)
	}
	return string(timelineJSON), string(settingsJSON), nil
}

func scanProject(scan func(...any) error) (*Project, error) {
	var p Project
	var timelineJSON, settingsJSON, createdAt, updatedAt string

	err := scan(&p.ID, &p.Name, &timelineJSON, &settingsJSON, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(timelineJSON), &p.Timeline); err != nil {
		return nil, fmt.Errorf("corrupt timeline document for project %s: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(settingsJSON), &p.ExportSettings); err != nil {
		return nil, fmt.Errorf("corrupt export settings for project %s: %w", p.ID, err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}

func scanMediaFile(scan func(...any) error) (*MediaFile, error) {
	var f MediaFile
	var kind, createdAt string

	if err := scan(&f.ID, &f.ProjectID, &f.Filename, &kind, &f.Duration, &f.Size, &f.BlobKey, &createdAt); err != nil {
		return nil, err
	}
	f.Kind = timeline.ClipType(kind)
	f.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &f, nil
}
