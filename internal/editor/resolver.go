package editor

import (
	"context"

	"github.com/cutline/cutline-agent/internal/actions"
	"github.com/cutline/cutline-agent/internal/project"
)

// libraryResolver resolves source references against a project's media
// library. References from other projects do not resolve.
type libraryResolver struct {
	projects  *project.Service
	projectID string
}

func (r *libraryResolver) Resolve(ctx context.Context, ref string) (*actions.Asset, error) {
	f, err := r.projects.GetMedia(ctx, ref)
	if err != nil {
		return nil, err
	}
	if f == nil || f.ProjectID != r.projectID {
		return nil, nil
	}
	return &actions.Asset{
		Ref:      f.ID,
		Kind:     f.Kind,
		Duration: f.Duration,
	}, nil
}
