package pipeline

import (
	"context"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/taskomat/taskomat/internal/domain"
	"github.com/taskomat/taskomat/internal/infra/metrics"
)

// ProjectResolver maps a project display name to its directory id, creating
// the project upstream when it does not exist. Nothing is cached across
// calls — every resolution re-queries the directory. Concurrent resolutions
// of the same name share one lookup-then-create flight, so only one creation
// happens and the losers adopt the winner's id.
type ProjectResolver struct {
	dir   domain.ProjectDirectory
	group singleflight.Group
}

// NewProjectResolver wraps a project directory.
func NewProjectResolver(dir domain.ProjectDirectory) *ProjectResolver {
	return &ProjectResolver{dir: dir}
}

// Resolve returns the id for name. One attempt, no retry: a directory
// failure comes back as a DirectoryQueryFailed error and the caller proceeds
// without a project assignment.
func (r *ProjectResolver) Resolve(ctx context.Context, name string) (string, error) {
	v, err, _ := r.group.Do(strings.ToLower(name), func() (interface{}, error) {
		return r.resolve(ctx, name)
	})
	if err != nil {
		metrics.ProjectResolutions.WithLabelValues("failed").Inc()
		return "", err
	}
	return v.(string), nil
}

func (r *ProjectResolver) resolve(ctx context.Context, name string) (string, error) {
	projects, err := r.dir.ListProjects(ctx)
	if err != nil {
		return "", wrapDirectoryErr(err)
	}

	for _, p := range projects {
		if strings.EqualFold(p.Name, name) {
			metrics.ProjectResolutions.WithLabelValues("hit").Inc()
			return p.ID, nil
		}
	}

	created, err := r.dir.CreateProject(ctx, name)
	if err != nil {
		return "", wrapDirectoryErr(err)
	}
	metrics.ProjectResolutions.WithLabelValues("created").Inc()
	return created.ID, nil
}

// wrapDirectoryErr keeps an existing taxonomy kind and tags bare errors.
func wrapDirectoryErr(err error) error {
	if domain.KindOf(err) != "" {
		return err
	}
	return domain.NewPipelineError(domain.KindDirectoryQueryFailed, err.Error())
}
