package project

import "context"

// Repository persists the full project list as a single document.
type Repository interface {
	Load(ctx context.Context) ([]Project, error)
	Save(ctx context.Context, projects []Project) error
}
