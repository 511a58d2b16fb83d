package mocks

import (
	"context"

	"github.com/faridfgx/projectorganizer/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Load(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Save(ctx context.Context, projects []project.Project) error {
	args := m.Called(ctx, projects)
	return args.Error(0)
}

// Settings is a mock for repository.Settings.
type Settings struct {
	mock.Mock
}

func (m *Settings) GetString(ctx context.Context, section, key, def string) (string, error) {
	args := m.Called(ctx, section, key, def)
	return args.String(0), args.Error(1)
}

func (m *Settings) GetInt(ctx context.Context, section, key string, def int) (int, error) {
	args := m.Called(ctx, section, key, def)
	return args.Int(0), args.Error(1)
}

func (m *Settings) GetBool(ctx context.Context, section, key string, def bool) (bool, error) {
	args := m.Called(ctx, section, key, def)
	return args.Bool(0), args.Error(1)
}

func (m *Settings) SetString(ctx context.Context, section, key, value string) error {
	args := m.Called(ctx, section, key, value)
	return args.Error(0)
}

func (m *Settings) SetInt(ctx context.Context, section, key string, value int) error {
	args := m.Called(ctx, section, key, value)
	return args.Error(0)
}

func (m *Settings) SetBool(ctx context.Context, section, key string, value bool) error {
	args := m.Called(ctx, section, key, value)
	return args.Error(0)
}
