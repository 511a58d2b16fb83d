package project_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/faridfgx/projectorganizer/internal/domain/project"
	"github.com/faridfgx/projectorganizer/internal/repository"
	"github.com/faridfgx/projectorganizer/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	at := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func newStore(t *testing.T, initial []project.Project) (*project.Service, *mocks.ProjectRepository) {
	t.Helper()
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Load", ctx).Return(initial, nil).Once()

	svc := project.NewService(ctx, repo, nil)
	svc.SetClock(fixedClock())
	return svc, repo
}

func TestServiceAddStampsDates(t *testing.T) {
	ctx := context.Background()
	svc, repo := newStore(t, nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	created, err := svc.Add(ctx, project.Project{Name: "alpha"})
	require.NoError(t, err)
	require.Equal(t, "2026-03-10", created.CreatedDate)
	require.Equal(t, "2026-03-10 14:30:00", created.LastUpdated)
	require.Equal(t, project.PriorityMedium, created.Priority)
	require.Equal(t, 1, svc.Count())
}

func TestServiceAddDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc, repo := newStore(t, []project.Project{{Name: "alpha"}})
	repo.On("Save", ctx, mock.Anything).Return(nil)

	_, err := svc.Add(ctx, project.Project{Name: "alpha"})
	require.ErrorIs(t, err, project.ErrDuplicateName)
	require.Equal(t, 1, svc.Count())
}

func TestServiceAddValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStore(t, nil)

	_, err := svc.Add(ctx, project.Project{Name: "   "})
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestServiceAddClampsCompletion(t *testing.T) {
	ctx := context.Background()
	svc, repo := newStore(t, nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	created, err := svc.Add(ctx, project.Project{Name: "alpha", Completion: 150})
	require.NoError(t, err)
	require.Equal(t, project.Completion(100), created.Completion)
}

func TestServiceUpdatePreservesCreatedDateAndPosition(t *testing.T) {
	ctx := context.Background()
	svc, repo := newStore(t, []project.Project{
		{Name: "alpha", CreatedDate: "2025-01-01"},
		{Name: "beta", CreatedDate: "2025-02-02"},
	})
	repo.On("Save", ctx, mock.Anything).Return(nil)

	updated, err := svc.Update(ctx, "alpha", project.Project{Name: "alpha", Completion: 40, CreatedDate: "2030-12-31"})
	require.NoError(t, err)
	require.Equal(t, "2025-01-01", updated.CreatedDate)
	require.Equal(t, "2026-03-10 14:30:00", updated.LastUpdated)

	list := svc.List(ctx)
	require.Equal(t, "alpha", list[0].Name)
	require.Equal(t, "beta", list[1].Name)
}

func TestServiceUpdateRenameCollision(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStore(t, []project.Project{{Name: "alpha"}, {Name: "beta"}})

	_, err := svc.Update(ctx, "alpha", project.Project{Name: "beta"})
	require.ErrorIs(t, err, project.ErrDuplicateName)
}

func TestServiceUpdateRename(t *testing.T) {
	ctx := context.Background()
	svc, repo := newStore(t, []project.Project{{Name: "alpha"}})
	repo.On("Save", ctx, mock.Anything).Return(nil)

	updated, err := svc.Update(ctx, "alpha", project.Project{Name: "gamma"})
	require.NoError(t, err)
	require.Equal(t, "gamma", updated.Name)

	_, err = svc.Get(ctx, "alpha")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestServiceRemoveNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStore(t, nil)

	err := svc.Remove(ctx, "ghost")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestServiceSetCompletionClamps(t *testing.T) {
	ctx := context.Background()
	svc, repo := newStore(t, []project.Project{{Name: "alpha", Completion: 10}})
	repo.On("Save", ctx, mock.Anything).Return(nil)

	updated, err := svc.SetCompletion(ctx, "alpha", -5)
	require.NoError(t, err)
	require.Equal(t, project.Completion(0), updated.Completion)

	updated, err = svc.SetCompletion(ctx, "alpha", 250)
	require.NoError(t, err)
	require.Equal(t, project.Completion(100), updated.Completion)
}

func TestServiceNamesAreCaseSensitive(t *testing.T) {
	ctx := context.Background()
	svc, repo := newStore(t, []project.Project{{Name: "Alpha"}})
	repo.On("Save", ctx, mock.Anything).Return(nil)

	_, err := svc.Get(ctx, "alpha")
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	_, err = svc.Add(ctx, project.Project{Name: "alpha"})
	require.NoError(t, err)
	require.Equal(t, 2, svc.Count())
}

func TestServiceHooksFireAfterPersist(t *testing.T) {
	ctx := context.Background()
	svc, repo := newStore(t, nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	var events []project.MutationEvent
	svc.OnMutation(func(ev project.MutationEvent) {
		events = append(events, ev)
	})

	_, err := svc.Add(ctx, project.Project{Name: "alpha"})
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, "alpha"))

	require.Len(t, events, 2)
	require.Equal(t, project.MutationEvent{Op: "add", Name: "alpha", Count: 1}, events[0])
	require.Equal(t, project.MutationEvent{Op: "remove", Name: "alpha", Count: 0}, events[1])
}

func TestServiceHooksSkippedOnSaveFailure(t *testing.T) {
	ctx := context.Background()
	svc, repo := newStore(t, nil)
	repo.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))

	fired := false
	svc.OnMutation(func(project.MutationEvent) { fired = true })

	_, err := svc.Add(ctx, project.Project{Name: "alpha"})
	require.Error(t, err)
	require.False(t, fired)
}

func TestServiceListReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStore(t, []project.Project{{Name: "alpha", Dependencies: []string{"lib"}}})

	list := svc.List(ctx)
	list[0].Name = "mutated"
	list[0].Dependencies[0] = "mutated"

	fresh, err := svc.Get(ctx, "alpha")
	require.NoError(t, err)
	require.Equal(t, "alpha", fresh.Name)
	require.Equal(t, []string{"lib"}, fresh.Dependencies)
}

func TestServiceLoadFailureDegradesToEmpty(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Load", ctx).Return(nil, repository.ErrMalformedData).Once()

	svc := project.NewService(ctx, repo, nil)
	require.Equal(t, 0, svc.Count())
}

func TestServiceReloadFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	svc, repo := newStore(t, []project.Project{{Name: "alpha"}})
	repo.On("Load", ctx).Return(nil, errors.New("read error")).Once()

	err := svc.Reload(ctx)
	require.Error(t, err)
	require.Equal(t, 1, svc.Count())

	repo.On("Load", ctx).Return([]project.Project{{Name: "x"}, {Name: "y"}}, nil).Once()
	require.NoError(t, svc.Reload(ctx))
	require.Equal(t, 2, svc.Count())
}
