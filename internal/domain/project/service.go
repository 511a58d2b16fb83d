package project

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// MutationEvent describes a completed store mutation. Count is the project
// count after the mutation.
type MutationEvent struct {
	Op    string
	Name  string
	Count int
}

// MutationHook is invoked after a mutation has been persisted.
// Hooks run with the store lock held and must not call back into the store.
type MutationHook func(MutationEvent)

// Service owns the canonical in-memory project list and its persistence.
// All reads and writes are serialized through a single mutex; background
// tasks and the tool surface share this instance.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	projects []Project
	hooks    []MutationHook
}

// NewService loads the persisted list and returns a ready store. A missing
// data file yields an empty list; malformed data is logged as a warning and
// also degrades to an empty list rather than failing startup.
func NewService(ctx context.Context, repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
	projects, err := repo.Load(ctx)
	if err != nil {
		logger.Warn("failed to load project data, starting empty", "error", err)
		projects = nil
	}
	s.projects = projects
	return s
}

// SetClock overrides the time source. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// OnMutation registers a hook to run after every persisted mutation.
func (s *Service) OnMutation(hook MutationHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Add appends a new project. The name must not already exist.
func (s *Service) Add(ctx context.Context, p Project) (*Project, error) {
	if err := ValidateInput(p); err != nil {
		return nil, err
	}
	p = normalize(p)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(p.Name) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, p.Name)
	}

	now := s.now()
	p.CreatedDate = now.Format(DateLayout)
	p.LastUpdated = now.Format(TimestampLayout)

	s.projects = append(s.projects, p)
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	s.fireHooks(MutationEvent{Op: "add", Name: p.Name, Count: len(s.projects)})

	out := p.Clone()
	return &out, nil
}

// Update replaces the project stored under name, keeping its position and
// original created date. Renaming is allowed as long as the new name is free.
func (s *Service) Update(ctx context.Context, name string, p Project) (*Project, error) {
	if err := ValidateInput(p); err != nil {
		return nil, err
	}
	p = normalize(p)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	if p.Name != name && s.indexOf(p.Name) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, p.Name)
	}

	p.CreatedDate = s.projects[idx].CreatedDate
	p.LastUpdated = s.now().Format(TimestampLayout)

	s.projects[idx] = p
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	s.fireHooks(MutationEvent{Op: "update", Name: p.Name, Count: len(s.projects)})

	out := p.Clone()
	return &out, nil
}

// Remove deletes the project stored under name.
func (s *Service) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(name)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}

	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.fireHooks(MutationEvent{Op: "remove", Name: name, Count: len(s.projects)})
	return nil
}

// SetCompletion updates only the completion percentage, clamped to [0,100].
func (s *Service) SetCompletion(ctx context.Context, name string, value int) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}

	s.projects[idx].Completion = clamp(Completion(value))
	s.projects[idx].LastUpdated = s.now().Format(TimestampLayout)

	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	s.fireHooks(MutationEvent{Op: "set_completion", Name: name, Count: len(s.projects)})

	out := s.projects[idx].Clone()
	return &out, nil
}

// Get returns a copy of the project stored under name.
func (s *Service) Get(ctx context.Context, name string) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	out := s.projects[idx].Clone()
	return &out, nil
}

// List returns a snapshot of all projects in canonical (insertion) order.
func (s *Service) List(ctx context.Context) []Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

// Count returns the current number of projects.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.projects)
}

// Reload re-reads the persisted list, replacing the in-memory state. Unlike
// the initial load, a failure leaves the current state untouched.
func (s *Service) Reload(ctx context.Context) error {
	projects, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("reloading project data: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = projects
	return nil
}

// indexOf finds a project by exact, case-sensitive name. Caller holds the lock.
func (s *Service) indexOf(name string) int {
	for i, p := range s.projects {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func (s *Service) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.projects); err != nil {
		return fmt.Errorf("saving project data: %w", err)
	}
	return nil
}

func (s *Service) fireHooks(ev MutationEvent) {
	for _, hook := range s.hooks {
		hook(ev)
	}
}
