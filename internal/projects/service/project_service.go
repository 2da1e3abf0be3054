package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/pageforge/pageforge-backend/internal/projects/domain"
)

// Store is the persistence contract the service depends on.
type Store interface {
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, name, htmlVersion, editorVersion string) (*domain.Project, error)
	Update(ctx context.Context, id, name, htmlVersion, editorVersion string) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// ListCache is an optional read-through cache for List results.
type ListCache interface {
	Get(ctx context.Context) ([]domain.Project, bool, error)
	Set(ctx context.Context, projects []domain.Project) error
	Invalidate(ctx context.Context) error
}

// SaveInput is the inbound shape for Save. An empty ID means create;
// a non-empty ID means replace the record with that identifier.
type SaveInput struct {
	ID            string
	Name          string
	HTMLVersion   string
	EditorVersion string
}

// ProjectService handles project-related business logic
type ProjectService struct {
	store Store
	cache ListCache // nil when caching is disabled
}

// NewProjectService creates a new project service
func NewProjectService(store Store, cache ListCache) *ProjectService {
	return &ProjectService{
		store: store,
		cache: cache,
	}
}

// List returns all projects, most recently updated first.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	if s.cache != nil {
		if projects, ok, err := s.cache.Get(ctx); err == nil && ok {
			return projects, nil
		} else if err != nil {
			log.Printf("[warn] operation=list_projects cache read failed: %v", err)
		}
	}

	projects, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStore, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, projects); err != nil {
			log.Printf("[warn] operation=list_projects cache write failed: %v", err)
		}
	}
	return projects, nil
}

// Get returns a single project by id.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: project id is required", domain.ErrValidation)
	}
	p, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	return p, nil
}

// Save creates the project when in.ID is empty and replaces it
// otherwise. Saving with an id that matches no record is ErrNotFound;
// the service never falls back to creating under a caller-supplied id.
func (s *ProjectService) Save(ctx context.Context, in SaveInput) (*domain.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", domain.ErrValidation)
	}

	var (
		p   *domain.Project
		err error
	)
	if in.ID == "" {
		p, err = s.store.Create(ctx, name, in.HTMLVersion, in.EditorVersion)
	} else {
		p, err = s.store.Update(ctx, in.ID, name, in.HTMLVersion, in.EditorVersion)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStore, err)
	}

	s.invalidate(ctx)
	return p, nil
}

// Delete removes a project by id. A missing id is rejected before the
// store is touched; an unknown id is ErrNotFound.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: project id is required", domain.ErrValidation)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrStore, err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *ProjectService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("[warn] operation=invalidate_cache error=%v", err)
	}
}
