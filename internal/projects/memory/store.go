// Package memory provides an in-memory project store with the same
// contract as the Postgres repository. It backs tests and local
// development without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pageforge/pageforge-backend/internal/projects/domain"
)

// Store keeps projects in a map guarded by a mutex. Concurrent updates
// to the same id are last-write-wins, matching the Postgres store.
type Store struct {
	mu       sync.Mutex
	projects map[string]domain.Project
}

func NewStore() *Store {
	return &Store{projects: make(map[string]domain.Project)}
}

func (s *Store) List(ctx context.Context) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *Store) Create(ctx context.Context, name, htmlVersion, editorVersion string) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	p := domain.Project{
		ID:            uuid.New().String(),
		Name:          name,
		HTMLVersion:   htmlVersion,
		EditorVersion: editorVersion,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.projects[p.ID] = p
	return &p, nil
}

func (s *Store) Update(ctx context.Context, id, name, htmlVersion, editorVersion string) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Name = name
	p.HTMLVersion = htmlVersion
	p.EditorVersion = editorVersion
	p.UpdatedAt = time.Now().UTC()
	s.projects[id] = p
	return &p, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}
