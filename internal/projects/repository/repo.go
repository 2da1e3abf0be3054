package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pageforge/pageforge-backend/internal/projects/domain"
)

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List returns all projects, most recently updated first.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	const q = `
SELECT id, name, html_version, editor_version, created_at, updated_at
FROM projects
ORDER BY updated_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.HTMLVersion, &p.EditorVersion, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single project by id.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	const q = `
SELECT id, name, html_version, editor_version, created_at, updated_at
FROM projects
WHERE id = $1;
`
	var p domain.Project
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&p.ID, &p.Name, &p.HTMLVersion, &p.EditorVersion, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project with a fresh identifier. Both versions
// land in the same INSERT, so a record can never carry one without the
// other.
func (r *ProjectRepository) Create(ctx context.Context, name, htmlVersion, editorVersion string) (*domain.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	for i := 0; i < 5; i++ {
		id := uuid.New().String()

		const q = `
INSERT INTO projects (id, name, html_version, editor_version)
VALUES ($1, $2, $3, $4)
RETURNING id, name, html_version, editor_version, created_at, updated_at;
`
		var p domain.Project
		err := r.db.QueryRowContext(ctx, q, id, name, htmlVersion, editorVersion).
			Scan(&p.ID, &p.Name, &p.HTMLVersion, &p.EditorVersion, &p.CreatedAt, &p.UpdatedAt)

		if err == nil {
			return &p, nil
		}

		// unique violation on id → retry
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

// Update replaces all mutable fields of an existing project and
// refreshes updated_at. A missing id is ErrNotFound, never an implicit
// create. Equal created_at/updated_at after a same-instant update is
// accepted (clock resolution).
func (r *ProjectRepository) Update(ctx context.Context, id, name, htmlVersion, editorVersion string) (*domain.Project, error) {
	const q = `
UPDATE projects
SET name = $2, html_version = $3, editor_version = $4, updated_at = now()
WHERE id = $1
RETURNING id, name, html_version, editor_version, created_at, updated_at;
`
	var p domain.Project
	err := r.db.QueryRowContext(ctx, q, id, name, htmlVersion, editorVersion).
		Scan(&p.ID, &p.Name, &p.HTMLVersion, &p.EditorVersion, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Delete removes a project. Deleting an id that does not exist (or was
// already deleted) is ErrNotFound, not a silent success.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	const q = `
DELETE FROM projects
WHERE id = $1;
`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
