package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

const projectColumns = `id, name, description, status, owner_id, member_ids, start_date, end_date, color, created_at, updated_at`

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository returns a Postgres-backed implementation of ProjectRepository.
func NewProjectRepository(pool *pgxpool.Pool) repository.ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

func (r *projectRepository) GetAll(ctx context.Context) ([]domain.Project, error) {
	return r.queryProjects(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at ASC`)
}

func (r *projectRepository) GetByMemberID(ctx context.Context, userID string) ([]domain.Project, error) {
	// The owner is implicitly a member even when missing from member_ids.
	const query = `
	SELECT ` + projectColumns + `
	FROM projects
	WHERE owner_id = $1 OR member_ids @> $2
	ORDER BY created_at ASC
	`
	return r.queryProjects(ctx, query, userID, marshalStrings([]string{userID}))
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if project == nil {
		return nil, domain.ErrInvalidPayload
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO projects (id, name, description, status, owner_id, member_ids, start_date, end_date, color)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at, updated_at
	`

	var start, end interface{}
	if project.StartDate != nil {
		start = *project.StartDate
	}
	if project.EndDate != nil {
		end = *project.EndDate
	}

	if err := r.pool.QueryRow(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		string(project.Status),
		project.OwnerID,
		marshalStrings(project.MemberIDs),
		start,
		end,
		project.Color,
	).Scan(&project.CreatedAt, &project.UpdatedAt); err != nil {
		return nil, err
	}
	return project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	if project == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE projects
	SET name = $2,
		description = $3,
		status = $4,
		member_ids = $5,
		start_date = $6,
		end_date = $7,
		color = $8,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	var start, end interface{}
	if project.StartDate != nil {
		start = *project.StartDate
	}
	if project.EndDate != nil {
		end = *project.EndDate
	}

	if err := r.pool.QueryRow(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		string(project.Status),
		marshalStrings(project.MemberIDs),
		start,
		end,
		project.Color,
	).Scan(&project.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProjectNotFound
		}
		return err
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *projectRepository) queryProjects(ctx context.Context, query string, args ...interface{}) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func scanProject(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Project, error) {
	var project domain.Project
	var (
		status  string
		members []byte
	)

	if err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&status,
		&project.OwnerID,
		&members,
		&project.StartDate,
		&project.EndDate,
		&project.Color,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	project.Status = domain.ProjectStatus(status)
	project.MemberIDs = unmarshalStrings(members)
	return &project, nil
}
