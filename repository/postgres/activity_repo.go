package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

const activityColumns = `id, task_id, user_id, action, field, old_value, new_value, description, created_at`

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository returns a Postgres-backed implementation of ActivityRepository.
// The table is insert-only; no update or delete statements exist here.
func NewActivityRepository(pool *pgxpool.Pool) repository.ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Append(ctx context.Context, record *domain.ActivityRecord) error {
	if record == nil {
		return domain.ErrInvalidPayload
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO task_activity (id, task_id, user_id, action, field, old_value, new_value, description)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at
	`
	return r.pool.QueryRow(ctx, query,
		record.ID,
		record.TaskID,
		record.UserID,
		string(record.Action),
		nullString(record.Field),
		nullString(record.OldValue),
		nullString(record.NewValue),
		record.Description,
	).Scan(&record.CreatedAt)
}

func (r *activityRepository) Recent(ctx context.Context, limit int) ([]domain.ActivityRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+activityColumns+` FROM task_activity ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActivity(rows)
}

func (r *activityRepository) GetByTaskID(ctx context.Context, taskID string) ([]domain.ActivityRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+activityColumns+` FROM task_activity WHERE task_id = $1 ORDER BY created_at DESC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActivity(rows)
}

func collectActivity(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}) ([]domain.ActivityRecord, error) {
	var records []domain.ActivityRecord
	for rows.Next() {
		var record domain.ActivityRecord
		var (
			action   string
			field    *string
			oldValue *string
			newValue *string
		)
		if err := rows.Scan(
			&record.ID,
			&record.TaskID,
			&record.UserID,
			&action,
			&field,
			&oldValue,
			&newValue,
			&record.Description,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		record.Action = domain.ActivityAction(action)
		record.Field = derefString(field)
		record.OldValue = derefString(oldValue)
		record.NewValue = derefString(newValue)
		records = append(records, record)
	}
	return records, rows.Err()
}
