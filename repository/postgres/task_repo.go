package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

const taskColumns = `id, title, description, status, priority, project_id, assigned_to_id, created_by_id,
	due_date, estimated_hours, actual_hours, tags, created_at, updated_at, completed_at`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1`, taskColumns)
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) GetAll(ctx context.Context) ([]domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks ORDER BY created_at DESC`, taskColumns)
	return r.queryTasks(ctx, query)
}

// sortColumns whitelists filter sort fields. Unknown names fall back to
// creation time rather than erroring.
var sortColumns = map[string]string{
	"CreatedAt":  "created_at",
	"createdAt":  "created_at",
	"created_at": "created_at",
	"UpdatedAt":  "updated_at",
	"updatedAt":  "updated_at",
	"DueDate":    "due_date",
	"dueDate":    "due_date",
	"Title":      "title",
	"title":      "title",
	"Status":     "status",
	"status":     "status",
	"Priority":   "priority",
	"priority":   "priority",
}

// buildTaskFilter assembles the WHERE clause for a filter: one predicate per
// supplied field, ANDed together. Unparseable status/priority strings are
// silently dropped (permissive-filter contract). Returns an empty clause when
// no predicates apply.
func buildTaskFilter(f repository.TaskFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if status, ok := domain.ParseTaskStatus(f.Status); ok {
		conds = append(conds, "status = "+arg(string(status)))
	}
	if priority, ok := domain.ParseTaskPriority(f.Priority); ok {
		conds = append(conds, "priority = "+arg(string(priority)))
	}
	if f.ProjectID != "" {
		conds = append(conds, "project_id = "+arg(f.ProjectID))
	}
	if f.AssignedToID != "" {
		conds = append(conds, "assigned_to_id = "+arg(f.AssignedToID))
	}
	if f.SearchTerm != "" {
		term := arg("%" + f.SearchTerm + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", term, term))
	}
	if f.DueDateFrom != nil {
		conds = append(conds, "due_date >= "+arg(*f.DueDateFrom))
	}
	if f.DueDateTo != nil {
		conds = append(conds, "due_date <= "+arg(*f.DueDateTo))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func sortClause(sortBy string, descending bool) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if descending {
		direction = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, direction)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, int, error) {
	where, args := buildTaskFilter(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM tasks" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(args, filter.PageSize, filter.Offset())
	query := fmt.Sprintf("SELECT %s FROM tasks%s%s LIMIT $%d OFFSET $%d",
		taskColumns, where, sortClause(filter.SortBy, filter.SortDescending), len(args)+1, len(args)+2)

	tasks, err := r.queryTasks(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *taskRepository) GetByProjectID(ctx context.Context, projectID string) ([]domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE project_id = $1 ORDER BY created_at DESC`, taskColumns)
	return r.queryTasks(ctx, query, projectID)
}

func (r *taskRepository) GetByAssignedUserID(ctx context.Context, userID string) ([]domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE assigned_to_id = $1 ORDER BY created_at DESC`, taskColumns)
	return r.queryTasks(ctx, query, userID)
}

func (r *taskRepository) GetOverdue(ctx context.Context, now time.Time) ([]domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks
	WHERE due_date < $1 AND status NOT IN ($2, $3)
	ORDER BY due_date ASC`, taskColumns)
	return r.queryTasks(ctx, query, now, string(domain.StatusCompleted), string(domain.StatusCancelled))
}

func (r *taskRepository) CountByStatus(ctx context.Context) (map[domain.TaskStatus]int, error) {
	counts := make(map[domain.TaskStatus]int, len(domain.TaskStatuses()))
	for _, status := range domain.TaskStatuses() {
		counts[status] = 0
	}

	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[domain.TaskStatus(status)] = count
	}
	return counts, rows.Err()
}

func (r *taskRepository) CountByPriority(ctx context.Context) (map[domain.TaskPriority]int, error) {
	counts := make(map[domain.TaskPriority]int, len(domain.TaskPriorities()))
	for _, priority := range domain.TaskPriorities() {
		counts[priority] = 0
	}

	rows, err := r.pool.Query(ctx, `SELECT priority, COUNT(*) FROM tasks GROUP BY priority`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			priority string
			count    int
		)
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, err
		}
		counts[domain.TaskPriority(priority)] = count
	}
	return counts, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, title, description, status, priority, project_id, assigned_to_id, created_by_id,
		due_date, estimated_hours, actual_hours, tags)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING created_at, updated_at
	`

	var due interface{}
	if task.DueDate != nil {
		due = *task.DueDate
	}

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		nullString(task.ProjectID),
		nullString(task.AssignedToID),
		task.CreatedByID,
		due,
		task.EstimatedHours,
		task.ActualHours,
		marshalStrings(task.Tags),
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $2,
		description = $3,
		status = $4,
		priority = $5,
		project_id = $6,
		assigned_to_id = $7,
		due_date = $8,
		estimated_hours = $9,
		actual_hours = $10,
		tags = $11,
		completed_at = $12,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	var due, completed interface{}
	if task.DueDate != nil {
		due = *task.DueDate
	}
	if task.CompletedAt != nil {
		completed = *task.CompletedAt
	}

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		nullString(task.ProjectID),
		nullString(task.AssignedToID),
		due,
		task.EstimatedHours,
		task.ActualHours,
		marshalStrings(task.Tags),
		completed,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]domain.Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		status    string
		priority  string
		projectID *string
		assignee  *string
		tags      []byte
	)

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&priority,
		&projectID,
		&assignee,
		&task.CreatedByID,
		&task.DueDate,
		&task.EstimatedHours,
		&task.ActualHours,
		&tags,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.CompletedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	task.ProjectID = derefString(projectID)
	task.AssignedToID = derefString(assignee)
	task.Tags = unmarshalStrings(tags)

	return &task, nil
}
