// Package memory provides in-memory implementations of every repository
// interface. They back the test suite and the storage-free local mode, and
// are written to satisfy the same filtering contract as the Postgres
// implementations.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

// TaskStore is an in-memory TaskRepository. Tasks iterate in insertion order.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
	order []string
}

func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string]*domain.Task)}
}

func (s *TaskStore) GetByID(_ context.Context, id string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return copyTask(task), nil
}

func (s *TaskStore) GetAll(_ context.Context) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(*domain.Task) bool { return true }), nil
}

func (s *TaskStore) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, int, error) {
	s.mu.RLock()
	matches := s.collect(taskPredicate(filter))
	s.mu.RUnlock()

	total := len(matches)
	sortTasks(matches, filter.SortBy, filter.SortDescending)

	offset := filter.Offset()
	if offset >= len(matches) {
		return nil, total, nil
	}
	end := offset + filter.PageSize
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], total, nil
}

func (s *TaskStore) GetByProjectID(_ context.Context, projectID string) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(t *domain.Task) bool { return t.ProjectID == projectID }), nil
}

func (s *TaskStore) GetByAssignedUserID(_ context.Context, userID string) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(t *domain.Task) bool { return t.AssignedToID == userID }), nil
}

func (s *TaskStore) GetOverdue(_ context.Context, now time.Time) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(t *domain.Task) bool { return t.IsOverdue(now) }), nil
}

func (s *TaskStore) CountByStatus(_ context.Context) (map[domain.TaskStatus]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[domain.TaskStatus]int, len(domain.TaskStatuses()))
	for _, status := range domain.TaskStatuses() {
		counts[status] = 0
	}
	for _, task := range s.tasks {
		counts[task.Status]++
	}
	return counts, nil
}

func (s *TaskStore) CountByPriority(_ context.Context) (map[domain.TaskPriority]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[domain.TaskPriority]int, len(domain.TaskPriorities()))
	for _, priority := range domain.TaskPriorities() {
		counts[priority] = 0
	}
	for _, task := range s.tasks {
		counts[task.Priority]++
	}
	return counts, nil
}

func (s *TaskStore) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	stampNew(&task.CreatedAt, &task.UpdatedAt)
	s.tasks[task.ID] = copyTask(task)
	s.order = append(s.order, task.ID)
	return copyTask(task), nil
}

func (s *TaskStore) Update(_ context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now()
	s.tasks[task.ID] = copyTask(task)
	return nil
}

func (s *TaskStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(s.tasks, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *TaskStore) collect(match func(*domain.Task) bool) []domain.Task {
	var tasks []domain.Task
	for _, id := range s.order {
		if task, ok := s.tasks[id]; ok && match(task) {
			tasks = append(tasks, *copyTask(task))
		}
	}
	return tasks
}

func taskPredicate(f repository.TaskFilter) func(*domain.Task) bool {
	status, hasStatus := domain.ParseTaskStatus(f.Status)
	priority, hasPriority := domain.ParseTaskPriority(f.Priority)
	search := strings.ToLower(f.SearchTerm)

	return func(t *domain.Task) bool {
		if hasStatus && t.Status != status {
			return false
		}
		if hasPriority && t.Priority != priority {
			return false
		}
		if f.ProjectID != "" && t.ProjectID != f.ProjectID {
			return false
		}
		if f.AssignedToID != "" && t.AssignedToID != f.AssignedToID {
			return false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			return false
		}
		if f.DueDateFrom != nil && (t.DueDate == nil || t.DueDate.Before(*f.DueDateFrom)) {
			return false
		}
		if f.DueDateTo != nil && (t.DueDate == nil || t.DueDate.After(*f.DueDateTo)) {
			return false
		}
		return true
	}
}

func sortTasks(tasks []domain.Task, sortBy string, descending bool) {
	less := func(a, b *domain.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	switch sortBy {
	case "Title", "title":
		less = func(a, b *domain.Task) bool { return a.Title < b.Title }
	case "Status", "status":
		less = func(a, b *domain.Task) bool { return a.Status < b.Status }
	case "Priority", "priority":
		less = func(a, b *domain.Task) bool { return a.Priority < b.Priority }
	case "DueDate", "dueDate":
		less = func(a, b *domain.Task) bool {
			if a.DueDate == nil {
				return b.DueDate != nil
			}
			if b.DueDate == nil {
				return false
			}
			return a.DueDate.Before(*b.DueDate)
		}
	case "UpdatedAt", "updatedAt":
		less = func(a, b *domain.Task) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if descending {
			return less(&tasks[j], &tasks[i])
		}
		return less(&tasks[i], &tasks[j])
	})
}

func copyTask(t *domain.Task) *domain.Task {
	clone := *t
	clone.Tags = append([]string(nil), t.Tags...)
	if t.DueDate != nil {
		due := *t.DueDate
		clone.DueDate = &due
	}
	if t.CompletedAt != nil {
		completed := *t.CompletedAt
		clone.CompletedAt = &completed
	}
	return &clone
}

func stampNew(createdAt, updatedAt *time.Time) {
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = *createdAt
	}
}
