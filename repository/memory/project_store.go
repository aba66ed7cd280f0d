package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/backend/domain"
)

// ProjectStore is an in-memory ProjectRepository. Projects iterate in
// insertion order, which is the "store order" the dashboard's first-10 rule
// refers to.
type ProjectStore struct {
	mu       sync.RWMutex
	projects map[string]*domain.Project
	order    []string
}

func NewProjectStore() *ProjectStore {
	return &ProjectStore{projects: make(map[string]*domain.Project)}
}

func (s *ProjectStore) GetByID(_ context.Context, id string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return copyProject(project), nil
}

func (s *ProjectStore) GetAll(_ context.Context) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(*domain.Project) bool { return true }), nil
}

func (s *ProjectStore) GetByMemberID(_ context.Context, userID string) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(p *domain.Project) bool { return p.HasMember(userID) }), nil
}

func (s *ProjectStore) Create(_ context.Context, project *domain.Project) (*domain.Project, error) {
	if project == nil {
		return nil, domain.ErrInvalidPayload
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	stampNew(&project.CreatedAt, &project.UpdatedAt)
	s.projects[project.ID] = copyProject(project)
	s.order = append(s.order, project.ID)
	return copyProject(project), nil
}

func (s *ProjectStore) Update(_ context.Context, project *domain.Project) error {
	if project == nil {
		return domain.ErrInvalidPayload
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	project.UpdatedAt = time.Now()
	s.projects[project.ID] = copyProject(project)
	return nil
}

func (s *ProjectStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(s.projects, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *ProjectStore) collect(match func(*domain.Project) bool) []domain.Project {
	var projects []domain.Project
	for _, id := range s.order {
		if project, ok := s.projects[id]; ok && match(project) {
			projects = append(projects, *copyProject(project))
		}
	}
	return projects
}

func copyProject(p *domain.Project) *domain.Project {
	clone := *p
	clone.MemberIDs = append([]string(nil), p.MemberIDs...)
	if p.StartDate != nil {
		start := *p.StartDate
		clone.StartDate = &start
	}
	if p.EndDate != nil {
		end := *p.EndDate
		clone.EndDate = &end
	}
	return &clone
}
