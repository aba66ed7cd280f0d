package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/backend/domain"
)

// CommentStore is an in-memory CommentRepository.
type CommentStore struct {
	mu       sync.RWMutex
	comments map[string]*domain.Comment
	order    []string
}

func NewCommentStore() *CommentStore {
	return &CommentStore{comments: make(map[string]*domain.Comment)}
}

func (s *CommentStore) GetByID(_ context.Context, id string) (*domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comment, ok := s.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *comment
	return &clone, nil
}

func (s *CommentStore) GetByTaskID(_ context.Context, taskID string) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var comments []domain.Comment
	for _, id := range s.order {
		if comment := s.comments[id]; comment != nil && comment.TaskID == taskID {
			comments = append(comments, *comment)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[j].CreatedAt.Before(comments[i].CreatedAt)
	})
	return comments, nil
}

func (s *CommentStore) CountByTaskID(_ context.Context, taskID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, comment := range s.comments {
		if comment.TaskID == taskID {
			count++
		}
	}
	return count, nil
}

func (s *CommentStore) Create(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	if comment == nil {
		return nil, domain.ErrInvalidPayload
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	stampNew(&comment.CreatedAt, &comment.UpdatedAt)
	clone := *comment
	s.comments[comment.ID] = &clone
	s.order = append(s.order, comment.ID)
	return comment, nil
}

func (s *CommentStore) Update(_ context.Context, comment *domain.Comment) error {
	if comment == nil {
		return domain.ErrInvalidPayload
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[comment.ID]; !ok {
		return domain.ErrCommentNotFound
	}
	comment.IsEdited = true
	comment.UpdatedAt = time.Now()
	clone := *comment
	s.comments[comment.ID] = &clone
	return nil
}

func (s *CommentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(s.comments, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
