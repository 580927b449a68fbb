package task

import (
	"context"
	"errors"
	"log"

	domain "github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/modules/cache"
	"github.com/google/uuid"
)

var (
	// ErrTitleRequired is returned when a task is created without a title.
	ErrTitleRequired = errors.New("title is required")
	// ErrTitleEmpty is returned when an update sets the title to an empty string.
	ErrTitleEmpty = errors.New("title cannot be empty")
)

// Status filter values accepted by List.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// UpdateFields carries the optional fields of a task update. Nil fields are
// left untouched.
type UpdateFields struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TaskService implements task CRUD with a cache-aside read path. The cache
// may be nil, in which case every read goes to the store.
type TaskService struct {
	repo  *Repository
	cache *cache.Cache
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *Repository, c *cache.Cache) *TaskService {
	return &TaskService{
		repo:  repo,
		cache: c,
	}
}

// Create persists a new task. Completed defaults to false when absent.
func (s *TaskService) Create(ctx context.Context, title, description string, completed *bool) (*domain.Task, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}

	task := &domain.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
	}
	if completed != nil {
		task.Completed = *completed
	}

	if err := s.repo.Create(task); err != nil {
		return nil, err
	}

	s.invalidateLists(ctx)
	return task, nil
}

// Get retrieves a task by ID.
func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	var cached domain.Task
	if s.cacheGet(ctx, taskKey(id), &cached) {
		return &cached, nil
	}

	task, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, taskKey(id), task)
	return task, nil
}

// List returns tasks newest-created-first, optionally filtered by status
// ("completed" or "pending"). Any other value applies no filter.
func (s *TaskService) List(ctx context.Context, status string) ([]*domain.Task, error) {
	var cached []*domain.Task
	if s.cacheGet(ctx, listKey(status), &cached) {
		return cached, nil
	}

	tasks, err := s.repo.FindAll(statusFilter(status))
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, listKey(status), tasks)
	return tasks, nil
}

// Update applies a partial update and returns the updated task.
func (s *TaskService) Update(ctx context.Context, id string, fields UpdateFields) (*domain.Task, error) {
	task, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if fields.Title != nil {
		if *fields.Title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *fields.Title
	}
	if fields.Description != nil {
		task.Description = *fields.Description
	}
	if fields.Completed != nil {
		task.Completed = *fields.Completed
	}

	if err := s.repo.Save(task); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return task, nil
}

// Delete removes a task by ID.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

// statusFilter translates the status query value into a completed filter.
func statusFilter(status string) *bool {
	switch status {
	case StatusCompleted:
		completed := true
		return &completed
	case StatusPending:
		completed := false
		return &completed
	default:
		return nil
	}
}

func taskKey(id string) string {
	return "task:" + id
}

func listKey(status string) string {
	switch status {
	case StatusCompleted, StatusPending:
		return "tasks:" + status
	default:
		return "tasks:all"
	}
}

// cacheGet reads a key from the cache. Cache failures only cost the hit:
// they are logged and the caller falls through to the store.
func (s *TaskService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Printf("[task] cache read failed for %s: %v", key, err)
		return false
	}
	return hit
}

func (s *TaskService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Printf("[task] cache write failed for %s: %v", key, err)
	}
}

// invalidate drops the cached task and every cached list after a write.
func (s *TaskService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, taskKey(id)); err != nil {
		log.Printf("[task] cache invalidation failed for %s: %v", taskKey(id), err)
	}
	s.invalidateLists(ctx)
}

func (s *TaskService) invalidateLists(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "tasks:*"); err != nil {
		log.Printf("[task] cache invalidation failed for task lists: %v", err)
	}
}
