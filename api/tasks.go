// ABOUTME: Care task endpoints
// ABOUTME: CRUD plus completion for tasks assigned to carers

package api

import (
	"context"
	"net/url"
	"time"

	"github.com/caretrack/caretrack-go/client"
	"github.com/caretrack/caretrack-go/models"
)

type TasksService struct {
	c *client.Client
}

// TaskInput holds the writable task fields.
type TaskInput struct {
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	CarerID       string     `json:"carer_id,omitempty"`
	CarePackageID string     `json:"care_package_id,omitempty"`
	DueAt         *time.Time `json:"due_at,omitempty"`
}

// ListTasksOptions filters the task list.
type ListTasksOptions struct {
	Status  models.TaskStatus
	CarerID string
}

func (s *TasksService) List(ctx context.Context, opts ListTasksOptions) ([]models.Task, error) {
	params := url.Values{}
	if opts.Status != "" {
		params.Set("status", string(opts.Status))
	}
	if opts.CarerID != "" {
		params.Set("carer_id", opts.CarerID)
	}

	var tasks []models.Task
	if err := s.c.Get(ctx, "/api/tasks", params, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TasksService) Get(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := s.c.Get(ctx, "/api/tasks/"+id, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TasksService) Create(ctx context.Context, input TaskInput) (*models.Task, error) {
	var task models.Task
	if err := s.c.Post(ctx, "/api/tasks", input, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TasksService) Update(ctx context.Context, id string, input TaskInput) (*models.Task, error) {
	var task models.Task
	if err := s.c.Put(ctx, "/api/tasks/"+id, input, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Complete marks a task done and stamps the completion time server-side.
func (s *TasksService) Complete(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := s.c.Post(ctx, "/api/tasks/"+id+"/complete", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete soft-deletes a task; the record moves to the recycle bin.
func (s *TasksService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, "/api/tasks/"+id, nil)
}
