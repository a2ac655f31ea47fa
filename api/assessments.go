// ABOUTME: Competency assessment endpoints
// ABOUTME: CRUD operations for carer competency assessments

package api

import (
	"context"
	"net/url"
	"time"

	"github.com/caretrack/caretrack-go/client"
	"github.com/caretrack/caretrack-go/models"
)

type AssessmentsService struct {
	c *client.Client
}

// AssessmentInput holds the writable assessment fields.
type AssessmentInput struct {
	CarerID     string     `json:"carer_id"`
	Competency  string     `json:"competency"`
	Status      string     `json:"status,omitempty"`
	Score       *int       `json:"score,omitempty"`
	ReviewDueAt *time.Time `json:"review_due_at,omitempty"`
}

// ListAssessmentsOptions filters the assessment list.
type ListAssessmentsOptions struct {
	CarerID string
	Status  string
}

func (s *AssessmentsService) List(ctx context.Context, opts ListAssessmentsOptions) ([]models.Assessment, error) {
	params := url.Values{}
	if opts.CarerID != "" {
		params.Set("carer_id", opts.CarerID)
	}
	if opts.Status != "" {
		params.Set("status", opts.Status)
	}

	var assessments []models.Assessment
	if err := s.c.Get(ctx, "/api/assessments", params, &assessments); err != nil {
		return nil, err
	}
	return assessments, nil
}

func (s *AssessmentsService) Get(ctx context.Context, id string) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := s.c.Get(ctx, "/api/assessments/"+id, nil, &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (s *AssessmentsService) Create(ctx context.Context, input AssessmentInput) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := s.c.Post(ctx, "/api/assessments", input, &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (s *AssessmentsService) Update(ctx context.Context, id string, input AssessmentInput) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := s.c.Put(ctx, "/api/assessments/"+id, input, &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// Delete soft-deletes an assessment; the record moves to the recycle bin.
func (s *AssessmentsService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, "/api/assessments/"+id, nil)
}
