// ABOUTME: Shift scheduling endpoints
// ABOUTME: List, create and carer assignment operations for work shifts

package api

import (
	"context"
	"net/url"
	"time"

	"github.com/caretrack/caretrack-go/client"
	"github.com/caretrack/caretrack-go/models"
)

type ShiftsService struct {
	c *client.Client
}

// ShiftInput holds the writable shift fields.
type ShiftInput struct {
	CarePackageID string    `json:"care_package_id"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
}

// ListShiftsOptions filters the shift list.
type ListShiftsOptions struct {
	CarerID  string
	Assigned *bool
	From     *time.Time
	To       *time.Time
}

func (s *ShiftsService) List(ctx context.Context, opts ListShiftsOptions) ([]models.Shift, error) {
	params := url.Values{}
	if opts.CarerID != "" {
		params.Set("carer_id", opts.CarerID)
	}
	if opts.Assigned != nil {
		if *opts.Assigned {
			params.Set("assigned", "true")
		} else {
			params.Set("assigned", "false")
		}
	}
	if opts.From != nil {
		params.Set("from", opts.From.Format(time.RFC3339))
	}
	if opts.To != nil {
		params.Set("to", opts.To.Format(time.RFC3339))
	}

	var shifts []models.Shift
	if err := s.c.Get(ctx, "/api/shifts", params, &shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

func (s *ShiftsService) Get(ctx context.Context, id string) (*models.Shift, error) {
	var shift models.Shift
	if err := s.c.Get(ctx, "/api/shifts/"+id, nil, &shift); err != nil {
		return nil, err
	}
	return &shift, nil
}

func (s *ShiftsService) Create(ctx context.Context, input ShiftInput) (*models.Shift, error) {
	var shift models.Shift
	if err := s.c.Post(ctx, "/api/shifts", input, &shift); err != nil {
		return nil, err
	}
	return &shift, nil
}

// Assign puts a carer on the shift.
func (s *ShiftsService) Assign(ctx context.Context, id, carerID string) (*models.Shift, error) {
	body := struct {
		CarerID string `json:"carer_id"`
	}{CarerID: carerID}

	var shift models.Shift
	if err := s.c.Post(ctx, "/api/shifts/"+id+"/assign", body, &shift); err != nil {
		return nil, err
	}
	return &shift, nil
}

// Unassign removes the current carer from the shift.
func (s *ShiftsService) Unassign(ctx context.Context, id string) (*models.Shift, error) {
	var shift models.Shift
	if err := s.c.Post(ctx, "/api/shifts/"+id+"/unassign", nil, &shift); err != nil {
		return nil, err
	}
	return &shift, nil
}

func (s *ShiftsService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, "/api/shifts/"+id, nil)
}
