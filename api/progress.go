// ABOUTME: Progress note endpoints
// ABOUTME: List and record progress entries against care packages

package api

import (
	"context"
	"net/url"

	"github.com/caretrack/caretrack-go/client"
	"github.com/caretrack/caretrack-go/models"
)

type ProgressService struct {
	c *client.Client
}

// ProgressInput holds the fields for recording a progress note.
type ProgressInput struct {
	CarePackageID string `json:"care_package_id"`
	Note          string `json:"note"`
}

// ListProgressOptions filters progress entries.
type ListProgressOptions struct {
	CarePackageID string
	CarerID       string
}

func (s *ProgressService) List(ctx context.Context, opts ListProgressOptions) ([]models.ProgressEntry, error) {
	params := url.Values{}
	if opts.CarePackageID != "" {
		params.Set("care_package_id", opts.CarePackageID)
	}
	if opts.CarerID != "" {
		params.Set("carer_id", opts.CarerID)
	}

	var entries []models.ProgressEntry
	if err := s.c.Get(ctx, "/api/progress", params, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *ProgressService) Create(ctx context.Context, input ProgressInput) (*models.ProgressEntry, error) {
	var entry models.ProgressEntry
	if err := s.c.Post(ctx, "/api/progress", input, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
