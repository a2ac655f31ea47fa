// ABOUTME: Care package endpoints
// ABOUTME: CRUD operations for packages grouping work for one client under care

package api

import (
	"context"

	"github.com/caretrack/caretrack-go/client"
	"github.com/caretrack/caretrack-go/models"
)

type CarePackagesService struct {
	c *client.Client
}

// CarePackageInput holds the writable care package fields.
type CarePackageInput struct {
	ClientName string `json:"client_name"`
	Postcode   string `json:"postcode,omitempty"`
	Active     bool   `json:"active"`
}

func (s *CarePackagesService) List(ctx context.Context) ([]models.CarePackage, error) {
	var packages []models.CarePackage
	if err := s.c.Get(ctx, "/api/care-packages", nil, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

func (s *CarePackagesService) Get(ctx context.Context, id string) (*models.CarePackage, error) {
	var pkg models.CarePackage
	if err := s.c.Get(ctx, "/api/care-packages/"+id, nil, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (s *CarePackagesService) Create(ctx context.Context, input CarePackageInput) (*models.CarePackage, error) {
	var pkg models.CarePackage
	if err := s.c.Post(ctx, "/api/care-packages", input, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (s *CarePackagesService) Update(ctx context.Context, id string, input CarePackageInput) (*models.CarePackage, error) {
	var pkg models.CarePackage
	if err := s.c.Put(ctx, "/api/care-packages/"+id, input, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (s *CarePackagesService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, "/api/care-packages/"+id, nil)
}
