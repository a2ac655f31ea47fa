// ABOUTME: User account endpoints
// ABOUTME: Admin-facing list and update operations for dashboard accounts

package api

import (
	"context"
	"net/url"

	"github.com/caretrack/caretrack-go/client"
	"github.com/caretrack/caretrack-go/models"
)

type UsersService struct {
	c *client.Client
}

// UserInput holds the writable account fields.
type UserInput struct {
	Email string      `json:"email,omitempty"`
	Name  string      `json:"name,omitempty"`
	Role  models.Role `json:"role,omitempty"`
}

// ListUsersOptions filters the user list.
type ListUsersOptions struct {
	Role models.Role
}

func (s *UsersService) List(ctx context.Context, opts ListUsersOptions) ([]models.UserRecord, error) {
	params := url.Values{}
	if opts.Role != "" {
		params.Set("role", string(opts.Role))
	}

	var users []models.UserRecord
	if err := s.c.Get(ctx, "/api/users", params, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UsersService) Get(ctx context.Context, id string) (*models.UserRecord, error) {
	var user models.UserRecord
	if err := s.c.Get(ctx, "/api/users/"+id, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UsersService) Update(ctx context.Context, id string, input UserInput) (*models.UserRecord, error) {
	var user models.UserRecord
	if err := s.c.Patch(ctx, "/api/users/"+id, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete soft-deletes an account; the record moves to the recycle bin.
func (s *UsersService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, "/api/users/"+id, nil)
}
