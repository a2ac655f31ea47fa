// ABOUTME: User invitation endpoints
// ABOUTME: Issue, resend and accept invitations for new dashboard users

package api

import (
	"context"

	"github.com/caretrack/caretrack-go/client"
	"github.com/caretrack/caretrack-go/models"
)

type InvitationsService struct {
	c *client.Client
}

// InvitationInput holds the fields for issuing an invitation.
type InvitationInput struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// AcceptInvitationInput carries the token from the invitation email plus
// the new user's chosen credentials.
type AcceptInvitationInput struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (s *InvitationsService) List(ctx context.Context) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := s.c.Get(ctx, "/api/invitations", nil, &invitations); err != nil {
		return nil, err
	}
	return invitations, nil
}

func (s *InvitationsService) Create(ctx context.Context, input InvitationInput) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := s.c.Post(ctx, "/api/invitations", input, &invitation); err != nil {
		return nil, err
	}
	return &invitation, nil
}

// Resend re-issues the invitation email and extends the expiry.
func (s *InvitationsService) Resend(ctx context.Context, id string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := s.c.Post(ctx, "/api/invitations/"+id+"/resend", nil, &invitation); err != nil {
		return nil, err
	}
	return &invitation, nil
}

// Accept redeems an invitation token and creates the user account.
func (s *InvitationsService) Accept(ctx context.Context, input AcceptInvitationInput) (*models.UserRecord, error) {
	var user models.UserRecord
	if err := s.c.Post(ctx, "/api/invitations/accept", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *InvitationsService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, "/api/invitations/"+id, nil)
}
