// ABOUTME: Typed endpoint services for the CareTrack REST API
// ABOUTME: Groups one service per resource over the shared client adapter

package api

import "github.com/caretrack/caretrack-go/client"

// API bundles the per-resource services behind one constructor so callers
// wire the client once.
type API struct {
	Carers       *CarersService
	Tasks        *TasksService
	CarePackages *CarePackagesService
	Assessments  *AssessmentsService
	Shifts       *ShiftsService
	Invitations  *InvitationsService
	Users        *UsersService
	RecycleBin   *RecycleBinService
	Progress     *ProgressService
}

// New creates the service set for a client.
func New(c *client.Client) *API {
	return &API{
		Carers:       &CarersService{c: c},
		Tasks:        &TasksService{c: c},
		CarePackages: &CarePackagesService{c: c},
		Assessments:  &AssessmentsService{c: c},
		Shifts:       &ShiftsService{c: c},
		Invitations:  &InvitationsService{c: c},
		Users:        &UsersService{c: c},
		RecycleBin:   &RecycleBinService{c: c},
		Progress:     &ProgressService{c: c},
	}
}
