// ABOUTME: In-memory fixture store for the mock CareTrack backend
// ABOUTME: Seeds deterministic records and implements soft delete via the recycle bin

package mockapi

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/caretrack/caretrack-go/models"
)

// store holds all mock state behind one lock. Handlers copy records out
// under the lock and never hand internal pointers to callers.
type store struct {
	mu sync.Mutex

	users        map[string]models.UserRecord
	passwords    map[string]string // email -> password
	carers       map[string]models.Carer
	tasks        map[string]models.Task
	carePackages map[string]models.CarePackage
	assessments  map[string]models.Assessment
	shifts       map[string]models.Shift
	invitations  map[string]models.Invitation
	progress     map[string]models.ProgressEntry
	recycleBin   map[string]recycledRecord

	csrfTokens map[string]bool
}

// recycledRecord keeps the original value alongside the bin entry so a
// restore can put it back untouched.
type recycledRecord struct {
	item  models.RecycleBinItem
	value any
}

func newStore() *store {
	s := &store{
		users:        make(map[string]models.UserRecord),
		passwords:    make(map[string]string),
		carers:       make(map[string]models.Carer),
		tasks:        make(map[string]models.Task),
		carePackages: make(map[string]models.CarePackage),
		assessments:  make(map[string]models.Assessment),
		shifts:       make(map[string]models.Shift),
		invitations:  make(map[string]models.Invitation),
		progress:     make(map[string]models.ProgressEntry),
		recycleBin:   make(map[string]recycledRecord),
		csrfTokens:   make(map[string]bool),
	}
	s.seed()
	return s
}

// seed loads a small deterministic data set so CLI demos and end-to-end
// tests have something to work with on a fresh start.
func (s *store) seed() {
	now := time.Now().UTC().Truncate(time.Second)

	admin := models.UserRecord{ID: "user-admin", Email: "admin@caretrack.test", Name: "Ada Admin", Role: models.RoleAdmin}
	carer := models.UserRecord{ID: "user-carer", Email: "carer@caretrack.test", Name: "Cal Carer", Role: models.RoleCarer}
	s.users[admin.ID] = admin
	s.users[carer.ID] = carer
	s.passwords[admin.Email] = "admin-password"
	s.passwords[carer.Email] = "carer-password"

	s.carers["carer-1"] = models.Carer{ID: "carer-1", Email: "carer@caretrack.test", Name: "Cal Carer", Active: true, CreatedAt: now}
	s.carers["carer-2"] = models.Carer{ID: "carer-2", Email: "jo@caretrack.test", Name: "Jo Field", Phone: "07000 000000", Active: true, CreatedAt: now}

	s.carePackages["pkg-1"] = models.CarePackage{ID: "pkg-1", ClientName: "Mrs Hughes", Postcode: "LS1 4DY", Active: true, CreatedAt: now}

	due := now.Add(24 * time.Hour)
	s.tasks["task-1"] = models.Task{ID: "task-1", Title: "Morning medication", Status: models.TaskPending, CarerID: "carer-1", CarePackageID: "pkg-1", DueAt: &due, CreatedAt: now}

	s.shifts["shift-1"] = models.Shift{ID: "shift-1", CarePackageID: "pkg-1", StartsAt: now.Add(8 * time.Hour), EndsAt: now.Add(12 * time.Hour)}
}

func (s *store) authenticate(email, password string) (models.UserRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.passwords[email] != password || password == "" {
		return models.UserRecord{}, false
	}
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.UserRecord{}, false
}

func (s *store) userByID(id string) (models.UserRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *store) issueCSRFToken() string {
	token := uuid.NewString()
	s.mu.Lock()
	s.csrfTokens[token] = true
	s.mu.Unlock()
	return token
}

func (s *store) validCSRFToken(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.csrfTokens[token]
}

// softDelete moves a record into the recycle bin under a fresh bin id.
func (s *store) softDelete(resourceType, resourceID, label string, value any) {
	id := uuid.NewString()
	s.recycleBin[id] = recycledRecord{
		item: models.RecycleBinItem{
			ID:           id,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			Label:        label,
			DeletedAt:    time.Now().UTC(),
		},
		value: value,
	}
}

// restore puts a recycled record back and removes the bin entry. Returns
// false when the bin id is unknown.
func (s *store) restore(binID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.recycleBin[binID]
	if !ok {
		return false
	}
	switch v := rec.value.(type) {
	case models.Carer:
		s.carers[v.ID] = v
	case models.Task:
		s.tasks[v.ID] = v
	case models.CarePackage:
		s.carePackages[v.ID] = v
	case models.Assessment:
		s.assessments[v.ID] = v
	case models.UserRecord:
		s.users[v.ID] = v
	default:
		return false
	}
	delete(s.recycleBin, binID)
	return true
}

func (s *store) purge(binID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recycleBin[binID]; !ok {
		return false
	}
	delete(s.recycleBin, binID)
	return true
}

// sortedByID keeps list responses deterministic across runs.
func sortedByID[T any](m map[string]T, id func(T) string) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}
