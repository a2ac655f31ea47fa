// ABOUTME: HTTP handlers for the mock backend's auth and resource endpoints
// ABOUTME: Thin JSON/envelope glue over the fixture store

package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/caretrack/caretrack-go/models"
)

// decodeBody parses the JSON request body into dst; on failure it writes
// the error envelope and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", "")
		return false
	}
	return true
}

// --- Auth ---

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	user, ok := s.store.authenticate(req.Email, req.Password)
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "Invalid email or password", "")
		return
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "Failed to issue token", "")
		return
	}
	writeSuccess(w, map[string]any{"token": token, "user": user})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.userIDFromRequest(r)
	user, ok := s.store.userByID(userID)
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "Authentication required", "")
		return
	}
	writeSuccess(w, map[string]any{"user": user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Stateless tokens: nothing to revoke server-side in the mock.
	writeSuccess(w, nil)
}

// --- Carers ---

func (s *Server) handleListCarers(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	carers := sortedByID(s.store.carers, func(c models.Carer) string { return c.ID })
	s.store.mu.Unlock()

	q := r.URL.Query()
	filtered := carers[:0:0]
	for _, c := range carers {
		if active := q.Get("active"); active != "" && active != boolString(c.Active) {
			continue
		}
		if search := q.Get("search"); search != "" && !containsFold(c.Name, search) && !containsFold(c.Email, search) {
			continue
		}
		filtered = append(filtered, c)
	}
	writeSuccess(w, filtered)
}

func (s *Server) handleGetCarer(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	c, ok := s.store.carers[chi.URLParam(r, "id")]
	s.store.mu.Unlock()
	if !ok {
		writeFailure(w, http.StatusNotFound, "Carer not found", "")
		return
	}
	writeSuccess(w, c)
}

func (s *Server) handleCreateCarer(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email  string `json:"email"`
		Name   string `json:"name"`
		Phone  string `json:"phone"`
		Active bool   `json:"active"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	c := models.Carer{
		ID:        uuid.NewString(),
		Email:     in.Email,
		Name:      in.Name,
		Phone:     in.Phone,
		Active:    in.Active,
		CreatedAt: time.Now().UTC(),
	}
	s.store.mu.Lock()
	s.store.carers[c.ID] = c
	s.store.mu.Unlock()
	writeSuccess(w, c)
}

func (s *Server) handleUpdateCarer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in struct {
		Email  string `json:"email"`
		Name   string `json:"name"`
		Phone  string `json:"phone"`
		Active bool   `json:"active"`
	}
	if !decodeBody(w, r, &in) {
		return
	}

	s.store.mu.Lock()
	c, ok := s.store.carers[id]
	if ok {
		c.Email, c.Name, c.Phone, c.Active = in.Email, in.Name, in.Phone, in.Active
		s.store.carers[id] = c
	}
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound, "Carer not found", "")
		return
	}
	writeSuccess(w, c)
}

func (s *Server) handleDeleteCarer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.store.mu.Lock()
	c, ok := s.store.carers[id]
	if ok {
		delete(s.store.carers, id)
		s.store.softDelete("carer", id, c.Name, c)
	}
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound, "Carer not found", "")
		return
	}
	writeSuccess(w, nil)
}

// --- Tasks ---

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	tasks := sortedByID(s.store.tasks, func(t models.Task) string { return t.ID })
	s.store.mu.Unlock()

	q := r.URL.Query()
	filtered := tasks[:0:0]
	for _, t := range tasks {
		if status := q.Get("status"); status != "" && status != string(t.Status) {
			continue
		}
		if carerID := q.Get("carer_id"); carerID != "" && carerID != t.CarerID {
			continue
		}
		filtered = append(filtered, t)
	}
	writeSuccess(w, filtered)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	t, ok := s.store.tasks[chi.URLParam(r, "id")]
	s.store.mu.Unlock()
	if !ok {
		writeFailure(w, http.StatusNotFound, "Task not found", "")
		return
	}
	writeSuccess(w, t)
}

type taskBody struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CarerID       string     `json:"carer_id"`
	CarePackageID string     `json:"care_package_id"`
	DueAt         *time.Time `json:"due_at"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in taskBody
	if !decodeBody(w, r, &in) {
		return
	}
	t := models.Task{
		ID:            uuid.NewString(),
		Title:         in.Title,
		Description:   in.Description,
		Status:        models.TaskPending,
		CarerID:       in.CarerID,
		CarePackageID: in.CarePackageID,
		DueAt:         in.DueAt,
		CreatedAt:     time.Now().UTC(),
	}
	s.store.mu.Lock()
	s.store.tasks[t.ID] = t
	s.store.mu.Unlock()
	writeSuccess(w, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in taskBody
	if !decodeBody(w, r, &in) {
		return
	}

	s.store.mu.Lock()
	t, ok := s.store.tasks[id]
	if ok {
		t.Title, t.Description = in.Title, in.Description
		t.CarerID, t.CarePackageID, t.DueAt = in.CarerID, in.CarePackageID, in.DueAt
		s.store.tasks[id] = t
	}
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound, "Task not found", "")
		return
	}
	writeSuccess(w, t)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	now := time.Now().UTC()

	s.store.mu.Lock()
	t, ok := s.store.tasks[id]
	if ok {
		t.Status = models.TaskCompleted
		t.CompletedAt = &now
		s.store.tasks[id] = t
	}
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound, "Task not found", "")
		return
	}
	writeSuccess(w, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.store.mu.Lock()
	t, ok := s.store.tasks[id]
	if ok {
		delete(s.store.tasks, id)
		s.store.softDelete("task", id, t.Title, t)
	}
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound, "Task not found", "")
		return
	}
	writeSuccess(w, nil)
}

// --- Care packages ---

func (s *Server) handleListCarePackages(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	pkgs := sortedByID(s.store.carePackages, func(p models.CarePackage) string { return p.ID })
	s.store.mu.Unlock()
	writeSuccess(w, pkgs)
}

func (s *Server) handleGetCarePackage(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	p, ok := s.store.carePackages[chi.URLParam(r, "id")]
	s.store.mu.Unlock()
	if !ok {
		writeFailure(w, http.StatusNotFound, "Care package not found", "")
		return
	}
	writeSuccess(w, p)
}

type carePackageBody struct {
	ClientName string `json:"client_name"`
	Postcode   string `json:"postcode"`
	Active     bool   `json:"active"`
}

func (s *Server) handleCreateCarePackage(w http.ResponseWriter, r *http.Request) {
	var in carePackageBody
	if !decodeBody(w, r, &in) {
		return
	}
	p := models.CarePackage{
		ID:         uuid.NewString(),
		ClientName: in.ClientName,
		Postcode:   in.Postcode,
		Active:     in.Active,
		CreatedAt:  time.Now().UTC(),
	}
	s.store.mu.Lock()
	s.store.carePackages[p.ID] = p
	s.store.mu.Unlock()
	writeSuccess(w, p)
}

func (s *Server) handleUpdateCarePackage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in carePackageBody
	if !decodeBody(w, r, &in) {
		return
	}

	s.store.mu.Lock()
	p, ok := s.store.carePackages[id]
	if ok {
		p.ClientName, p.Postcode, p.Active = in.ClientName, in.Postcode, in.Active
		s.store.carePackages[id] = p
	}
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound, "Care package not found", "")
		return
	}
	writeSuccess(w, p)
}

func (s *Server) handleDeleteCarePackage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.store.mu.Lock()
	p, ok := s.store.carePackages[id]
	if ok {
		delete(s.store.carePackages, id)
		s.store.softDelete("care_package", id, p.ClientName, p)
	}
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound, "Care package not found", "")
		return
	}
	writeSuccess(w, nil)
}

// --- Assessments ---

func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	list := sortedByID(s.store.assessments, func(a models.Assessment) string { return a.ID })
	s.store.mu.Unlock()

	q := r.URL.Query()
	filtered := list[:0:0]
	for _, a := range list {
		if carerID := q.Get("carer_id"); carerID != "" && carerID != a.CarerID {
			continue
		}
		if status := q.Get("status"); status != "" && status != a.Status {
			continue
		}
		filtered = append(filtered, a)
	}
	writeSuccess(w, filtered)
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	a, ok := s.store.assessments[chi.URLParam(r, "id")]
	s.store.mu.Unlock()
	if !ok {
		writeFailure(w, http.StatusNotFound, "Assessment not found", "")
		return
	}
	writeSuccess(w, a)
}

type assessmentBody struct {
	CarerID     string     `json:"carer_id"`
	Competency  string     `json:"competency"`
	Status      string     `json:"status"`
	Score       *int       `json:"score"`
	ReviewDueAt *time.Time `json:"review_due_at"`
}

func (s *Server) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	var in assessmentBody
	if !decodeBody(w, r, &in) {
		return
	}
	status := in.Status
	if status == "" {
		status = "scheduled"
	}
	a := models.Assessment{
		ID:          uuid.NewString(),
		CarerID:     in.CarerID,
		Competency:  in.Competency,
		Status:      status,
		Score:       in.Score,
		ReviewDueAt: in.ReviewDueAt,
	}
	s.store.mu.Lock()
	s.store.assessments[a.ID] = a
	s.store.mu.Unlock()
	writeSuccess(w, a)
}

func (s *Server) handleUpdateAssessment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in assessmentBody
	if !decodeBody(w, r, &in) {
		return
	}

	now := time.Now().UTC()
	s.store.mu.Lock()
	a, ok := s.store.assessments[id]
	if ok {
		a.CarerID, a.Competency = in.CarerID, in.Competency
		a.Status, a.Score, a.ReviewDueAt = in.Status, in.Score, in.ReviewDueAt
		if in.Score != nil && a.AssessedAt == nil {
			a.AssessedAt = &now
		}
		s.store.assessments[id] = a
	}
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound, "Assessment not found", "")
		return
	}
	writeSuccess(w, a)
}

func (s *Server) handleDeleteAssessment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.store.mu.Lock()
	a, ok := s.store.assessments[id]
	if ok {
		delete(s.store.assessments, id)
		s.store.softDelete("assessment", id, a.Competency, a)
	}
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound, "Assessment not found", "")
		return
	}
	writeSuccess(w, nil)
}

// --- Shifts ---

func (s *Server) handleListShifts(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	shifts := sortedByID(s.store.shifts, func(sh models.Shift) string { return sh.ID })
	s.store.mu.Unlock()

	q := r.URL.Query()
	filtered := shifts[:0:0]
	for _, sh := range shifts {
		if carerID := q.Get("carer_id"); carerID != "" && carerID != sh.CarerID {
			continue
		}
		if assigned := q.Get("assigned"); assigned != "" && assigned != boolString(sh.Assigned) {
			continue
		}
		filtered = append(filtered, sh)
	}
	writeSuccess(w, filtered)
}

func (s *Server) handleGetShift(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	sh, ok := s.store.shifts[chi.URLParam(r, "id")]
	s.store.mu.Unlock()
	if !ok {
		writeFailure(w, http.StatusNotFound, "Shift not found", "")
		return
	}
	writeSuccess(w, sh)
}

func (s *Server) handleCreateShift(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CarePackageID string    `json:"care_package_id"`
		StartsAt      time.Time `json:"starts_at"`
		EndsAt        time.Time `json:"ends_at"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	sh := models.Shift{
		ID:            uuid.NewString(),
		CarePackageID: in.CarePackageID,
		StartsAt:      in.StartsAt,
		EndsAt:        in.EndsAt,
	}
	s.store.mu.Lock()
	s.store.shifts[sh.ID] = sh
	s.store.mu.Unlock()
	writeSuccess(w, sh)
}

func (s *Server) handleAssignShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in struct {
		CarerID string `json:"carer_id"`
	}
	if !decodeBody(w, r, &in) {
		return
	}

	s.store.mu.Lock()
	sh, ok := s.store.shifts[id]
	if ok {
		sh.CarerID = in.CarerID
		sh.Assigned = true
		s.store.shifts[id] = sh
	}
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound, "Shift not found", "")
		return
	}
	writeSuccess(w, sh)
}

func (s *Server) handleUnassignShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.store.mu.Lock()
	sh, ok := s.store.shifts[id]
	if ok {
		sh.CarerID = ""
		sh.Assigned = false
		s.store.shifts[id] = sh
	}
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound, "Shift not found", "")
		return
	}
	writeSuccess(w, sh)
}

func (s *Server) handleDeleteShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.store.mu.Lock()
	_, ok := s.store.shifts[id]
	delete(s.store.shifts, id)
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound, "Shift not found", "")
		return
	}
	writeSuccess(w, nil)
}

// --- Invitations ---

func (s *Server) handleListInvitations(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	list := sortedByID(s.store.invitations, func(i models.Invitation) string { return i.ID })
	s.store.mu.Unlock()
	writeSuccess(w, list)
}

func (s *Server) handleCreateInvitation(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string      `json:"email"`
		Role  models.Role `json:"role"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	inv := models.Invitation{
		ID:        uuid.NewString(),
		Email:     in.Email,
		Role:      in.Role,
		ExpiresAt: time.Now().UTC().Add(7 * 24 * time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	s.store.mu.Lock()
	s.store.invitations[inv.ID] = inv
	s.store.mu.Unlock()
	writeSuccess(w, inv)
}

func (s *Server) handleResendInvitation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.store.mu.Lock()
	inv, ok := s.store.invitations[id]
	if ok {
		inv.ExpiresAt = time.Now().UTC().Add(7 * 24 * time.Hour)
		s.store.invitations[id] = inv
	}
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound, "Invitation not found", "")
		return
	}
	writeSuccess(w, inv)
}

// handleAcceptInvitation redeems an invitation by id, used as the token in
// the mock, and creates the account.
func (s *Server) handleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Token    string `json:"token"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &in) {
		return
	}

	s.store.mu.Lock()
	inv, ok := s.store.invitations[in.Token]
	var user models.UserRecord
	if ok && !inv.Accepted && time.Now().Before(inv.ExpiresAt) {
		inv.Accepted = true
		s.store.invitations[in.Token] = inv
		user = models.UserRecord{ID: uuid.NewString(), Email: inv.Email, Name: in.Name, Role: inv.Role}
		s.store.users[user.ID] = user
		s.store.passwords[user.Email] = in.Password
	} else {
		ok = false
	}
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusBadRequest, "Invitation is invalid or expired", "")
		return
	}
	writeSuccess(w, user)
}

func (s *Server) handleDeleteInvitation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.store.mu.Lock()
	_, ok := s.store.invitations[id]
	delete(s.store.invitations, id)
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound, "Invitation not found", "")
		return
	}
	writeSuccess(w, nil)
}

// --- Users ---

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	users := sortedByID(s.store.users, func(u models.UserRecord) string { return u.ID })
	s.store.mu.Unlock()

	role := r.URL.Query().Get("role")
	filtered := users[:0:0]
	for _, u := range users {
		if role != "" && role != string(u.Role) {
			continue
		}
		filtered = append(filtered, u)
	}
	writeSuccess(w, filtered)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, ok := s.store.userByID(chi.URLParam(r, "id"))
	if !ok {
		writeFailure(w, http.StatusNotFound, "User not found", "")
		return
	}
	writeSuccess(w, u)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in struct {
		Email string      `json:"email"`
		Name  string      `json:"name"`
		Role  models.Role `json:"role"`
	}
	if !decodeBody(w, r, &in) {
		return
	}

	s.store.mu.Lock()
	u, ok := s.store.users[id]
	if ok {
		if in.Email != "" {
			u.Email = in.Email
		}
		if in.Name != "" {
			u.Name = in.Name
		}
		if in.Role != "" {
			u.Role = in.Role
		}
		s.store.users[id] = u
	}
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound, "User not found", "")
		return
	}
	writeSuccess(w, u)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.store.mu.Lock()
	u, ok := s.store.users[id]
	if ok {
		delete(s.store.users, id)
		s.store.softDelete("user", id, u.Email, u)
	}
	s.store.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound, "User not found", "")
		return
	}
	writeSuccess(w, nil)
}

// --- Recycle bin ---

func (s *Server) handleListRecycleBin(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	items := make([]models.RecycleBinItem, 0, len(s.store.recycleBin))
	for _, rec := range s.store.recycleBin {
		items = append(items, rec.item)
	}
	s.store.mu.Unlock()

	resourceType := r.URL.Query().Get("resource_type")
	filtered := items[:0:0]
	for _, item := range items {
		if resourceType != "" && resourceType != item.ResourceType {
			continue
		}
		filtered = append(filtered, item)
	}
	writeSuccess(w, filtered)
}

func (s *Server) handleRestoreRecycleBin(w http.ResponseWriter, r *http.Request) {
	if !s.store.restore(chi.URLParam(r, "id")) {
		writeFailure(w, http.StatusNotFound, "Recycle bin item not found", "")
		return
	}
	writeSuccess(w, nil)
}

func (s *Server) handlePurgeRecycleBin(w http.ResponseWriter, r *http.Request) {
	if !s.store.purge(chi.URLParam(r, "id")) {
		writeFailure(w, http.StatusNotFound, "Recycle bin item not found", "")
		return
	}
	writeSuccess(w, nil)
}

// --- Progress ---

func (s *Server) handleListProgress(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	entries := sortedByID(s.store.progress, func(p models.ProgressEntry) string { return p.ID })
	s.store.mu.Unlock()

	q := r.URL.Query()
	filtered := entries[:0:0]
	for _, p := range entries {
		if pkgID := q.Get("care_package_id"); pkgID != "" && pkgID != p.CarePackageID {
			continue
		}
		if carerID := q.Get("carer_id"); carerID != "" && carerID != p.CarerID {
			continue
		}
		filtered = append(filtered, p)
	}
	writeSuccess(w, filtered)
}

func (s *Server) handleCreateProgress(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CarePackageID string `json:"care_package_id"`
		Note          string `json:"note"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Note) == "" {
		writeFailure(w, http.StatusBadRequest, "Note must not be empty", "")
		return
	}

	userID, _ := s.userIDFromRequest(r)
	p := models.ProgressEntry{
		ID:            uuid.NewString(),
		CarePackageID: in.CarePackageID,
		CarerID:       userID,
		Note:          in.Note,
		RecordedAt:    time.Now().UTC(),
	}
	s.store.mu.Lock()
	s.store.progress[p.ID] = p
	s.store.mu.Unlock()
	writeSuccess(w, p)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
