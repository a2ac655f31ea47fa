// ABOUTME: Domain entity models for the CareTrack API
// ABOUTME: Client-side copies of backend-owned records, never a source of truth

package models

import "time"

// Role identifies the two dashboard user types
type Role string

const (
	RoleAdmin Role = "admin"
	RoleCarer Role = "carer"
)

// UserRecord represents the authenticated user.
// The backend owns this record; the client always replaces it wholesale
// and never patches individual fields.
type UserRecord struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the user holds the admin role
func (u *UserRecord) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Carer represents a care worker managed through the dashboard
type Carer struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskStatus enumerates the lifecycle states of a care task
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	TaskOverdue   TaskStatus = "overdue"
)

// Task represents a care task assigned to a carer
type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Status        TaskStatus `json:"status"`
	CarerID       string     `json:"carer_id,omitempty"`
	CarePackageID string     `json:"care_package_id,omitempty"`
	DueAt         *time.Time `json:"due_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CarePackage groups tasks and assessments for one client under care
type CarePackage struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Postcode   string    `json:"postcode,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// Assessment represents a competency assessment for a carer
type Assessment struct {
	ID          string     `json:"id"`
	CarerID     string     `json:"carer_id"`
	Competency  string     `json:"competency"`
	Status      string     `json:"status"`
	Score       *int       `json:"score,omitempty"`
	AssessedAt  *time.Time `json:"assessed_at,omitempty"`
	ReviewDueAt *time.Time `json:"review_due_at,omitempty"`
}

// Shift represents a scheduled work period, optionally assigned to a carer
type Shift struct {
	ID            string    `json:"id"`
	CarerID       string    `json:"carer_id,omitempty"`
	CarePackageID string    `json:"care_package_id"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	Assigned      bool      `json:"assigned"`
}

// Invitation represents a pending user invitation
type Invitation struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Accepted  bool      `json:"accepted"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// ProgressEntry represents a progress note recorded against a care package
type ProgressEntry struct {
	ID            string    `json:"id"`
	CarePackageID string    `json:"care_package_id"`
	CarerID       string    `json:"carer_id"`
	Note          string    `json:"note"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// RecycleBinItem represents a soft-deleted record awaiting restore or purge
type RecycleBinItem struct {
	ID           string    `json:"id"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Label        string    `json:"label"`
	DeletedAt    time.Time `json:"deleted_at"`
}
