package model

import "time"

// User is an account that can be a project member and an issue assignee.
type User struct {
	ID          string    `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"display_name" db:"display_name"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Label returns the name to show for this user: the display name when
// set, the email otherwise.
func (u User) Label() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

// Project membership roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// ProjectMember links a user to a project with a role. Only members may
// be assigned issues in that project.
type ProjectMember struct {
	ID        string    `json:"id" db:"id"`
	ProjectID string    `json:"project_id" db:"project_id"`
	MemberID  string    `json:"member_id" db:"member_id"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
