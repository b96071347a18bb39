package models

import "time"

// ============================================================================
// GROUPS & MEMBERSHIP
// ============================================================================

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// Role of the requesting user inside this group (from the JOIN)
	Role string `json:"role,omitempty"`
}

type GroupMember struct {
	ID       string    `json:"id"`
	GroupID  string    `json:"group_id"`
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

type InviteMemberRequest struct {
	Username string `json:"username" binding:"required"`
}
