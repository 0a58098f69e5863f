package domain

import (
	"strconv"
	"strings"
)

// ID is used across domain entities.
type ID = int64

// Roles carried in session tokens.
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleMember     = "member"
)

// Actor is the authenticated user performing a request.
type Actor struct {
	UserID ID     `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// IsStaff reports whether the actor may perform instructor/admin actions.
func (a Actor) IsStaff() bool {
	switch strings.ToLower(a.Role) {
	case RoleAdmin, RoleInstructor:
		return true
	default:
		return false
	}
}

// Label is the human readable author label stored on comments.
func (a Actor) Label() string {
	if n := strings.TrimSpace(a.Name); n != "" {
		return n
	}
	return "user#" + strconv.FormatInt(a.UserID, 10)
}
