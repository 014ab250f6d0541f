package domain

import "time"

// Role is the approval state of an administrator account.
type Role string

const (
	RolePending  Role = "pending"
	RoleApproved Role = "approved"
	RoleMain     Role = "main"
)

// ParseRole converts a stored or decoded role string into a Role.
// Unknown values are rejected so a forged or corrupt claim never maps to a default.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePending, RoleApproved, RoleMain:
		return Role(s), true
	default:
		return "", false
	}
}

// Access is the authorization level a protected operation requires.
type Access int

const (
	// AccessAdmin admits any approved administrator, including the main admin.
	AccessAdmin Access = iota
	// AccessMain admits only the main admin.
	AccessMain
)

func (a Access) String() string {
	switch a {
	case AccessAdmin:
		return "admin"
	case AccessMain:
		return "main"
	default:
		return "unknown"
	}
}

// Permits reports whether an actor holding role r may perform an operation
// that requires access level a. Pending accounts never pass.
func (r Role) Permits(a Access) bool {
	switch r {
	case RoleMain:
		return true
	case RoleApproved:
		return a == AccessAdmin
	case RolePending:
		return false
	default:
		return false
	}
}

// Admin models a back-office operator.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Claims is the verified identity carried by a bearer token.
type Claims struct {
	AdminID string
	Email   string
	Role    Role
}

// Require fails with ErrInsufficientRole when the claim's role does not
// satisfy the given access level.
func (c Claims) Require(a Access) error {
	if !c.Role.Permits(a) {
		return ErrInsufficientRole
	}
	return nil
}
