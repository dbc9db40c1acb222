package domain

import "strings"

// Role is the closed set of roles the application understands. The zero
// value is RoleEmployee, which is also the fallback for unknown claims.
type Role int

const (
	RoleEmployee Role = iota
	RoleApprover
	RoleManager
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleManager:
		return "Manager"
	case RoleApprover:
		return "Approver"
	default:
		return "Employee"
	}
}

// CanDecide reports whether the role may approve or reject absence requests.
func (r Role) CanDecide() bool {
	return r >= RoleApprover
}

// RoleFromClaims resolves the effective role from a set of claim role
// strings. Priority order: Admin > Manager > Approver > Employee, compared
// case-insensitively; no recognizable claim means plain Employee.
func RoleFromClaims(claimRoles []string) Role {
	best := RoleEmployee
	for _, cr := range claimRoles {
		var r Role
		switch {
		case strings.EqualFold(cr, "Admin"):
			r = RoleAdmin
		case strings.EqualFold(cr, "Manager"):
			r = RoleManager
		case strings.EqualFold(cr, "Approver"):
			r = RoleApprover
		case strings.EqualFold(cr, "Employee"):
			r = RoleEmployee
		default:
			continue
		}
		if r > best {
			best = r
		}
	}
	return best
}

// Actor is the authenticated identity that permission rules evaluate
// against. ID is the resource id of the acting employee.
type Actor struct {
	ID         int
	Role       Role
	IsApprover bool
}

// IsAdmin reports whether the actor carries the Admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanDecide reports whether the actor may approve or reject requests,
// either through role rank or through the resource-level approver flag.
func (a Actor) CanDecide() bool {
	return a.Role.CanDecide() || a.IsApprover
}
