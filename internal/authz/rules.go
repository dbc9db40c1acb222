package authz

import (
	"time"

	"pto-track/internal/domain"
)

// AbsenceView is the minimal projection of an absence request that the
// permission rules need. Both the server-side checks and the calendar
// view-model are computed from this one rule set.
type AbsenceView struct {
	EmployeeID int
	Status     string
}

// CanView reports whether the actor may see absence details. Details are
// visible to everyone; listings are narrowed separately (see the absence
// service's visible-to-employee query).
func CanView(domain.Actor, AbsenceView) bool {
	return true
}

// CanEdit reports whether the actor may change the reason or dates.
func CanEdit(a domain.Actor, v AbsenceView) bool {
	return v.Status == domain.StatusPending && (a.IsAdmin() || a.ID == v.EmployeeID)
}

// CanDecide reports whether the actor may approve or reject the request.
// An approver acting on their own request is still permitted.
func CanDecide(a domain.Actor, v AbsenceView) bool {
	return v.Status == domain.StatusPending && (a.IsAdmin() || a.CanDecide())
}

// CanDelete reports whether the actor may permanently remove the request.
func CanDelete(a domain.Actor, v AbsenceView) bool {
	if v.Status != domain.StatusPending && v.Status != domain.StatusCancelled {
		return false
	}
	return a.IsAdmin() || a.ID == v.EmployeeID
}

// CanCancel reports whether the actor may cancel the request. Cancelling is
// reserved for the owning employee regardless of role.
func CanCancel(a domain.Actor, v AbsenceView) bool {
	return a.ID == v.EmployeeID
}

// CanCreateFor reports whether the actor may create a request on behalf of
// the given resource. Plain employees may only create for themselves.
func CanCreateFor(a domain.Actor, targetResourceID int) bool {
	if a.IsAdmin() || a.CanDecide() {
		return true
	}
	return a.ID == targetResourceID
}

// VisibleStatusFilters lists the status filters shown to the role.
// Managers and approvers never see the Rejected/Cancelled filters.
func VisibleStatusFilters(r domain.Role) []string {
	switch r {
	case domain.RoleManager, domain.RoleApprover:
		return []string{domain.StatusPending, domain.StatusApproved}
	default:
		return append([]string(nil), domain.AllStatuses...)
	}
}

// DefaultStatusFilters lists the filters pre-checked for the role.
// Employees default to Pending only.
func DefaultStatusFilters(r domain.Role) []string {
	switch r {
	case domain.RoleAdmin:
		return append([]string(nil), domain.AllStatuses...)
	case domain.RoleManager, domain.RoleApprover:
		return []string{domain.StatusPending, domain.StatusApproved}
	default:
		return []string{domain.StatusPending}
	}
}

// DisabledCellClass is the CSS class applied to calendar cells the actor
// may not create absences in.
const DisabledCellClass = "disabled-row"

// CellClass returns the CSS class for a scheduler cell, or "" when the cell
// is enabled. Past dates are disabled for everyone; other rows follow the
// create-eligibility rule.
func CellClass(cellStart, today time.Time, a domain.Actor, targetResourceID int) string {
	if cellStart.Before(today) {
		return DisabledCellClass
	}
	if !CanCreateFor(a, targetResourceID) {
		return DisabledCellClass
	}
	return ""
}
