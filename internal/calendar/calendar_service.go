package calendar

import (
	"pto-track/internal/authz"
	"pto-track/internal/domain"
)

// DefaultStatusColor is used for statuses without a dedicated color.
const DefaultStatusColor = "#2e78d6cc"

var statusColors = map[string]string{
	domain.StatusPending:   "#ffa500cc",
	domain.StatusApproved:  "#6aa84fcc",
	domain.StatusRejected:  "#cc4125cc",
	domain.StatusCancelled: "#999999cc",
}

// StatusColor maps an absence status to its scheduler bar color.
// Lookup is case-sensitive; unknown statuses get the default color.
func StatusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return DefaultStatusColor
}

// ConfigFor projects the permission rule table for one actor.
func ConfigFor(a domain.Actor) ConfigResponse {
	colors := make(map[string]string, len(domain.AllStatuses))
	eligibility := make([]StatusEligibility, 0, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		colors[s] = StatusColor(s)
		eligibility = append(eligibility, eligibilityFor(a, s))
	}

	return ConfigResponse{
		ResourceID:           a.ID,
		Role:                 a.Role.String(),
		IsApprover:           a.IsApprover,
		VisibleStatusFilters: authz.VisibleStatusFilters(a.Role),
		DefaultStatusFilters: authz.DefaultStatusFilters(a.Role),
		DisabledCellClass:    authz.DisabledCellClass,
		Actions: ActionsConfig{
			CanCreateForOthers: a.IsAdmin() || a.CanDecide(),
			CanDecide:          a.IsAdmin() || a.CanDecide(),
			CanManageGroups:    a.IsAdmin(),
		},
		Eligibility:  eligibility,
		StatusColors: colors,
	}
}

// eligibilityFor evaluates the record-level rules for one status, once
// against a request the actor owns and once against anyone else's.
func eligibilityFor(a domain.Actor, status string) StatusEligibility {
	own := authz.AbsenceView{EmployeeID: a.ID, Status: status}
	other := authz.AbsenceView{EmployeeID: a.ID + 1, Status: status}

	return StatusEligibility{
		Status:       status,
		CanView:      authz.CanView(a, own),
		CanEditOwn:   authz.CanEdit(a, own),
		CanEditAny:   authz.CanEdit(a, other),
		CanDecide:    authz.CanDecide(a, own),
		CanDeleteOwn: authz.CanDelete(a, own),
		CanDeleteAny: authz.CanDelete(a, other),
		CanCancelOwn: authz.CanCancel(a, own),
	}
}
