package domain

import "strings"

// Absence request lifecycle states. Pending is the initial state; the other
// three are terminal (Cancelled is reachable only through an explicit cancel
// by the owning employee).
const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusCancelled = "Cancelled"
)

// AllStatuses lists every lifecycle state in display order.
var AllStatuses = []string{StatusPending, StatusApproved, StatusRejected, StatusCancelled}

// ParseStatuses filters raw query values down to known statuses,
// case-insensitively. Unknown values are skipped; when nothing valid
// remains the result is nil, which readers treat as "all statuses".
func ParseStatuses(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, s := range AllStatuses {
			if strings.EqualFold(r, s) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}
