package calendar

// ConfigResponse is the client-facing projection of the server's absence
// permission rules, so the scheduler UI never re-implements them.
type ConfigResponse struct {
	ResourceID           int                 `json:"resourceId"`
	Role                 string              `json:"role"`
	IsApprover           bool                `json:"isApprover"`
	VisibleStatusFilters []string            `json:"visibleStatusFilters"`
	DefaultStatusFilters []string            `json:"defaultStatusFilters"`
	DisabledCellClass    string              `json:"disabledCellClass"`
	Actions              ActionsConfig       `json:"actions"`
	Eligibility          []StatusEligibility `json:"eligibility"`
	StatusColors         map[string]string   `json:"statusColors"`
}

// StatusEligibility spells out, per lifecycle state, which actions the user
// may take on their own requests versus anyone's.
type StatusEligibility struct {
	Status       string `json:"status"`
	CanView      bool   `json:"canView"`
	CanEditOwn   bool   `json:"canEditOwn"`
	CanEditAny   bool   `json:"canEditAny"`
	CanDecide    bool   `json:"canDecide"`
	CanDeleteOwn bool   `json:"canDeleteOwn"`
	CanDeleteAny bool   `json:"canDeleteAny"`
	CanCancelOwn bool   `json:"canCancelOwn"`
}

// ActionsConfig tells the client which absence actions the current user is
// ever eligible for. Per-record state (pending only, owner only) is still
// enforced server-side on each call.
type ActionsConfig struct {
	CanCreateForOthers bool `json:"canCreateForOthers"`
	CanDecide          bool `json:"canDecide"`
	CanManageGroups    bool `json:"canManageGroups"`
}
