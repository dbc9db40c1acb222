package absence

import "time"

type CreateAbsenceRequest struct {
	EmployeeID int       `json:"employeeId" binding:"required,min=1"`
	Start      time.Time `json:"start" binding:"required"`
	End        time.Time `json:"end" binding:"required"`
	Reason     string    `json:"reason" binding:"required,max=500"`
}

type UpdateAbsenceRequest struct {
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
	Reason string    `json:"reason" binding:"required,max=500"`
}

type ApproveAbsenceRequest struct {
	ApproverID int    `json:"approverId" binding:"required,min=1"`
	Comments   string `json:"comments" binding:"max=1000"`
}

type RejectAbsenceRequest struct {
	ApproverID int    `json:"approverId" binding:"required,min=1"`
	Reason     string `json:"reason" binding:"required,max=1000"`
}

// ListAbsencesQuery carries the GET filter surface: either a date range or
// an employee id is required; the status filter is repeatable.
type ListAbsencesQuery struct {
	Start      *time.Time `form:"start"`
	End        *time.Time `form:"end"`
	EmployeeID *int       `form:"employeeId"`
	Status     []string   `form:"status[]"`
}

type AbsenceResponse struct {
	ID               string     `json:"id"`
	Start            time.Time  `json:"start"`
	End              time.Time  `json:"end"`
	Reason           string     `json:"reason"`
	EmployeeID       int        `json:"employeeId"`
	EmployeeName     string     `json:"employeeName,omitempty"`
	Status           string     `json:"status"`
	RequestedDate    time.Time  `json:"requestedDate"`
	ApproverID       *int       `json:"approverId,omitempty"`
	ApproverName     *string    `json:"approverName,omitempty"`
	ApprovedDate     *time.Time `json:"approvedDate,omitempty"`
	ApprovalComments *string    `json:"approvalComments,omitempty"`
}
