package resource

type ResourceResponse struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Email          *string `json:"email,omitempty"`
	EmployeeNumber *string `json:"employeeNumber,omitempty"`
	Role           string  `json:"role"`
	IsApprover     bool    `json:"isApprover"`
	IsActive       bool    `json:"isActive"`
	Department     *string `json:"department,omitempty"`
	GroupID        *int    `json:"groupId,omitempty"`
}

type CreateResourceRequest struct {
	Name           string  `json:"name" binding:"required,max=100"`
	Email          *string `json:"email" binding:"omitempty,email"`
	EmployeeNumber *string `json:"employeeNumber" binding:"omitempty,max=50"`
	Role           string  `json:"role" binding:"omitempty,oneof=Employee Approver Manager Admin"`
	IsApprover     bool    `json:"isApprover"`
	Department     *string `json:"department" binding:"omitempty,max=100"`
	GroupID        *int    `json:"groupId"`
}
