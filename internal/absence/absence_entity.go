package absence

import (
	"time"

	"github.com/google/uuid"

	"pto-track/internal/resource"
)

// AbsenceRequest is an employee's request for time off. The time range is
// half-open: End is exclusive when the request spans whole days.
type AbsenceRequest struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Start  time.Time `gorm:"not null;index:idx_absence_requests_range"`
	End    time.Time `gorm:"not null;index:idx_absence_requests_range"`
	Reason string    `gorm:"size:500;not null"`

	EmployeeID int                `gorm:"not null;index"`
	Employee   *resource.Resource `gorm:"foreignKey:EmployeeID"`

	Status        string    `gorm:"size:20;not null;default:'Pending';index"`
	RequestedDate time.Time `gorm:"not null"`

	ApproverID       *int
	Approver         *resource.Resource `gorm:"foreignKey:ApproverID"`
	ApprovedDate     *time.Time
	ApprovalComments *string `gorm:"size:1000"`
}
