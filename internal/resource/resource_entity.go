package resource

import (
	"time"
)

// Resource is a person (or bookable entity) that owns calendar events and
// absence requests. The Role column is an informational label; effective
// authorization always comes from claim roles.
type Resource struct {
	ID             int     `gorm:"primaryKey;autoIncrement"`
	Name           string  `gorm:"size:100;not null"`
	Email          *string `gorm:"size:255"`
	EmployeeNumber *string `gorm:"size:50;uniqueIndex:idx_resources_employee_number"`
	Role           string  `gorm:"size:50;not null;default:'Employee'"`
	IsApprover     bool    `gorm:"not null;default:false"`
	IsActive       bool    `gorm:"not null;default:true"`
	Department     *string `gorm:"size:100"`
	GroupID        *int    `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
