package event

import (
	"time"

	"github.com/google/uuid"
)

// SchedulerEvent is a free-form calendar entry pinned to a resource,
// independent of the absence lifecycle.
type SchedulerEvent struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Start      time.Time `gorm:"not null;index"`
	End        time.Time `gorm:"not null;index"`
	Text       *string   `gorm:"size:500"`
	Color      *string   `gorm:"size:30"`
	ResourceID int       `gorm:"not null;index"`
}

func (SchedulerEvent) TableName() string {
	return "scheduler_events"
}
