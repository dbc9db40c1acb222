package group

import "time"

// Group is an organizational grouping of resources.
type Group struct {
	ID   int    `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:100;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
