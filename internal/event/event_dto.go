package event

import "time"

type CreateEventRequest struct {
	Start      time.Time `json:"start" binding:"required"`
	End        time.Time `json:"end" binding:"required"`
	Text       *string   `json:"text"`
	Color      *string   `json:"color"`
	ResourceID int       `json:"resourceId" binding:"required"`
}

type UpdateEventRequest struct {
	Start      time.Time `json:"start" binding:"required"`
	End        time.Time `json:"end" binding:"required"`
	Text       *string   `json:"text"`
	Color      *string   `json:"color"`
	ResourceID int       `json:"resourceId" binding:"required"`
}

type ListEventsQuery struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type EventResponse struct {
	ID         string    `json:"id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Text       *string   `json:"text"`
	Color      *string   `json:"color"`
	ResourceID int       `json:"resourceId"`
}

func toEventResponse(e *SchedulerEvent) EventResponse {
	return EventResponse{
		ID:         e.ID.String(),
		Start:      e.Start,
		End:        e.End,
		Text:       e.Text,
		Color:      e.Color,
		ResourceID: e.ResourceID,
	}
}
