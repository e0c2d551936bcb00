package dto

// ── timetable DTOs ──

// CreateTimetableRequest create request. Times are minutes from midnight
// and bound the timetable's visible day window.
type CreateTimetableRequest struct {
	Name      string   `json:"name"       binding:"required,min=1,max=100"`
	Days      []string `json:"days"       binding:"required,min=1,max=7"`
	StartTime int      `json:"start_time" binding:"min=0,max=1439"`
	EndTime   int      `json:"end_time"   binding:"required,min=1,max=1440"`
}

// UpdateTimetableRequest partial update request.
type UpdateTimetableRequest struct {
	Name      *string  `json:"name"       binding:"omitempty,min=1,max=100"`
	Days      []string `json:"days"       binding:"omitempty,min=1,max=7"`
	StartTime *int     `json:"start_time" binding:"omitempty,min=0,max=1439"`
	EndTime   *int     `json:"end_time"   binding:"omitempty,min=1,max=1440"`
}

// TimetableResponse timetable info.
type TimetableResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Days      []string `json:"days"`
	StartTime int      `json:"start_time"`
	EndTime   int      `json:"end_time"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}
