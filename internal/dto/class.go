package dto

// ── class DTOs ──

// CreateClassRequest create request. WeekNumber and Year, when both set,
// restrict the class to a single ISO week.
type CreateClassRequest struct {
	TimetableID string `json:"timetable_id" binding:"required,uuid"`
	Name        string `json:"name"         binding:"required,min=1,max=100"`
	BgColor     string `json:"bg_color"     binding:"required,max=20"`
	TextColor   string `json:"text_color"   binding:"required,max=20"`
	IconName    string `json:"icon_name"    binding:"max=50"`
	DefaultText string `json:"default_text"`
	WeekNumber  *int   `json:"week_number"  binding:"omitempty,min=1,max=53"`
	Year        *int   `json:"year"         binding:"omitempty,min=2000,max=2200"`
}

// UpdateClassRequest partial update request.
type UpdateClassRequest struct {
	Name        *string `json:"name"         binding:"omitempty,min=1,max=100"`
	BgColor     *string `json:"bg_color"     binding:"omitempty,max=20"`
	TextColor   *string `json:"text_color"   binding:"omitempty,max=20"`
	IconName    *string `json:"icon_name"    binding:"omitempty,max=50"`
	DefaultText *string `json:"default_text"`
	WeekNumber  *int    `json:"week_number"  binding:"omitempty,min=1,max=53"`
	Year        *int    `json:"year"         binding:"omitempty,min=2000,max=2200"`
	// ClearWeekRestriction removes an existing single-week restriction.
	ClearWeekRestriction bool `json:"clear_week_restriction"`
}

// ClassResponse class info.
type ClassResponse struct {
	ID          string `json:"id"`
	TimetableID string `json:"timetable_id"`
	Name        string `json:"name"`
	BgColor     string `json:"bg_color"`
	TextColor   string `json:"text_color"`
	IconName    string `json:"icon_name"`
	DefaultText string `json:"default_text"`
	WeekNumber  *int   `json:"week_number,omitempty"`
	Year        *int   `json:"year,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
