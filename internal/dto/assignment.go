package dto

// ── assignment (slot-class) DTOs ──

// AssignClassRequest binds a class to a slot for the week containing Date.
type AssignClassRequest struct {
	SlotID  string `json:"slot_id"  binding:"required,uuid"`
	ClassID string `json:"class_id" binding:"required,uuid"`
	Date    string `json:"date"     binding:"required"` // "YYYY-MM-DD"
	Size    string `json:"size"     binding:"omitempty,oneof=whole split"`
}

// UpdateAssignmentRequest patches the per-week assignment state.
type UpdateAssignmentRequest struct {
	Text     *string `json:"text"`
	Complete *bool   `json:"complete"`
	Hidden   *bool   `json:"hidden"`
}

// AssignmentResponse one resolved assignment. Text is the display text
// after fallback: the assignment's own override, else the class default.
type AssignmentResponse struct {
	ID         string        `json:"id"`
	SlotID     string        `json:"slot_id"`
	ClassID    string        `json:"class_id"`
	Year       int           `json:"year"`
	WeekNumber int           `json:"week_number"`
	Size       string        `json:"size"`
	Text       string        `json:"text"`
	Complete   bool          `json:"complete"`
	Hidden     bool          `json:"hidden"`
	Class      *ClassResponse `json:"class,omitempty"`
}
