package dto

// ── classrooms ──

// ClassroomResponse classroom reference record, as consumed by scheduling
// clients picking a room override.
type ClassroomResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Capacity    int    `json:"capacity"`
	IsAvailable bool   `json:"is_available"`
}
