package dto

// ── shared request types ──

// ListRangeRequest common date-range filter for list endpoints.
type ListRangeRequest struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
}

// PaginationRequest skip/limit pagination parameters.
type PaginationRequest struct {
	Skip  int `form:"skip"  binding:"omitempty,min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// GetSkip returns the offset, never negative.
func (p *PaginationRequest) GetSkip() int {
	if p.Skip < 0 {
		return 0
	}
	return p.Skip
}

// GetLimit returns the page size with the default applied.
func (p *PaginationRequest) GetLimit() int {
	if p.Limit <= 0 {
		return 100
	}
	return p.Limit
}
