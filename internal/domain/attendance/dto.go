package attendance

type RecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       string  `json:"status"`
	ShiftID      string  `json:"shift_id"`
	WorkingHours *string `json:"working_hours,omitempty"`
	Regularized  *string `json:"regularized,omitempty"`
}

func ToResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		Date:         r.Date,
		CheckInTime:  r.CheckInTime,
		CheckOutTime: r.CheckOutTime,
		Status:       string(r.Status),
		ShiftID:      r.ShiftID,
		WorkingHours: r.WorkingHours,
		Regularized:  r.Regularized,
	}
}

// StatusResponse is the live view payload the client polls.
type StatusResponse struct {
	State           string          `json:"state"`
	Message         string          `json:"message,omitempty"`
	ElapsedTime     *string         `json:"elapsed_time,omitempty"`
	CheckOutEnabled bool            `json:"check_out_enabled"`
	Record          *RecordResponse `json:"record,omitempty"`
}

type HistoryFilter struct {
	StartDate *string `json:"start_date,omitempty"` // DD/MM/YYYY
	EndDate   *string `json:"end_date,omitempty"`   // DD/MM/YYYY
	Status    *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize applies the pagination defaults.
func (f *HistoryFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}

type MonthlySummaryResponse struct {
	Month               int            `json:"month"`
	Year                int            `json:"year"`
	Counts              map[string]int `json:"counts"`
	RegularizationsUsed int            `json:"regularizations_used"`
	RegularizationQuota int            `json:"regularization_quota"`
}
