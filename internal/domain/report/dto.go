package report

import (
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/validator"
)

// Report types. Monthly windows follow the payroll convention: the 26th of
// the prior month through the 25th of the target month, inclusive.
const (
	TypeDaily   = "daily"
	TypeWeekly  = "weekly"
	TypeMonthly = "monthly"
)

// Sortable fields of a recap row
const (
	SortByName       = "name"
	SortByPresent    = "present"
	SortByLate       = "late"
	SortBySick       = "sick"
	SortByPermission = "permission"
	SortByAlpha      = "alpha"
	SortByPercentage = "percentage"
)

type RecapRequest struct {
	Type      string `json:"type"`  // daily | weekly | monthly
	Date      string `json:"date"`  // target date (daily/weekly) or any day in target month (monthly)
	SortField string `json:"sort"`  // see SortBy constants, default name
	SortDesc  bool   `json:"-"`     // order=desc
	Search    string `json:"search"`
}

func (r *RecapRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Type, []string{TypeDaily, TypeWeekly, TypeMonthly}) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be daily, weekly, or monthly",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.SortField != "" && !validator.IsInSlice(r.SortField, []string{
		SortByName, SortByPresent, SortByLate, SortBySick,
		SortByPermission, SortByAlpha, SortByPercentage,
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort",
			Message: "unknown sort field",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecapRow is one employee's aggregated counters for the window.
type RecapRow struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	EmployeeNIK  string `json:"employee_nik"`

	Present    int `json:"present"`
	Late       int `json:"late"`
	Sick       int `json:"sick"`
	Permission int `json:"permission"`
	Alpha      int `json:"alpha"`

	WorkingDays int `json:"working_days"`
	Percentage  int `json:"percentage"`
}

type RecapResponse struct {
	Type        string     `json:"type"`
	PeriodStart string     `json:"period_start"`
	PeriodEnd   string     `json:"period_end"`
	WorkingDays int        `json:"working_days"`
	Rows        []RecapRow `json:"rows"`
}

// Export modes
const (
	ModeSummary = "summary"
	ModeDetail  = "detail"
)

type ExportRequest struct {
	RecapRequest
	Mode string `json:"mode"` // summary | detail
}

func (r *ExportRequest) Validate() error {
	if err := r.RecapRequest.Validate(); err != nil {
		return err
	}
	var errs validator.ValidationErrors
	if !validator.IsInSlice(r.Mode, []string{ModeSummary, ModeDetail}) {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be summary or detail",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
