package swap

import (
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	TargetUserID  string `json:"target_user_id"`
	RequesterDate string `json:"date"`        // the requester's duty date being given away
	TargetDate    string `json:"target_date"` // the target's duty date requested in exchange
	Reason        string `json:"reason"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TargetUserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "target_user_id",
			Message: "target_user_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.RequesterDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(r.TargetDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "target_date",
			Message: "target_date must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RespondRequest struct {
	Status string `json:"status"` // approved | rejected
}

func (r *RespondRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsInSlice(r.Status, []string{StatusApproved, StatusRejected}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be approved or rejected",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID            string  `json:"id"`
	RequesterID   string  `json:"requester_id"`
	RequesterName *string `json:"requester_name,omitempty"`
	TargetUserID  string  `json:"target_user_id"`
	TargetName    *string `json:"target_name,omitempty"`
	RequesterDate string  `json:"date"`
	TargetDate    string  `json:"target_date"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
}

func ToResponse(r Request) Response {
	return Response{
		ID:            r.ID,
		RequesterID:   r.RequesterID,
		RequesterName: r.RequesterName,
		TargetUserID:  r.TargetUserID,
		TargetName:    r.TargetName,
		RequesterDate: r.RequesterDate.Format("2006-01-02"),
		TargetDate:    r.TargetDate.Format("2006-01-02"),
		Reason:        r.Reason,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
