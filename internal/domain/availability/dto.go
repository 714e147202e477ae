package availability

import (
	"strconv"
	"strings"
	"time"

	"github.com/sharpcut/booking-backend-go/internal/pkg/timeutil"
	"github.com/sharpcut/booking-backend-go/internal/pkg/validator"
)

type WeeklyRuleInput struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    *bool  `json:"active"`
}

type ReplaceWeeklyRulesRequest struct {
	Rules []WeeklyRuleInput `json:"rules"`
	// HorizonDays optionally overrides how far ahead to re-materialize.
	HorizonDays *int `json:"horizon_days"`
}

func (r *ReplaceWeeklyRulesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.HorizonDays != nil && *r.HorizonDays < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "horizon_days",
			Message: "horizon_days must be a positive number",
		})
	}

	for i, rule := range r.Rules {
		field := func(name string) string {
			return "rules[" + strconv.Itoa(i) + "]." + name
		}
		if !validator.IsValidDayOfWeek(rule.DayOfWeek) {
			errs = append(errs, validator.ValidationError{
				Field:   field("day_of_week"),
				Message: "day_of_week must be between 0 (Sunday) and 6 (Saturday)",
			})
		}
		if !validator.IsValidTimeOfDay(rule.StartTime) {
			errs = append(errs, validator.ValidationError{
				Field:   field("start_time"),
				Message: "start_time must be HH:mm",
			})
		}
		if !validator.IsValidTimeOfDay(rule.EndTime) {
			errs = append(errs, validator.ValidationError{
				Field:   field("end_time"),
				Message: "end_time must be HH:mm",
			})
		}
		if validator.IsValidTimeOfDay(rule.StartTime) && validator.IsValidTimeOfDay(rule.EndTime) && rule.EndTime <= rule.StartTime {
			errs = append(errs, validator.ValidationError{
				Field:   field("end_time"),
				Message: "end_time must be after start_time",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateOverrideRequest struct {
	Date      string  `json:"date"`
	Type      string  `json:"type"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Note      *string `json:"note"`
	// HorizonDays optionally overrides how far ahead to re-materialize.
	HorizonDays *int `json:"horizon_days"`
}

func (r *CreateOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.HorizonDays != nil && *r.HorizonDays < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "horizon_days",
			Message: "horizon_days must be a positive number",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}
	if !validator.IsInSlice(r.Type, OverrideTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(OverrideTypeValues, ", "),
		})
	}
	if r.Type == string(OverrideCustom) {
		if !validator.IsValidTimeOfDay(r.StartTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be HH:mm",
			})
		}
		if !validator.IsValidTimeOfDay(r.EndTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be HH:mm",
			})
		}
		if validator.IsValidTimeOfDay(r.StartTime) && validator.IsValidTimeOfDay(r.EndTime) && r.EndTime <= r.StartTime {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be after start_time",
			})
		}
	}
	if r.Type == string(OverrideOff) && (r.StartTime != "" || r.EndTime != "") {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "off overrides must not carry start_time or end_time",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToOverride builds the domain value after Validate has passed.
func (r *CreateOverrideRequest) ToOverride(employeeID string) DayOverride {
	if r.Type == string(OverrideOff) {
		return NewOffOverride(employeeID, r.Date, r.Note)
	}
	return NewCustomOverride(employeeID, r.Date, r.StartTime, r.EndTime, r.Note)
}

type GetSlotsRequest struct {
	ServiceID            string
	EmployeeID           string
	Date                 string
	ExcludeAppointmentID string
}

func (r *GetSlotsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ServiceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "service_id",
			Message: "service_id is required",
		})
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WeeklyRuleResponse struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    bool   `json:"active"`
}

func NewWeeklyRuleResponse(r WeeklyRule) WeeklyRuleResponse {
	return WeeklyRuleResponse{
		ID:        r.ID,
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Active:    r.Active,
	}
}

type OverrideResponse struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Type      string  `json:"type"`
	StartTime string  `json:"start_time,omitempty"`
	EndTime   string  `json:"end_time,omitempty"`
	Note      *string `json:"note,omitempty"`
}

func NewOverrideResponse(o DayOverride) OverrideResponse {
	return OverrideResponse{
		ID:        o.ID,
		Date:      o.Date,
		Type:      string(o.Type),
		StartTime: o.StartTime,
		EndTime:   o.EndTime,
		Note:      o.Note,
	}
}

type SlotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func NewSlotResponse(s Slot, loc *time.Location) SlotResponse {
	return SlotResponse{
		Start: s.StartAt.In(loc).Format(timeutil.InputLayout),
		End:   s.EndAt.In(loc).Format(timeutil.InputLayout),
	}
}
