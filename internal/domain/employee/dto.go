package employee

import (
	"strings"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/validator"
)

const maxNameLength = 100

type CreateEmployeeRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)

	if errs := validateNames(r.FirstName, r.LastName); len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID        string `json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)

	errs := validateNames(r.FirstName, r.LastName)
	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFilter struct {
	Search string `json:"search,omitempty"`
}

type EmployeeResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at"`
}

func validateNames(first, last string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(first) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "please enter first and last name",
		})
	} else if !validator.MaxLength(first, maxNameLength) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name must not exceed 100 characters",
		})
	}

	if validator.IsEmpty(last) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "please enter first and last name",
		})
	} else if !validator.MaxLength(last, maxNameLength) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name must not exceed 100 characters",
		})
	}

	return errs
}
