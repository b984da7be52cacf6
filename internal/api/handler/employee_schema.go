package handler

import "github.com/emsapp/employee-records/internal/core/domain"

// employeeRequest carries the writable fields for create and update.
type employeeRequest struct {
	FirstName  string  `json:"first_name" validate:"required"`
	LastName   string  `json:"last_name"  validate:"required"`
	Email      string  `json:"email"      validate:"required,email"`
	Position   string  `json:"position"   validate:"required"`
	Salary     float64 `json:"salary"     validate:"required,gt=0"`
	Department string  `json:"department" validate:"required"`
}

// employeeResponse is the transport projection of an employee record. It is
// intentionally separate from the domain type so the JSON contract is not
// coupled to internal changes.
type employeeResponse struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Position   string  `json:"position"`
	Salary     float64 `json:"salary"`
	Department string  `json:"department"`
}

func toEmployeeResponse(e domain.Employee) employeeResponse {
	return employeeResponse{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Position:   e.Position,
		Salary:     e.Salary,
		Department: e.Department,
	}
}

func toEmployeeResponses(employees []domain.Employee) []employeeResponse {
	out := make([]employeeResponse, len(employees))
	for i, e := range employees {
		out[i] = toEmployeeResponse(e)
	}
	return out
}
