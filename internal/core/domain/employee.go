package domain

// Employee is the record managed by the CRUD and search endpoints.
// Emails are unique across employees.
type Employee struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Position   string  `json:"position"`
	Salary     float64 `json:"salary"`
	Department string  `json:"department"`
}
