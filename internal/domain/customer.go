package domain

import "time"

// Customer holds normalized personal data: names are Title-cased with inner
// whitespace collapsed, email is stored lowercase and is unique
// case-insensitively across all customers.
type Customer struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
