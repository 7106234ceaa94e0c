package models

import "time"

// User is collaborator-owned data: account issuance, passwords and sessions
// live outside this service. Fulfillment only reads users to attribute orders.
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
