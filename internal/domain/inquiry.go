package domain

import "time"

// Inquiry aligns with scripts/schema.sql inquiries
type Inquiry struct {
	ID        int       `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Services  []string  `json:"services"`
	Message   string    `json:"message,omitempty"`
	Status    string    `json:"status"` // new | contacted | converted | closed
	CreatedAt time.Time `json:"createdAt"`
}
