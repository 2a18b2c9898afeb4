package domain

import "time"

// User aligns with scripts/schema.sql users
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email,omitempty"`
	FirstName          string    `json:"firstName,omitempty"`
	LastName           string    `json:"lastName,omitempty"`
	ProfileImageURL    string    `json:"profileImageUrl,omitempty"`
	Company            string    `json:"company,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	Subscription       string    `json:"subscription"`       // free | campaign_hub | enterprise
	SubscriptionStatus string    `json:"subscriptionStatus"` // active | cancelled | expired
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
