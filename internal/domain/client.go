package domain

import "time"

// Service types a client can subscribe to. They drive which report
// generators run for the client each month.
const (
	ServiceSEO     = "seo"
	ServicePPC     = "ppc"
	ServiceGMB     = "gmb"
	ServiceSocial  = "social"
	ServiceChatbot = "chatbot"
)

// Client aligns with scripts/schema.sql clients
type Client struct {
	ID           int       `json:"id"`
	BusinessName string    `json:"businessName"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	Address      string    `json:"address,omitempty"`
	GMBListingID string    `json:"gmbListingId,omitempty"`
	WebsiteURL   string    `json:"websiteUrl,omitempty"`
	Services     []string  `json:"services"`
	Status       string    `json:"status"` // active | paused | cancelled
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasService reports whether the client subscribes to the given service type.
func (c *Client) HasService(serviceType string) bool {
	for _, s := range c.Services {
		if s == serviceType {
			return true
		}
	}
	return false
}
