package repository

import (
	"context"

	"topweb-backend/internal/domain"
)

// NewClient insert payload for a client row
type NewClient struct {
	BusinessName string
	ContactEmail string
	ContactPhone string
	Address      string
	GMBListingID string
	WebsiteURL   string
	Services     []string
	Status       string // defaults to active when empty
}

// ClientUpdate partial update; nil fields are left untouched
type ClientUpdate struct {
	BusinessName *string
	ContactEmail *string
	ContactPhone *string
	Address      *string
	GMBListingID *string
	WebsiteURL   *string
	Services     *[]string
	Status       *string
}

type ClientsRepository interface {
	CreateClient(ctx context.Context, payload NewClient) (*domain.Client, error)
	GetClient(ctx context.Context, id int) (*domain.Client, error)
	ListClients(ctx context.Context) ([]*domain.Client, error)
	UpdateClient(ctx context.Context, id int, updates ClientUpdate) (*domain.Client, error)
}
