package repository

import (
	"context"

	"topweb-backend/internal/domain"
)

// UpsertUser payload for user creation/refresh on login
type UpsertUser struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
	Company         string
	Phone           string
}

type UsersRepository interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpsertUser(ctx context.Context, payload UpsertUser) (*domain.User, error)
}
