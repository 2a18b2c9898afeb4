package repository

import (
	"context"

	"topweb-backend/internal/domain"
)

// NewInquiry insert payload for a contact-form submission
type NewInquiry struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Services  []string
	Message   string
}

type InquiriesRepository interface {
	CreateInquiry(ctx context.Context, payload NewInquiry) (*domain.Inquiry, error)
	ListInquiries(ctx context.Context) ([]*domain.Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, id int, status string) (*domain.Inquiry, error)
}
