package services

import (
	"context"
	"strings"
	"time"

	"ramani-storefront/models"
)

type ContactService struct {
	contacts ContactStore
	now      func() time.Time
}

func NewContactService(contacts ContactStore) *ContactService {
	return &ContactService{contacts: contacts, now: time.Now}
}

func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest) (*models.ContactSubmission, error) {
	c := &models.ContactSubmission{
		Name:      strings.TrimSpace(req.Name),
		Mobile:    strings.TrimSpace(req.Mobile),
		Email:     models.NormalizeEmail(req.Email),
		Subject:   strings.TrimSpace(req.Subject),
		Category:  req.Category,
		Message:   req.Message,
		CreatedAt: s.now(),
	}
	if err := s.contacts.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.ContactSubmission, error) {
	return s.contacts.List(ctx)
}
