package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ramani-storefront/models"
)

type memContacts struct {
	items []models.ContactSubmission
}

func (m *memContacts) Insert(_ context.Context, c *models.ContactSubmission) error {
	c.ID = primitive.NewObjectID()
	m.items = append([]models.ContactSubmission{*c}, m.items...)
	return nil
}

func (m *memContacts) List(context.Context) ([]models.ContactSubmission, error) {
	return m.items, nil
}

func TestContactSubmit(t *testing.T) {
	now := time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC)
	store := &memContacts{}
	svc := NewContactService(store)
	svc.now = fixedClock(now)
	ctx := context.Background()

	c, err := svc.Submit(ctx, models.ContactRequest{
		Name:     "  Asha Rao ",
		Mobile:   "9876543210",
		Email:    " Asha@Example.COM",
		Subject:  "Saree length",
		Category: "product",
		Message:  "Is the blouse piece included?",
	})
	require.NoError(t, err)
	assert.False(t, c.ID.IsZero())
	assert.Equal(t, "Asha Rao", c.Name)
	assert.Equal(t, "asha@example.com", c.Email)
	assert.Equal(t, now, c.CreatedAt)

	_, err = svc.Submit(ctx, models.ContactRequest{Name: "Second", Mobile: "9876500000", Email: "b@example.com", Subject: "s", Category: "order"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].Name)
}

func TestContactRequestValidate(t *testing.T) {
	req := models.ContactRequest{Name: "Asha", Mobile: "9876543210", Email: "a@example.com", Subject: "Hi"}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")

	req.Category = "general"
	assert.NoError(t, req.Validate())

	req.Email = "not-an-email"
	assert.Error(t, req.Validate())
}
