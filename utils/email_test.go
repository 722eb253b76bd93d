package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ramani-storefront/config"
	"ramani-storefront/models"
)

type recordingMailer struct {
	to, subject, body string
}

func (m *recordingMailer) SendEmail(to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return nil
}

func TestSendOrderConfirmationEmail(t *testing.T) {
	order := models.Order{
		OrderNumber:     "RM1700000000000",
		TotalAmount:     2998,
		PaymentMethod:   "cod",
		ShippingAddress: models.ShippingAddress{FullName: "Asha"},
		Items:           []models.OrderItem{{Name: "Silk Saree", Price: 1499, Quantity: 2}},
	}
	m := &recordingMailer{}
	require.NoError(t, SendOrderConfirmationEmail(m, "asha@example.com", order))

	assert.Equal(t, "asha@example.com", m.to)
	assert.Equal(t, "Order Confirmation RM1700000000000", m.subject)
	assert.Contains(t, m.body, "Silk Saree x 2")
	assert.Contains(t, m.body, "2998.00")
}

func TestEmailServiceWithoutKeyLogsOnly(t *testing.T) {
	es := NewEmailService(config.Email{})
	assert.NoError(t, es.SendEmail("a@b.com", "hi", "<p>hi</p>"))
}
