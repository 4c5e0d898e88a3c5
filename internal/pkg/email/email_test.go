package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(apiKey string) (*SendGridService, *[]*sgmail.SGMailV3) {
	svc := NewEmailService(Config{
		APIKey:    apiKey,
		FromName:  "JavaMaster",
		FromEmail: "no-reply@javamaster.in",
		BaseURL:   "https://javamaster.in",
	}, zerolog.Nop())

	sent := make([]*sgmail.SGMailV3, 0)
	svc.send = func(m *sgmail.SGMailV3) error {
		sent = append(sent, m)
		return nil
	}
	return svc, &sent
}

func TestWithoutAPIKeyNothingIsSent(t *testing.T) {
	svc, sent := newTestService("")

	require.NoError(t, svc.SendWelcomeEmail(context.Background(), "a@x.com", "Asha"))
	assert.Empty(t, *sent)
}

func TestOrderConfirmationMessage(t *testing.T) {
	svc, sent := newTestService("SG.key")

	err := svc.SendOrderConfirmation(context.Background(), "a@x.com", "Asha <Rao>", OrderReceipt{
		CourseTitle:    "Core Java Bootcamp",
		Amount:         "999.00",
		TransactionID:  "pay_123",
		PurchaseDate:   time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
		BatchStartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, *sent, 1)

	m := (*sent)[0]
	assert.Equal(t, "no-reply@javamaster.in", m.From.Address)
	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "Your enrollment in Core Java Bootcamp", m.Personalizations[0].Subject)
	assert.Equal(t, "a@x.com", m.Personalizations[0].To[0].Address)

	require.Len(t, m.Content, 2)
	assert.Contains(t, m.Content[1].Value, "Asha &lt;Rao&gt;")
	assert.Contains(t, m.Content[1].Value, "https://javamaster.in/order-confirmation/pay_123")
}

func TestSendFailureIsReturned(t *testing.T) {
	svc, _ := newTestService("SG.key")
	svc.send = func(*sgmail.SGMailV3) error { return errors.New("status 401") }

	assert.Error(t, svc.SendWelcomeEmail(context.Background(), "a@x.com", "Asha"))
}
