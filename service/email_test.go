package service

import (
	"testing"

	"fintrack/config"
	"fintrack/models"

	"github.com/stretchr/testify/assert"
)

func newTestEmailService() *EmailService {
	return NewEmailService(&config.EmailConfig{})
}

func TestGenerateReminderBody(t *testing.T) {
	s := newTestEmailService()
	parcels := []models.Transaction{
		{Description: "Notebook (2/3)", Category: "Eletrônicos", Amount: dec("400"), Date: models.NewDate(2024, 3, 15)},
		{Description: "<b>TV</b> (1/10)", Category: "Casa", Amount: dec("199.9"), Date: models.NewDate(2024, 3, 12)},
	}
	body := s.generateReminderBody("Ana", parcels, 3)

	assert.Contains(t, body, "Ana")
	assert.Contains(t, body, "next 3 day(s)")
	assert.Contains(t, body, "Notebook (2/3)")
	assert.Contains(t, body, "2024-03-15")
	assert.Contains(t, body, "400.00")
	assert.Contains(t, body, "199.90")
	assert.Contains(t, body, "&lt;b&gt;TV&lt;/b&gt;")
	assert.NotContains(t, body, "<b>TV</b>")
}

func TestEmailDisabled(t *testing.T) {
	s := newTestEmailService()
	assert.False(t, s.Enabled())
	assert.ErrorIs(t, s.SendTestEmail("a@example.com"), ErrEmailDisabled)
	assert.ErrorIs(t, s.SendParcelReminder("a@example.com", "Ana", nil, 3), ErrEmailDisabled)

	assert.False(t, NewEmailService(nil).Enabled())
}
