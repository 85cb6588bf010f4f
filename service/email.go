package service

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"fintrack/config"
	"fintrack/models"

	"gopkg.in/gomail.v2"
)

// ErrEmailDisabled returned by every send while email.enabled is false
var ErrEmailDisabled = errors.New("email is disabled, set FINTRACK_EMAIL_ENABLED=true")

// EmailService SMTP mailer
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates the mailer
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled reports whether sends are attempted at all
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

// SendParcelReminder mails a digest of parcels due in the next days
func (s *EmailService) SendParcelReminder(toEmail, name string, parcels []models.Transaction, daysAhead int) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}
	subject := fmt.Sprintf("[FinTrack] %d parcel(s) due soon", len(parcels))
	return s.sendEmail(toEmail, subject, s.generateReminderBody(name, parcels, daysAhead))
}

func (s *EmailService) generateReminderBody(name string, parcels []models.Transaction, daysAhead int) string {
	var rows strings.Builder
	for _, p := range parcels {
		fmt.Fprintf(&rows, `
                <tr>
                    <td>%s</td>
                    <td>%s</td>
                    <td>%s</td>
                    <td class="amount">%s</td>
                </tr>`,
			p.Date.String(), html.EscapeString(p.Description), html.EscapeString(p.Category), p.Amount.StringFixed(2))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        table { width: 100%%; border-collapse: collapse; }
        th, td { padding: 8px; border-bottom: 1px solid #e5e7eb; text-align: left; font-size: 14px; }
        .amount { text-align: right; font-family: 'Courier New', monospace; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>FinTrack</h1>
        </div>
        <div class="content">
            <p>Hello <strong>%s</strong>,</p>
            <p>These parcels are due in the next %d day(s):</p>
            <table>
                <tr><th>Due</th><th>Description</th><th>Category</th><th class="amount">Amount</th></tr>%s
            </table>
        </div>
        <div class="footer">
            <p>Sent automatically, please do not reply. Turn reminders off in your settings.</p>
        </div>
    </div>
</body>
</html>
`, html.EscapeString(name), daysAhead, rows.String())
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}

// SendTestEmail checks the SMTP settings
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}

	subject := "[FinTrack] Email configuration test"
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>Email is configured</h2>
    <p>If you received this message, parcel reminders can reach you.</p>
    <p style="color: #666;">FinTrack</p>
</body>
</html>
`
	return s.sendEmail(toEmail, subject, body)
}
