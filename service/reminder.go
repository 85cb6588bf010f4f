package service

import (
	"context"
	"fmt"
	"time"

	"fintrack/models"

	"gorm.io/gorm"
)

// ReminderMailer delivers parcel digests
type ReminderMailer interface {
	Enabled() bool
	SendParcelReminder(toEmail, name string, parcels []models.Transaction, daysAhead int) error
}

// Recipient a user who opted into parcel reminders
type Recipient struct {
	UserID    uint
	Name      string
	Email     string
	DaysAhead int
}

// ReminderService finds parcels coming due and mails their owners
type ReminderService struct {
	db     *gorm.DB
	mailer ReminderMailer
	now    func() time.Time
}

// NewReminderService creates the reminder service
func NewReminderService(db *gorm.DB, mailer ReminderMailer) *ReminderService {
	return &ReminderService{db: db, mailer: mailer, now: time.Now}
}

// WithClock replaces the time source used for "today"
func (s *ReminderService) WithClock(now func() time.Time) *ReminderService {
	s.now = now
	return s
}

func recipientQuery(db *gorm.DB) *gorm.DB {
	return db.Table("user_settings").
		Select("user_settings.user_id, users.name, user_settings.email, user_settings.reminder_days_ahead AS days_ahead").
		Joins("JOIN users ON users.id = user_settings.user_id").
		Where("user_settings.reminders_enabled = ? AND user_settings.email <> ?", true, "")
}

// Recipients every user with reminders enabled and an address on file
func (s *ReminderService) Recipients(ctx context.Context) ([]Recipient, error) {
	out := make([]Recipient, 0)
	if err := recipientQuery(s.db.WithContext(ctx)).
		Order("user_settings.user_id ASC").
		Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("load reminder recipients: %w", err)
	}
	for i := range out {
		out[i].DaysAhead = normalizeDaysAhead(out[i].DaysAhead)
	}
	return out, nil
}

// DueParcels unpaid parcel children due within [today, today+daysAhead]
func (s *ReminderService) DueParcels(ctx context.Context, userID uint, daysAhead int) ([]models.Transaction, error) {
	today := models.DateOf(s.now())
	rows := make([]models.Transaction, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_parceled = ? AND parent_transaction_id IS NOT NULL AND paid = ?", userID, true, false).
		Where("date >= ? AND date <= ?", today, today.AddDays(normalizeDaysAhead(daysAhead))).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load due parcels: %w", err)
	}
	return rows, nil
}

// SendReminder mails one user's due parcels and returns how many were listed.
// A user who turned reminders off after the task was queued gets nothing.
func (s *ReminderService) SendReminder(ctx context.Context, userID uint) (int, error) {
	if s.mailer == nil || !s.mailer.Enabled() {
		return 0, ErrEmailDisabled
	}

	var recipients []Recipient
	if err := recipientQuery(s.db.WithContext(ctx)).
		Where("user_settings.user_id = ?", userID).
		Limit(1).
		Scan(&recipients).Error; err != nil {
		return 0, fmt.Errorf("load reminder recipient: %w", err)
	}
	if len(recipients) == 0 {
		return 0, nil
	}
	r := recipients[0]
	days := normalizeDaysAhead(r.DaysAhead)

	parcels, err := s.DueParcels(ctx, userID, days)
	if err != nil {
		return 0, err
	}
	if len(parcels) == 0 {
		return 0, nil
	}
	if err := s.mailer.SendParcelReminder(r.Email, r.Name, parcels, days); err != nil {
		return 0, err
	}
	return len(parcels), nil
}

func normalizeDaysAhead(days int) int {
	if days < 1 || days > 31 {
		return models.DefaultReminderDaysAhead
	}
	return days
}
