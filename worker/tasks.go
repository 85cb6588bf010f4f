package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fintrack/service"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Task types
const (
	TypeParcelReminder = "parcel:reminder"
)

// ParcelReminderPayload one user's reminder run
type ParcelReminderPayload struct {
	UserID uint `json:"user_id"`
}

// NewParcelReminderTask builds the reminder task for one user
func NewParcelReminderTask(userID uint) (*asynq.Task, error) {
	data, err := json.Marshal(ParcelReminderPayload{UserID: userID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeParcelReminder, data), nil
}

// Reminders is the slice of service.ReminderService the worker needs
type Reminders interface {
	Recipients(ctx context.Context) ([]service.Recipient, error)
	SendReminder(ctx context.Context, userID uint) (int, error)
}

// Handler processes reminder tasks
type Handler struct {
	reminders Reminders
	log       zerolog.Logger
}

// NewHandler creates the handler
func NewHandler(reminders Reminders, log zerolog.Logger) *Handler {
	return &Handler{reminders: reminders, log: log}
}

// HandleParcelReminder mails the user's upcoming unpaid parcels.
// Malformed payloads are not retried; a server without email skips the task.
func (h *Handler) HandleParcelReminder(ctx context.Context, t *asynq.Task) error {
	var p ParcelReminderPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	if p.UserID == 0 {
		return fmt.Errorf("parcel reminder without user_id: %w", asynq.SkipRetry)
	}

	sent, err := h.reminders.SendReminder(ctx, p.UserID)
	if errors.Is(err, service.ErrEmailDisabled) {
		h.log.Info().Uint("user_id", p.UserID).Msg("email disabled, parcel reminder skipped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("parcel reminder for user %d: %w", p.UserID, err)
	}

	h.log.Info().Uint("user_id", p.UserID).Int("parcels", sent).Msg("parcel reminder processed")
	return nil
}
