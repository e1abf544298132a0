package email

import (
	"context"
	"errors"

	"portfolio-web/internal/domain"
)

// Sender define la interfaz para avisar de un nuevo mensaje de contacto.
type Sender interface {
	SendContactNotification(ctx context.Context, toEmail string, contact domain.Contact) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendContactNotification(_ context.Context, _ string, _ domain.Contact) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
