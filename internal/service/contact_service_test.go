package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio-web/internal/domain"
)

type mockContactRepo struct {
	created []domain.Contact
	err     error
}

func (m *mockContactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	if m.err != nil {
		return m.err
	}
	contact.ID = int64(len(m.created) + 1)
	contact.EnvoyeLe = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m.created = append(m.created, *contact)
	return nil
}

type mockContactSender struct {
	to       string
	contacts []domain.Contact
	err      error
}

func (m *mockContactSender) SendContactNotification(ctx context.Context, toEmail string, contact domain.Contact) error {
	m.to = toEmail
	m.contacts = append(m.contacts, contact)
	return m.err
}

func validInput() ContactInput {
	return ContactInput{
		Nom:     " Ana ",
		Email:   "ana@example.com",
		Sujet:   "Mission",
		Message: "Bonjour, êtes-vous disponible ?",
	}
}

func TestContactServiceSubmit(t *testing.T) {
	t.Run("guarda y notifica", func(t *testing.T) {
		repo := &mockContactRepo{}
		sender := &mockContactSender{}
		svc := NewContactService(repo, sender, nil, "me@example.com", nil)

		contact, err := svc.Submit(context.Background(), validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if contact.ID != 1 || contact.Nom != "Ana" {
			t.Fatalf("unexpected contact: %+v", contact)
		}
		if sender.to != "me@example.com" || len(sender.contacts) != 1 {
			t.Fatalf("expected notification to me@example.com, got %q (%d)", sender.to, len(sender.contacts))
		}
	})

	t.Run("sin destinatario no notifica", func(t *testing.T) {
		sender := &mockContactSender{}
		svc := NewContactService(&mockContactRepo{}, sender, nil, "", nil)

		if _, err := svc.Submit(context.Background(), validInput()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sender.contacts) != 0 {
			t.Fatalf("expected no notification")
		}
	})

	t.Run("fallo del email no falla el envio", func(t *testing.T) {
		repo := &mockContactRepo{}
		svc := NewContactService(repo, &mockContactSender{err: errors.New("smtp down")}, nil, "me@example.com", nil)

		if _, err := svc.Submit(context.Background(), validInput()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.created) != 1 {
			t.Fatalf("expected contact stored")
		}
	})

	t.Run("rate limit por ip", func(t *testing.T) {
		repo := &mockContactRepo{}
		svc := NewContactService(repo, nil, NewContactRateLimiter(time.Hour, 1), "", nil)
		in := validInput()
		in.ClientIP = "10.0.0.1"

		if _, err := svc.Submit(context.Background(), in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Submit(context.Background(), in); !errors.Is(err, ErrRateLimited) {
			t.Fatalf("expected ErrRateLimited, got %v", err)
		}
		if len(repo.created) != 1 {
			t.Fatalf("expected one stored contact, got %d", len(repo.created))
		}
	})

	t.Run("error del repositorio", func(t *testing.T) {
		svc := NewContactService(&mockContactRepo{err: errors.New("db down")}, nil, nil, "", nil)

		_, err := svc.Submit(context.Background(), validInput())
		if err == nil || errors.Is(err, ErrRateLimited) {
			t.Fatalf("expected storage error, got %v", err)
		}
	})
}
