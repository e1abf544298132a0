package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"portfolio-web/internal/domain"
	"portfolio-web/internal/email"
	"portfolio-web/internal/repository"
)

var ErrRateLimited = errors.New("too many contact requests")

// ContactInput llega ya validado por el handler (binding tags de gin).
type ContactInput struct {
	Nom     string
	Email   string
	Sujet   string
	Message string
	// ClientIP vacio desactiva el limite.
	ClientIP string
}

// ContactService guarda mensajes de contacto y avisa por email si esta configurado.
type ContactService struct {
	repo     repository.ContactRepository
	sender   email.Sender
	limiter  ContactRateLimiter
	notifyTo string
	logger   *zap.Logger
}

func NewContactService(repo repository.ContactRepository, sender email.Sender, limiter ContactRateLimiter, notifyTo string, logger *zap.Logger) *ContactService {
	if sender == nil {
		sender = email.NewDisabledSender("email sender not configured")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{
		repo:     repo,
		sender:   sender,
		limiter:  limiter,
		notifyTo: strings.TrimSpace(notifyTo),
		logger:   logger,
	}
}

// Submit aplica el limite por IP y guarda el mensaje. El fallo del aviso por email solo se loguea.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (domain.Contact, error) {
	contact := domain.Contact{
		Nom:     strings.TrimSpace(in.Nom),
		Email:   strings.TrimSpace(in.Email),
		Sujet:   strings.TrimSpace(in.Sujet),
		Message: strings.TrimSpace(in.Message),
	}
	if s.limiter != nil && in.ClientIP != "" && !s.limiter.Allow(ctx, in.ClientIP) {
		s.logger.Warn("contact rate limited", zap.String("client_ip", in.ClientIP))
		return domain.Contact{}, ErrRateLimited
	}

	if err := s.repo.Create(ctx, &contact); err != nil {
		return domain.Contact{}, fmt.Errorf("create contact: %w", err)
	}

	if s.notifyTo != "" {
		if err := s.sender.SendContactNotification(ctx, s.notifyTo, contact); err != nil {
			s.logger.Warn("contact notification failed", zap.Int64("contact_id", contact.ID), zap.Error(err))
		}
	}
	return contact, nil
}
