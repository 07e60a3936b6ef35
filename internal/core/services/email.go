package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
	"github.com/custodia-labs/numen-cli/internal/logger"
)

// Ensure EmailService implements the interface.
var _ driving.EmailService = (*EmailService)(nil)

// EmailService sends reports by email.
type EmailService struct {
	mailer driven.Mailer
}

// NewEmailService creates a new email service.
func NewEmailService(mailer driven.Mailer) *EmailService {
	return &EmailService{mailer: mailer}
}

// SendReport validates the address and sends the report once.
// Delivery failures are logged and returned wrapped in domain.ErrEmailFailed.
func (s *EmailService) SendReport(ctx context.Context, to string, report *domain.Report) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(to))
	if err != nil {
		return domain.NewFieldError("to", "%q is not a valid email address", to)
	}
	if report == nil {
		return domain.NewFieldError("report", "is required")
	}
	if s.mailer == nil {
		return fmt.Errorf("%w: no mailer configured", domain.ErrEmailFailed)
	}

	html, err := reportHTML(report)
	if err != nil {
		return err
	}
	msg := domain.EmailMessage{
		To:      addr.Address,
		Subject: "Your numerology report, " + report.Profile.FullName,
		Text:    reportText(report),
		HTML:    html,
	}

	logger.Debug("Sending report to %s", addr.Address)
	if err := s.mailer.Send(ctx, msg); err != nil {
		logger.Warn("email to %s failed: %v", addr.Address, err)
		return fmt.Errorf("%w: %w", domain.ErrEmailFailed, err)
	}
	return nil
}
