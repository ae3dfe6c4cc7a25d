package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bookerhq/booker-backend/internal/core/port"
	"github.com/bookerhq/booker-backend/internal/infra/config"
	"github.com/bookerhq/booker-backend/internal/infra/logger"
)

// SMTPSender delivers notification mail over plain SMTP. Callers treat
// failures as non-fatal; the triggering operation never rolls back on a
// delivery error.
type SMTPSender struct {
	addr   string
	from   string
	send   func(addr, from string, to []string, msg []byte) error
	logger *zap.Logger
}

// NewSMTPSender constructs a sender for the configured relay.
func NewSMTPSender(cfg config.MailSettings, log *zap.Logger) *SMTPSender {
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from: cfg.From,
		send: func(addr, from string, to []string, msg []byte) error {
			return smtp.SendMail(addr, nil, from, to, msg)
		},
		logger: log,
	}
}

func (s *SMTPSender) deliver(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	if err := s.send(s.addr, s.from, []string{to}, []byte(b.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", logger.MaskEmail(to), err)
	}

	s.logger.Info("mail delivered",
		zap.String("to", logger.MaskEmail(to)),
		zap.String("subject", subject),
	)
	return nil
}

// SendWelcome greets a freshly registered user.
func (s *SMTPSender) SendWelcome(ctx context.Context, email, firstName string) error {
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nWelcome to Booker! Your account is ready.\r\n\r\nThe Booker team",
		firstName,
	)
	return s.deliver(ctx, email, "Welcome to Booker", body)
}

// SendAppointmentConfirmation confirms a booked appointment.
func (s *SMTPSender) SendAppointmentConfirmation(ctx context.Context, email, customerName, professionalName, serviceName string, startTime time.Time) error {
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour appointment for %s with %s is confirmed for %s.\r\n\r\nThe Booker team",
		customerName,
		serviceName,
		professionalName,
		startTime.Format(time.RFC1123),
	)
	return s.deliver(ctx, email, "Appointment confirmed", body)
}

var _ port.NotificationSender = (*SMTPSender)(nil)
