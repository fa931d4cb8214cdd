package mailer

import (
	"fmt"
	"net/smtp"

	"media-review/pkg/utils"

	"go.uber.org/zap"
)

// Sender delivers a single message to a recipient
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends mail through a plain-auth SMTP relay
type SMTPSender struct {
	config utils.MailConfig
	log    *zap.Logger
}

func NewSMTPSender(config utils.MailConfig, log *zap.Logger) *SMTPSender {
	return &SMTPSender{
		config: config,
		log:    log.With(zap.String("mailer", "smtp")),
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s\r\n",
		s.config.From, to, subject, body))

	if err := smtp.SendMail(addr, auth, s.config.From, []string{to}, msg); err != nil {
		s.log.Error("Failed to send mail",
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	s.log.Info("Mail sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// LogSender logs messages instead of delivering them, used when MAIL_ENABLED=false
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log.With(zap.String("mailer", "log"))}
}

func (s *LogSender) Send(to, subject, body string) error {
	s.log.Info("Mail (not delivered)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// NewSender picks the SMTP or log implementation from config
func NewSender(config utils.MailConfig, log *zap.Logger) Sender {
	if config.Enabled {
		return NewSMTPSender(config, log)
	}
	return NewLogSender(log)
}
