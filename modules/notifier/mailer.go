package notifier

import (
	"fmt"
	"log"
	"os"
	"strconv"

	gomail "gopkg.in/gomail.v2"
)

// EmailSender delivers one email. Failures are reported to the caller, who
// logs and moves on: delivery is best-effort by policy.
type EmailSender interface {
	Send(to, subject, body string) error
}

// SMTPConfig holds the SMTP transport settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// LoadSMTPConfig reads SMTP settings from the environment. Host may be empty,
// in which case callers should fall back to the log-only sender.
func LoadSMTPConfig() SMTPConfig {
	port := 587
	if p := os.Getenv("EMAIL_PORT"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			port = parsed
		}
	}

	cfg := SMTPConfig{
		Host:     os.Getenv("EMAIL_HOST"),
		Port:     port,
		Username: os.Getenv("EMAIL_USER"),
		Password: os.Getenv("EMAIL_PASS"),
		From:     os.Getenv("EMAIL_FROM"),
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return cfg
}

// SMTPMailer sends email over SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates an SMTPMailer from the given config.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers one plain-text email.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("Dept Exec System <%s>", m.from))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

// NewMailerFromEnv returns an SMTP-backed sender when EMAIL_HOST is set and
// the log-only sender otherwise.
func NewMailerFromEnv() EmailSender {
	cfg := LoadSMTPConfig()
	if cfg.Host == "" {
		return LogMailer{}
	}
	log.Printf("[notifier] SMTP transport configured (%s:%d)", cfg.Host, cfg.Port)
	return NewSMTPMailer(cfg)
}

// LogMailer writes emails to the log instead of sending them. Used when no
// SMTP host is configured.
type LogMailer struct{}

// Send logs the email instead of delivering it.
func (LogMailer) Send(to, subject, _ string) error {
	log.Printf("[notifier] Email (not sent, no SMTP configured): to=%s subject=%q", to, subject)
	return nil
}
