package notification

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"internhub/internal/config"

	"github.com/google/uuid"
)

// AddressBook resolves the email address of an account.
type AddressBook interface {
	EmailOf(ctx context.Context, userID uuid.UUID) (string, error)
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	cfg      config.SMTPConfig
	accounts AddressBook
	send     sendFunc
}

func NewMailer(cfg config.SMTPConfig, accounts AddressBook) *Mailer {
	return &Mailer{cfg: cfg, accounts: accounts, send: smtp.SendMail}
}

func (m *Mailer) Notify(ctx context.Context, msg Message) error {
	if m == nil || m.accounts == nil {
		return errors.New("mailer not configured")
	}
	to, err := m.accounts.EmailOf(ctx, msg.To)
	if err != nil {
		return fmt.Errorf("resolve recipient %s: %w", msg.To, err)
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return fmt.Errorf("recipient %s has no email", msg.To)
	}

	subject, body, err := Render(msg)
	if err != nil {
		return err
	}

	message := []byte("From: " + m.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.From, []string{to}, message)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
