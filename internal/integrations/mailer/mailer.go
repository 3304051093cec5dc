// Package mailer отправка транзакционных писем через SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// ErrSend возвращается при ошибке отправки письма
var ErrSend = errors.New("mailer: failed to send email")

// sender подмножество gomail.Dialer
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Email письмо с html и текстовой версией
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer отправляет письма через SMTP
type Mailer struct {
	sender sender
	from   string
}

// New создает SMTP отправителя
func New(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		sender: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send отправляет письмо
// gomail не принимает контекст, поэтому отменённый контекст проверяется до отправки
func (m *Mailer) Send(ctx context.Context, email Email) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/plain", email.Text)
	if email.HTML != "" {
		msg.AddAlternative("text/html", email.HTML)
	}

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSend, email.To, err)
	}
	return nil
}
