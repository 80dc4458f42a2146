package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"

	"github.com/zwelix28/canna-bomb-sub001/config"

	"go.uber.org/zap"
	gopkgmail "gopkg.in/gomail.v2"
)

// Mailer delivers one rendered order email. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(to string, kind EmailKind, data EmailData, subject string) error
	Enabled() bool
}

type SMTPMailer struct {
	cfg  config.SMTP
	tmpl *template.Template
	log  *zap.Logger

	warnOnce sync.Once
}

func NewSMTPMailer(cfg config.SMTP, log *zap.Logger) (*SMTPMailer, error) {
	tmpl, err := template.New("order_email").Parse(emailLayout)
	if err != nil {
		return nil, fmt.Errorf("parse email layout: %w", err)
	}
	return &SMTPMailer{cfg: cfg, tmpl: tmpl, log: log}, nil
}

func (m *SMTPMailer) Enabled() bool { return m.cfg.Configured() }

func (m *SMTPMailer) Send(to string, kind EmailKind, data EmailData, subject string) error {
	if !m.cfg.Configured() {
		// permanent no-op across the whole service, logged once
		m.warnOnce.Do(func() {
			m.log.Warn("SMTP is not configured, order emails are disabled")
		})
		return nil
	}

	var buf bytes.Buffer
	if err := m.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render email %s: %w", kind, err)
	}

	msg := gopkgmail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", buf.String())

	d := gopkgmail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	d.SSL = m.cfg.Port == 465
	return d.DialAndSend(msg)
}
