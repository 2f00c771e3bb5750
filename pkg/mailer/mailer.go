package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"lms-backend/pkg/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// Mailer renders a named HTML template and dispatches it. Implementations
// must be safe for concurrent use; callers treat delivery as best-effort.
type Mailer interface {
	Send(to, subject, templateName string, data any) error
}

type smtpMailer struct {
	dialer    *gomail.Dialer
	from      string
	templates *template.Template
}

func NewSMTPMailer(cfg *config.Config) (Mailer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("mailer: parsing templates: %w", err)
	}
	return &smtpMailer{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword),
		from:      cfg.SMTPFrom,
		templates: tmpl,
	}, nil
}

func (m *smtpMailer) Send(to, subject, templateName string, data any) error {
	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, templateName+".html", data); err != nil {
		return fmt.Errorf("mailer: rendering %s: %w", templateName, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: sending to %s: %w", to, err)
	}
	return nil
}
