package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/geosite/cms/internal/config"
	"github.com/geosite/cms/internal/logger"
	"github.com/geosite/cms/internal/models"
)

// Mailer sends the admin a notification when a contact form is submitted.
// Delivery failures are logged and never fail the surrounding request.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
	adminTo  string
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFromEmail,
		adminTo:  cfg.AdminEmail,
	}
}

// Enabled reports whether SMTP credentials are configured.
func (m *Mailer) Enabled() bool {
	return m.user != "" && m.password != ""
}

// NotifyContactSubmission mails the configured admin address about a new
// contact submission. Best effort: a failure is logged, not returned.
func (m *Mailer) NotifyContactSubmission(sub *models.ContactSubmission) {
	if !m.Enabled() {
		return
	}

	subject := fmt.Sprintf("New contact submission from %s", sub.Name)
	body := strings.Join([]string{
		"Name: " + sub.Name,
		"Email: " + sub.Email,
		"Phone: " + sub.Phone,
		"",
		sub.Message,
	}, "\r\n")

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + m.adminTo,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.from, []string{m.adminTo}, []byte(msg)); err != nil {
		logger.Get().Error().Err(err).Uint("submission_id", sub.ID).Msg("Failed to send contact notification")
	}
}
