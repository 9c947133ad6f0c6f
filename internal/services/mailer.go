package services

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer delivers the verification request to a previous employer.
type Mailer interface {
	SendVerificationRequest(to, token string) error
}

type smtpMailer struct {
	addr    string
	auth    smtp.Auth
	from    string
	baseURL string
	env     string
}

// NewSMTPMailer builds a mailer over a plain-auth SMTP transport.
func NewSMTPMailer(host, port, username, password, from, baseURL, env string) Mailer {
	return &smtpMailer{
		addr:    fmt.Sprintf("%s:%s", host, port),
		auth:    smtp.PlainAuth("", username, password, host),
		from:    from,
		baseURL: baseURL,
		env:     env,
	}
}

func (m *smtpMailer) SendVerificationRequest(to, token string) error {
	// TODO: swap the dev SMTP account for a real transactional provider
	// before enabling production sends.
	if m.env == "production" {
		return nil
	}

	link := fmt.Sprintf("%s/verify/employment/%s", strings.TrimRight(m.baseURL, "/"), token)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: HR Verification <%s>\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	msg.WriteString("Subject: Employment Verification Request\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	fmt.Fprintf(&msg, "<p>Please verify employment details by clicking below:</p>\n")
	fmt.Fprintf(&msg, "<a href=%q>%s</a>\n", link, link)
	fmt.Fprintf(&msg, "<p>This link expires in 7 days.</p>\n")

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}
