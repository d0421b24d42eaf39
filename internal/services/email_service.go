package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// EmailMessage is one outgoing mail.
type EmailMessage struct {
	To      []string
	Subject string
	Body    string
}

// EmailSender abstracts the transport so tests can swap in a stub.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// SMTPSender delivers mail over plain SMTP with auth.
type SMTPSender struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTPSender(host, port, username, password, from string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{
		addr: host + ":" + port,
		from: from,
		auth: auth,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return smtp.SendMail(s.addr, s.auth, s.from, msg.To, []byte(b.String()))
}

// EmailService composes the application's notification mails.
type EmailService struct {
	sender        EmailSender
	publicBaseURL string
}

func NewEmailService(sender EmailSender, publicBaseURL string) *EmailService {
	return &EmailService{sender: sender, publicBaseURL: publicBaseURL}
}

// SendCompanyForm asks the company contact to fill out the employee
// details form for the given user.
func (s *EmailService) SendCompanyForm(ctx context.Context, companyEmail string, userID uint) error {
	body := fmt.Sprintf(
		"Hello,\n\nPlease use the following link to complete the employee details form:\n\n%s/company-response/%d\n\nThank you!\nYour Team",
		s.publicBaseURL, userID,
	)
	return s.sender.Send(ctx, EmailMessage{
		To:      []string{companyEmail},
		Subject: "Please Fill Out the Employee Details Form",
		Body:    body,
	})
}
