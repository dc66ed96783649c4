package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// Email template names. Dispatch in send() is closed over this set.
const (
	TemplateEmailVerification = "emailVerification"
	TemplateForgotPassword    = "forgotPassword"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	replyTo   string
	isDev     bool
	clientURL string
	appName   string
}

func NewEmailService(apiKey, fromEmail, replyTo, clientURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		replyTo:   replyTo,
		isDev:     isDev,
		clientURL: clientURL,
		appName:   appName,
	}
}

// SendVerificationEmail mails the email verification link. The link lands on
// the client app, which posts the token back to the API.
func (s *EmailService) SendVerificationEmail(email, token, name string) error {
	link := fmt.Sprintf("%s/verify-email/%s", s.clientURL, token)
	return s.send(email, TemplateEmailVerification, name, link)
}

func (s *EmailService) SendPasswordResetEmail(email, token, name string) error {
	link := fmt.Sprintf("%s/reset-password/%s", s.clientURL, token)
	return s.send(email, TemplateForgotPassword, name, link)
}

func (s *EmailService) send(to, template, name, link string) error {
	subject, body, err := renderEmailTemplate(template, s.appName, name, link)
	if err != nil {
		return err
	}

	if s.isDev {
		slog.Info("email sent (dev mode)", "template", template, "to", to, "subject", subject, "link", link)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		ReplyTo: s.replyTo,
		Subject: subject,
		Text:    body,
	}

	_, err = s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "template", template, "to", to)
	}
	return err
}
