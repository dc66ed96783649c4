package service

import "fmt"

// renderEmailTemplate resolves a template by name and substitutes the
// recipient name and action link.
func renderEmailTemplate(template, appName, name, link string) (subject, body string, err error) {
	switch template {
	case TemplateEmailVerification:
		subject, body = emailVerificationTemplate(appName, name, link)
	case TemplateForgotPassword:
		subject, body = forgotPasswordTemplate(appName, name, link)
	default:
		return "", "", fmt.Errorf("unknown email template: %s", template)
	}
	return subject, body, nil
}

func emailVerificationTemplate(appName, name, link string) (string, string) {
	subject := fmt.Sprintf("Email Verification - %s", appName)
	body := fmt.Sprintf(`Hi %s,

Please verify your email address by clicking the link below:
%s

This link expires in 24 hours.

If you didn't create an account, you can safely ignore this email.

Best,
The %s Team`, name, link, appName)

	return subject, body
}

func forgotPasswordTemplate(appName, name, link string) (string, string) {
	subject := fmt.Sprintf("Password Reset - %s", appName)
	body := fmt.Sprintf(`Hi %s,

You requested to reset your password. Click the link below to choose a new one:
%s

This link expires in 1 hour and can only be used once.

If you didn't request this, you can safely ignore this email. Your password won't be changed.

Best,
The %s Team`, name, link, appName)

	return subject, body
}
