// SPDX-License-Identifier: GPL-3.0-only

package notifications

import (
	"bytes"
	"html/template"

	"clarity-server/commons"
)

// Dispatcher composes and delivers the application's transactional mail.
// Delivery is best-effort: callers log failures and never roll back the
// state change that triggered the message.
type Dispatcher struct {
	sender EmailSender
	appURL string
}

func NewDispatcher(sender EmailSender) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		appURL: commons.GetEnv("APP_URL", "http://localhost:3000"),
	}
}

const verificationTemplate = `<p>Hi {{.Name}},</p>
<p>Thank you for signing up! Please verify your email address to activate your account.</p>
<p><a href="{{.Link}}">Verify Email Address</a></p>
<p>Or copy and paste this link in your browser:</p>
<p>{{.Link}}</p>
<p>This verification link will expire in 24 hours.</p>
<p>If you didn't create an account, you can safely ignore this email.</p>`

const passwordResetTemplate = `<p>Hi {{.Name}},</p>
<p>We received a request to reset your password for your Clarity Finance account.</p>
<p><a href="{{.Link}}">Reset Password</a></p>
<p>Or copy and paste this link in your browser:</p>
<p>{{.Link}}</p>
<p>This link will expire in 1 hour. If you didn't request this reset, please
ignore this email; your password will remain unchanged until you create a new one.</p>`

var (
	verificationTmpl  = template.Must(template.New("verification").Parse(verificationTemplate))
	passwordResetTmpl = template.Must(template.New("password-reset").Parse(passwordResetTemplate))
)

func render(tmpl *template.Template, name, link string) (string, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Name string
		Link string
	}{Name: name, Link: link})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (d *Dispatcher) SendVerificationEmail(email, name, token string) error {
	link := d.appURL + "/auth/verify-email?token=" + token
	body, err := render(verificationTmpl, name, link)
	if err != nil {
		return err
	}
	return d.sender.Send(NotificationData{
		To:       email,
		ToName:   name,
		Subject:  "Verify your email - Clarity Finance",
		HTMLBody: body,
	})
}

func (d *Dispatcher) SendPasswordResetEmail(email, name, token string) error {
	link := d.appURL + "/auth/reset-password?token=" + token
	body, err := render(passwordResetTmpl, name, link)
	if err != nil {
		return err
	}
	return d.sender.Send(NotificationData{
		To:       email,
		ToName:   name,
		Subject:  "Reset your password - Clarity Finance",
		HTMLBody: body,
	})
}
