// SPDX-License-Identifier: GPL-3.0-only

package notifications

import (
	"crypto/tls"
	"fmt"
	"strconv"
	"sync"

	"clarity-server/commons"

	"gopkg.in/gomail.v2"
)

// MockSender logs the message instead of delivering it. Used when
// MOCK_EMAIL_NOTIFICATIONS=true and in tests. Send may be called from
// background goroutines, so the recorded messages are mutex-guarded.
type MockSender struct {
	mu   sync.Mutex
	sent []NotificationData
}

func (m *MockSender) Send(data NotificationData) error {
	m.mu.Lock()
	m.sent = append(m.sent, data)
	m.mu.Unlock()
	commons.Logger.Info("=== MOCK EMAIL NOTIFICATION ===")
	commons.Logger.Infof("To: %s <%s>", data.ToName, data.To)
	commons.Logger.Infof("Subject: %s", data.Subject)
	commons.Logger.Info("=== EMAIL MOCK COMPLETE ===")
	return nil
}

// Messages returns a copy of everything sent so far.
func (m *MockSender) Messages() []NotificationData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]NotificationData(nil), m.sent...)
}

// SMTPSender delivers mail through the SMTP relay configured in the
// environment.
type SMTPSender struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

func NewSMTPSender() (*SMTPSender, error) {
	host := commons.GetEnv("SMTP_HOST")
	if host == "" {
		return nil, fmt.Errorf("SMTP_HOST environment variable is not set")
	}

	portStr := commons.GetEnv("SMTP_PORT", "587")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port: %s", portStr)
	}

	username := commons.GetEnv("SMTP_USERNAME")
	if username == "" {
		return nil, fmt.Errorf("SMTP_USERNAME environment variable is not set")
	}

	password := commons.GetEnv("SMTP_PASSWORD")
	if password == "" {
		return nil, fmt.Errorf("SMTP_PASSWORD environment variable is not set")
	}

	fromEmail := commons.GetEnv("SMTP_FROM_EMAIL")
	if fromEmail == "" {
		return nil, fmt.Errorf("SMTP_FROM_EMAIL environment variable is not set")
	}

	return &SMTPSender{
		Host:      host,
		Port:      port,
		Username:  username,
		Password:  password,
		FromEmail: fromEmail,
		FromName:  commons.GetEnv("SMTP_FROM_NAME", "Clarity Finance"),
	}, nil
}

func (s *SMTPSender) Send(data NotificationData) error {
	if data.To == "" {
		return fmt.Errorf("'to' field is required")
	}
	if data.Subject == "" {
		return fmt.Errorf("'subject' field is required")
	}

	message := gomail.NewMessage()
	message.SetHeader("From", message.FormatAddress(s.FromEmail, s.FromName))
	message.SetHeader("To", message.FormatAddress(data.To, data.ToName))
	message.SetHeader("Subject", data.Subject)
	message.SetBody("text/html", data.HTMLBody)

	dialer := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	dialer.TLSConfig = &tls.Config{
		ServerName:         s.Host,
		InsecureSkipVerify: false,
	}

	if err := dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	return nil
}
