// SPDX-License-Identifier: GPL-3.0-only

package notifications

// EmailSender delivers a single message. Implementations are constructed
// at startup and injected into the Dispatcher; handlers never reach the
// provider directly.
type EmailSender interface {
	Send(data NotificationData) error
}

type NotificationData struct {
	To       string `json:"to"`
	ToName   string `json:"to_name,omitempty"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
}
