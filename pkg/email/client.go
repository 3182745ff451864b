// Package email provides a small SMTP client for sending reservation
// notifications.
package email

import (
	"time"

	"gopkg.in/mail.v2"
)

// Client represents an SMTP client used to send notifications.
type Client struct {
	smtpHost string
	smtpPort int
	username string
	password string
	from     string
	timeout  time.Duration
}

// NewClient creates a new email Client instance. A non-zero timeout caps
// every SMTP exchange so a hung server cannot block a request forever.
func NewClient(smtpHost string, smtpPort int, username, password, from string, timeout time.Duration) *Client {
	return &Client{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		from:     from,
		timeout:  timeout,
	}
}

func (c *Client) dialer() *mail.Dialer {
	d := mail.NewDialer(c.smtpHost, c.smtpPort, c.username, c.password)
	if c.timeout > 0 {
		d.Timeout = c.timeout
	}

	return d
}

// Verify dials and authenticates against the SMTP server without
// sending anything.
func (c *Client) Verify() error {
	closer, err := c.dialer().Dial()
	if err != nil {
		return err
	}

	return closer.Close()
}

// Send delivers one message with a plain text body and, when html is
// non-empty, an HTML alternative.
func (c *Client) Send(to, subject, text, html string) error {
	message := mail.NewMessage()

	message.SetHeader("From", c.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)

	message.SetBody("text/plain", text)
	if html != "" {
		message.AddAlternative("text/html", html)
	}

	return c.dialer().DialAndSend(message)
}
