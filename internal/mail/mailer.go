package mail

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"weighttrack/internal/model"
)

// ComposeError reports a malformed message before any network activity.
type ComposeError struct{ Reason string }

func (e *ComposeError) Error() string { return "compose mail: " + e.Reason }

// DeliveryError reports a failure talking to the SMTP relay.
type DeliveryError struct{ Err error }

func (e *DeliveryError) Error() string { return "deliver mail: " + e.Err.Error() }
func (e *DeliveryError) Unwrap() error { return e.Err }

// Mailer sends transactional mail through a configured SMTP relay.
type Mailer interface {
	SendWelcome(user *model.User) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	log    *logrus.Logger
}

// NewSMTPMailer builds a mailer against the given relay.
func NewSMTPMailer(host string, port int, username, password, from string, log *logrus.Logger) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		log:    log,
	}
}

const welcomeBody = `Hi %s,

Welcome to Weighttrack. To get the most of this site, make sure you are
logging your weight on a regular basis. Features are added regularly and
feedback is always welcome.

Sincerely,
The Weighttrack Team
`

// SendWelcome delivers the registration greeting. Failures are classified so
// the caller can log them precisely; registration never depends on the result.
func (m *smtpMailer) SendWelcome(user *model.User) error {
	if user.Email == "" {
		return &ComposeError{Reason: "recipient has no email address"}
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", "Welcome To Weighttrack")
	msg.SetBody("text/plain", fmt.Sprintf(welcomeBody, user.FullName()))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return &DeliveryError{Err: err}
	}

	m.log.WithField("to", user.Email).Info("welcome email sent")
	return nil
}
