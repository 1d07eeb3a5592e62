package mailer

import "errors"

var (
	// ErrMissingCredentials means SMTP_USER or SMTP_PASSWORD is not configured.
	// Nothing is sent and no connection is opened.
	ErrMissingCredentials = errors.New("mailer: smtp credentials not configured")

	ErrInvalidMessage = errors.New("mailer: invalid message")

	// Transport stages. Every SMTP failure wraps exactly one of them.
	ErrConnect  = errors.New("mailer: connect failed")
	ErrStartTLS = errors.New("mailer: starttls failed")
	ErrAuth     = errors.New("mailer: authentication failed")
	ErrSend     = errors.New("mailer: send failed")
)
