package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/dmitrymomot/formrelay/pkg/logger"
)

// SMTPSender delivers messages through an SMTP submission server:
// connect, STARTTLS, AUTH PLAIN, MAIL/RCPT/DATA, QUIT. One connection per message.
type SMTPSender struct {
	cfg       Config
	tlsConfig *tls.Config
	localName string
	logger    *slog.Logger
}

// SMTPOption configures an SMTPSender.
type SMTPOption func(*SMTPSender)

// WithTLSConfig overrides the TLS configuration used for STARTTLS.
func WithTLSConfig(c *tls.Config) SMTPOption {
	return func(s *SMTPSender) {
		if c != nil {
			s.tlsConfig = c
		}
	}
}

// WithLocalName sets the host name announced in EHLO. Defaults to "localhost".
func WithLocalName(name string) SMTPOption {
	return func(s *SMTPSender) { s.localName = name }
}

func WithSMTPLogger(l *slog.Logger) SMTPOption {
	return func(s *SMTPSender) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewSMTPSender(cfg Config, opts ...SMTPOption) *SMTPSender {
	s := &SMTPSender{
		cfg: cfg,
		tlsConfig: &tls.Config{
			ServerName:         cfg.Host,
			InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // opt-in for test relays
			MinVersion:         tls.VersionTLS12,
		},
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send implements Sender. Missing credentials short-circuit with
// ErrMissingCredentials before any network activity.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if !s.cfg.HasCredentials() {
		return ErrMissingCredentials
	}
	from, to, err := msg.envelope()
	if err != nil {
		return err
	}
	raw, err := msg.Bytes()
	if err != nil {
		return errors.Join(ErrInvalidMessage, err)
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	log := s.logger.With(logger.Recipient(to))
	log.DebugContext(ctx, "connecting to smtp server", slog.String("addr", s.cfg.Addr()))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", s.cfg.Addr())
	if err != nil {
		return errors.Join(ErrConnect, err)
	}
	// The client has no context support; closing the socket unblocks it.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return errors.Join(ErrConnect, ctxErr(ctx, err))
	}
	defer c.Close()

	if s.cfg.Timeout > 0 {
		c.CommandTimeout = s.cfg.Timeout
		c.SubmissionTimeout = s.cfg.Timeout
	}
	if s.localName != "" {
		if err := c.Hello(s.localName); err != nil {
			return errors.Join(ErrConnect, ctxErr(ctx, err))
		}
	}

	if s.cfg.StartTLS {
		if ok, _ := c.Extension("STARTTLS"); !ok {
			return fmt.Errorf("%w: server %s does not advertise STARTTLS", ErrStartTLS, s.cfg.Addr())
		}
		if err := c.StartTLS(s.tlsConfig); err != nil {
			return errors.Join(ErrStartTLS, ctxErr(ctx, err))
		}
	}

	log.DebugContext(ctx, "authenticating", slog.String("user", s.cfg.Username))
	if err := c.Auth(sasl.NewPlainClient("", s.cfg.Username, s.cfg.Password)); err != nil {
		return errors.Join(ErrAuth, ctxErr(ctx, err))
	}

	if err := c.Mail(from, nil); err != nil {
		return errors.Join(ErrSend, ctxErr(ctx, err))
	}
	if err := c.Rcpt(to); err != nil {
		return errors.Join(ErrSend, ctxErr(ctx, err))
	}
	w, err := c.Data()
	if err != nil {
		return errors.Join(ErrSend, ctxErr(ctx, err))
	}
	if _, err := w.Write(raw); err != nil {
		_ = w.Close()
		return errors.Join(ErrSend, ctxErr(ctx, err))
	}
	if err := w.Close(); err != nil {
		return errors.Join(ErrSend, ctxErr(ctx, err))
	}

	// The message is accepted at this point; a failed QUIT changes nothing.
	if err := c.Quit(); err != nil {
		log.DebugContext(ctx, "smtp quit failed", logger.Error(err))
	}
	return nil
}

// ctxErr prefers the context error when the context ended, since a closed
// socket otherwise surfaces as an opaque "use of closed network connection".
func ctxErr(ctx context.Context, err error) error {
	if cerr := ctx.Err(); cerr != nil {
		return errors.Join(cerr, err)
	}
	return err
}
