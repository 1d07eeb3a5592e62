package mailer

import (
	"net"
	"strconv"
	"time"
)

// Config holds outbound mail settings.
// Username and Password are optional: without them SMTP sends are skipped
// instead of failing, so the service can run in environments where mail is
// not configured yet.
type Config struct {
	Host               string        `env:"SMTP_SERVER" envDefault:"smtp.gmail.com"`
	Port               int           `env:"SMTP_PORT" envDefault:"587"`
	Username           string        `env:"SMTP_USER"`
	Password           string        `env:"SMTP_PASSWORD"`
	From               string        `env:"SMTP_FROM"`
	StartTLS           bool          `env:"SMTP_STARTTLS" envDefault:"true"`
	InsecureSkipVerify bool          `env:"SMTP_TLS_INSECURE" envDefault:"false"`
	Timeout            time.Duration `env:"SMTP_TIMEOUT" envDefault:"30s"`
	DevDir             string        `env:"MAIL_DEV_DIR"`
}

// HasCredentials reports whether both SMTP_USER and SMTP_PASSWORD are set.
func (c Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// Sender returns the From address: SMTP_FROM when set, the SMTP user otherwise.
func (c Config) Sender() string {
	if c.From != "" {
		return c.From
	}
	if c.Username != "" {
		return c.Username
	}
	return "formrelay@localhost"
}

// Addr returns host:port of the mail server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
