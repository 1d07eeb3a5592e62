package mailer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	gomail "github.com/emersion/go-message/mail"

	"github.com/dmitrymomot/formrelay/pkg/webflow"
)

const (
	subjectFormat = "Nuevo envío de formulario: %s"
	introFormat   = "Se ha recibido un nuevo envío del formulario '%s'.\n\nDatos:\n"
)

// Message is a plain-text notification ready to be transmitted.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
	Date    time.Time
}

// Compose builds the notification for a form submission. The body lists one
// "- key: value" line per field in submission order.
func Compose(from, to, formName string, fields webflow.Fields) Message {
	var b strings.Builder
	fmt.Fprintf(&b, introFormat, formName)
	for _, f := range fields {
		fmt.Fprintf(&b, "- %s: %s\n", f.Key, f.Text())
	}

	return Message{
		From:    from,
		To:      to,
		Subject: fmt.Sprintf(subjectFormat, formName),
		Body:    b.String(),
		Date:    time.Now(),
	}
}

// Validate checks that both addresses parse and a subject is present.
func (m Message) Validate() error {
	if _, err := gomail.ParseAddress(m.From); err != nil {
		return fmt.Errorf("%w: From %q: %v", ErrInvalidMessage, m.From, err)
	}
	if _, err := gomail.ParseAddress(m.To); err != nil {
		return fmt.Errorf("%w: To %q: %v", ErrInvalidMessage, m.To, err)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidMessage)
	}
	return nil
}

// envelope returns the bare sender and recipient addresses for MAIL FROM / RCPT TO.
func (m Message) envelope() (from, to string, err error) {
	f, err := gomail.ParseAddress(m.From)
	if err != nil {
		return "", "", fmt.Errorf("%w: From %q: %v", ErrInvalidMessage, m.From, err)
	}
	t, err := gomail.ParseAddress(m.To)
	if err != nil {
		return "", "", fmt.Errorf("%w: To %q: %v", ErrInvalidMessage, m.To, err)
	}
	return f.Address, t.Address, nil
}

// WriteTo renders the message as RFC 5322 text/plain UTF-8 with
// quoted-printable body encoding.
func (m Message) WriteTo(w io.Writer) (int64, error) {
	from, err := gomail.ParseAddress(m.From)
	if err != nil {
		return 0, fmt.Errorf("%w: From %q: %v", ErrInvalidMessage, m.From, err)
	}
	to, err := gomail.ParseAddress(m.To)
	if err != nil {
		return 0, fmt.Errorf("%w: To %q: %v", ErrInvalidMessage, m.To, err)
	}

	date := m.Date
	if date.IsZero() {
		date = time.Now()
	}

	var h gomail.Header
	h.SetDate(date)
	h.SetAddressList("From", []*gomail.Address{from})
	h.SetAddressList("To", []*gomail.Address{to})
	h.SetSubject(m.Subject)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	if err := h.GenerateMessageID(); err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	body, err := gomail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return 0, err
	}
	if _, err := io.WriteString(body, m.Body); err != nil {
		return 0, err
	}
	if err := body.Close(); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// Bytes returns the rendered message.
func (m Message) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
