package mailer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/pkg/mailer"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func TestCompose(t *testing.T) {
	t.Parallel()

	msg := mailer.Compose("from@example.com", "to@example.com", "Contact Form", testFields(t))

	assert.Equal(t, "Nuevo envío de formulario: Contact Form", msg.Subject)
	assert.Equal(t,
		"Se ha recibido un nuevo envío del formulario 'Contact Form'.\n\nDatos:\n"+
			"- name: Ana\n- email: a@b.com\n- msg: Hola\n",
		msg.Body)
	assert.False(t, msg.Date.IsZero())
	require.NoError(t, msg.Validate())
}

func TestCompose_NoFields(t *testing.T) {
	t.Parallel()

	msg := mailer.Compose("from@example.com", "to@example.com", "Newsletter Signup", nil)
	assert.Equal(t, "Se ha recibido un nuevo envío del formulario 'Newsletter Signup'.\n\nDatos:\n", msg.Body)
}

func TestMessage_Bytes(t *testing.T) {
	t.Parallel()

	msg := mailer.Compose("Relay <from@example.com>", "to@example.com", "Contact Form", testFields(t))
	raw, err := msg.Bytes()
	require.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, "Content-Type: text/plain; charset=utf-8")
	assert.Contains(t, s, "Message-Id: <")
	assert.Contains(t, s, "To: <to@example.com>")
}

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  mailer.Message
	}{
		{"bad from", mailer.Message{From: "nope", To: "to@example.com", Subject: "s"}},
		{"bad to", mailer.Message{From: "from@example.com", To: "", Subject: "s"}},
		{"no subject", mailer.Message{From: "from@example.com", To: "to@example.com", Subject: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tt.msg.Validate(), mailer.ErrInvalidMessage)
		})
	}
}

func TestMailer_Deliver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sendErr    error
		wantStatus mailer.Status
		wantReason string
	}{
		{"sent", nil, mailer.StatusSent, ""},
		{"skipped", mailer.ErrMissingCredentials, mailer.StatusSkipped, "missing_credentials"},
		{"auth", errors.Join(mailer.ErrAuth, errors.New("535")), mailer.StatusFailed, "auth"},
		{"connect", errors.Join(mailer.ErrConnect, errors.New("refused")), mailer.StatusFailed, "connect"},
		{"starttls", mailer.ErrStartTLS, mailer.StatusFailed, "starttls"},
		{"send", mailer.ErrSend, mailer.StatusFailed, "send"},
		{"unknown", errors.New("boom"), mailer.StatusFailed, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := &mockSender{}
			s.On("Send", mock.Anything, mock.MatchedBy(func(m mailer.Message) bool {
				return m.To == "dest@example.com" &&
					m.From == "relay@example.com" &&
					m.Subject == "Nuevo envío de formulario: Support Ticket"
			})).Return(tt.sendErr).Once()

			res := mailer.New(s, "relay@example.com").Deliver(context.Background(), mailer.Notification{
				Recipient: "dest@example.com",
				FormName:  "Support Ticket",
			})

			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantReason, res.Reason())
			if tt.sendErr != nil {
				assert.ErrorIs(t, res.Err, tt.sendErr)
			} else {
				assert.NoError(t, res.Err)
			}
			s.AssertExpectations(t)
		})
	}
}

func TestSenderFunc(t *testing.T) {
	t.Parallel()

	var got mailer.Message
	s := mailer.SenderFunc(func(_ context.Context, m mailer.Message) error {
		got = m
		return nil
	})
	res := mailer.New(s, "relay@example.com").Deliver(context.Background(), mailer.Notification{
		Recipient: "dest@example.com",
		FormName:  "Contact Form",
	})
	assert.True(t, res.Status == mailer.StatusSent)
	assert.Equal(t, "dest@example.com", got.To)
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "mail")
	s := mailer.NewDevSender(dir)

	msg := mailer.Compose("relay@example.com", "dest@example.com", "Contact Form", testFields(t))
	require.NoError(t, s.Send(context.Background(), msg))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var eml, meta string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".eml":
			eml = e.Name()
		case ".json":
			meta = e.Name()
		}
	}
	require.NotEmpty(t, eml)
	require.NotEmpty(t, meta)
	assert.Equal(t, strings.TrimSuffix(eml, ".eml"), strings.TrimSuffix(meta, ".json"))

	metaData, err := os.ReadFile(filepath.Join(dir, meta))
	require.NoError(t, err)
	assert.Contains(t, string(metaData), `"to": "dest@example.com"`)
}

func TestDevSender_InvalidMessage(t *testing.T) {
	t.Parallel()

	s := mailer.NewDevSender(t.TempDir())
	err := s.Send(context.Background(), mailer.Message{From: "relay@example.com", To: "bad"})
	assert.ErrorIs(t, err, mailer.ErrInvalidMessage)
}

func TestConfig(t *testing.T) {
	t.Parallel()

	c := mailer.Config{Host: "smtp.gmail.com", Port: 587}
	assert.False(t, c.HasCredentials())
	assert.Equal(t, "smtp.gmail.com:587", c.Addr())
	assert.Equal(t, "formrelay@localhost", c.Sender())

	c.Username = "user@gmail.com"
	assert.Equal(t, "user@gmail.com", c.Sender())
	c.From = "Forms <forms@example.com>"
	assert.Equal(t, "Forms <forms@example.com>", c.Sender())

	c.Password = "x"
	assert.True(t, c.HasCredentials())
}
