package dispatch_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/pkg/dispatch"
	"github.com/dmitrymomot/formrelay/pkg/logger"
	"github.com/dmitrymomot/formrelay/pkg/mailer"
	"github.com/dmitrymomot/formrelay/pkg/metrics"
	"github.com/dmitrymomot/formrelay/pkg/webflow"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode     string
		wantPool bool
		wantErr  error
	}{
		{mode: "async", wantPool: true},
		{mode: "", wantPool: true},
		{mode: "SYNC"},
		{mode: "later", wantErr: dispatch.ErrInvalidMode},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("mode=%q", tt.mode), func(t *testing.T) {
			t.Parallel()

			d, pool, err := dispatch.New(dispatch.Config{Mode: tt.mode, Workers: 2, QueueSize: 5}, &recorder{})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, d)
			assert.Equal(t, tt.wantPool, pool != nil)
		})
	}
}

func TestSync_Dispatch(t *testing.T) {
	t.Parallel()

	var seen []mailer.Result
	rec := &recorder{}
	s, err := dispatch.NewSync(rec, dispatch.WithResultHandlers(
		func(_ context.Context, _ dispatch.Job, res mailer.Result) { seen = append(seen, res) },
	))
	require.NoError(t, err)

	var fields webflow.Fields
	require.NoError(t, fields.UnmarshalJSON([]byte(`{"email":"a@b.com"}`)))

	// A cancelled request context must not abort the delivery.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Dispatch(ctx, dispatch.NewJob("Contact Form", "sales@example.com", fields, "req-1"))
	require.NoError(t, err)
	assert.Equal(t, mailer.StatusSent, res.Status)

	got := rec.notifications()
	require.Len(t, got, 1)
	assert.Equal(t, "sales@example.com", got[0].Recipient)
	assert.Equal(t, "Contact Form", got[0].FormName)
	v, ok := got[0].Fields.Get("email")
	assert.True(t, ok)
	assert.Equal(t, "a@b.com", v)
	assert.Len(t, seen, 1)
}

func TestSync_RecoversPanic(t *testing.T) {
	t.Parallel()

	s, err := dispatch.NewSync(dispatch.DelivererFunc(func(context.Context, mailer.Notification) mailer.Result {
		panic(errors.New("kaboom"))
	}))
	require.NoError(t, err)

	res, err := s.Dispatch(context.Background(), dispatch.NewJob("A", "a@example.com", nil, ""))
	require.NoError(t, err)
	assert.Equal(t, mailer.StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, dispatch.ErrDeliveryPanic)
}

func TestLogHandler(t *testing.T) {
	t.Parallel()

	var (
		mu  sync.Mutex
		buf bytes.Buffer
	)
	log := logger.New(logger.WithOutput(&lockedWriter{mu: &mu, w: &buf}), logger.WithLevel(slog.LevelDebug))
	h := dispatch.LogHandler(log)
	job := dispatch.NewJob("Contact Form", "sales@example.com", nil, "req-9")

	h(context.Background(), job, mailer.Result{Status: mailer.StatusSent, Duration: time.Millisecond})
	h(context.Background(), job, mailer.Result{Status: mailer.StatusSkipped, Err: mailer.ErrMissingCredentials})
	h(context.Background(), job, mailer.Result{Status: mailer.StatusFailed, Err: errors.Join(mailer.ErrAuth, errors.New("535"))})

	mu.Lock()
	out := buf.String()
	mu.Unlock()

	assert.Contains(t, out, `"msg":"email sent"`)
	assert.Contains(t, out, `"msg":"email skipped"`)
	assert.Contains(t, out, `"reason":"missing_credentials"`)
	assert.Contains(t, out, `"msg":"email delivery failed"`)
	assert.Contains(t, out, `"reason":"auth"`)
	assert.Contains(t, out, `"request_id":"req-9"`)
	assert.Contains(t, out, `"form":"Contact Form"`)
}

func TestMetricsHandler(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	h := dispatch.MetricsHandler(m)
	h(context.Background(), dispatch.Job{}, mailer.Result{Status: mailer.StatusSent, Duration: time.Second})

	mfs, err := m.Registry().Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range mfs {
		if mf.GetName() == "formrelay_emails_total" {
			found = true
			require.Len(t, mf.GetMetric(), 1)
			assert.InDelta(t, 1.0, mf.GetMetric()[0].GetCounter().GetValue(), 0)
		}
	}
	assert.True(t, found)
}

func TestJob_Notification(t *testing.T) {
	t.Parallel()

	job := dispatch.NewJob("Support Ticket", "support@example.com", nil, "")
	assert.NotEqual(t, [16]byte{}, [16]byte(job.ID))
	assert.False(t, job.EnqueuedAt.IsZero())

	n := job.Notification()
	assert.Equal(t, "Support Ticket", n.FormName)
	assert.Equal(t, "support@example.com", n.Recipient)
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
