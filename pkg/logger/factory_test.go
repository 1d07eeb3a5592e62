package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/pkg/logger"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json by default", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello")

		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Empty(t, buf.String())
	})

	t.Run("level by name", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevelName("debug"))
		log.Debug("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("unknown level name is ignored", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevelName("loud"))
		log.Debug("dropped")
		log.Info("kept")
		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("static attributes", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "relay")))
		log.Info("hello")
		assert.Equal(t, "relay", decode(t, buf)["svc"])
	})

	t.Run("context extractors", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				v, ok := ctx.Value(ctxKey{}).(string)
				return logger.RequestID(v), ok
			}),
		)
		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.With(logger.Component("test")).InfoContext(ctx, "hello")

		entry := decode(t, buf)
		assert.Equal(t, "req-1", entry["request_id"])
		assert.Equal(t, "test", entry["component"])
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env     string
		wantEnv string
		json    bool
	}{
		{env: "production", wantEnv: logger.EnvProduction, json: true},
		{env: "prod", wantEnv: logger.EnvProduction, json: true},
		{env: "staging", wantEnv: logger.EnvStaging, json: true},
		{env: "", wantEnv: logger.EnvDevelopment, json: false},
		{env: "local", wantEnv: logger.EnvDevelopment, json: false},
	}

	for _, tt := range tests {
		t.Run(tt.wantEnv+"/"+tt.env, func(t *testing.T) {
			t.Parallel()
			buf := &bytes.Buffer{}
			log := logger.New(logger.WithOutput(buf), logger.WithEnvironment(tt.env, "formrelay"))
			log.Info("hello")

			if tt.json {
				entry := decode(t, buf)
				assert.Equal(t, tt.wantEnv, entry["env"])
				assert.Equal(t, "formrelay", entry["service"])
				return
			}
			assert.Contains(t, buf.String(), "env="+tt.wantEnv)
			assert.Contains(t, buf.String(), "service=formrelay")
		})
	}
}

func TestWithFormatPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	log := logger.Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
	assert.NotPanics(t, func() { log.Error("nothing", logger.Error(assert.AnError)) })
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.Equal(t, "error", logger.Error(assert.AnError).Key)
	assert.True(t, logger.SubmissionID("").Equal(slog.Attr{}))
	assert.Equal(t, "submission_id", logger.SubmissionID("abc").Key)
	assert.True(t, logger.JobID(nil).Equal(slog.Attr{}))
	assert.Equal(t, "Contact Form", logger.Form("Contact Form").Value.String())
	assert.Equal(t, "sales@example.com", logger.Recipient("sales@example.com").Value.String())
}
