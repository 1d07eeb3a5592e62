package main

import (
	"time"

	"github.com/dmitrymomot/formrelay/pkg/dispatch"
	"github.com/dmitrymomot/formrelay/pkg/httpserver"
	"github.com/dmitrymomot/formrelay/pkg/mailer"
	"github.com/dmitrymomot/formrelay/pkg/ratelimiter"
	"github.com/dmitrymomot/formrelay/pkg/receiver"
	"github.com/dmitrymomot/formrelay/pkg/redis"
)

type appConfig struct {
	Env       string        `env:"APP_ENV" envDefault:"development"`
	LogLevel  string        `env:"LOG_LEVEL"`
	FormsFile string        `env:"FORMS_FILE"`
	DedupeTTL time.Duration `env:"DEDUPE_TTL" envDefault:"0"`

	HTTP      httpserver.Config
	Mail      mailer.Config
	Dispatch  dispatch.Config
	Receiver  receiver.Config
	RateLimit ratelimiter.Config
	Redis     redis.Config
}
