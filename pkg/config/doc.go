// Package config loads configuration structs from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for tag-driven parsing and
// github.com/joho/godotenv for optional .env files. Every package that needs
// settings owns a Config struct with `env` tags; the binary loads each one with
// Load or MustLoad at startup.
//
//	var smtp mailer.Config
//	config.MustLoad(&smtp)
//
// Parsing failures, including missing `required` variables, are reported as
// ErrParsingConfig joined with the underlying error.
package config
