package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Form records the submitted form name.
func Form(name string) slog.Attr {
	return slog.String("form", name)
}

// Recipient records the destination mailbox of a notification.
func Recipient(addr string) slog.Attr {
	return slog.String("recipient", addr)
}

// JobID records the dispatch job identifier.
func JobID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("job_id", id)
}

// SubmissionID records the platform-assigned submission identifier.
// Empty ids produce an empty Attr.
func SubmissionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("submission_id", id)
}

// RequestID records the request identifier. Empty ids produce an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Status(s string) slog.Attr {
	return slog.String("status", s)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
