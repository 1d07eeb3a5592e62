package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender implements Sender for local development.
// Messages are written to dir as .eml files next to a JSON metadata file
// instead of being sent.
type DevSender struct {
	dir string
}

// NewDevSender creates a development sender. The directory is created on first send.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

type devMetadata struct {
	Timestamp string `json:"timestamp"`
	From      string `json:"from"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	File      string `json:"file"`
}

// Send writes the rendered message and its metadata to disk.
func (d *DevSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create directory: %v", ErrSend, err)
	}

	raw, err := msg.Bytes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	now := time.Now()
	base := fmt.Sprintf("%s_%s", now.Format("2006_01_02_150405.000000"), sanitizeFilename(msg.Subject))

	emlPath := filepath.Join(d.dir, base+".eml")
	if err := os.WriteFile(emlPath, raw, 0o644); err != nil {
		return fmt.Errorf("%w: write message: %v", ErrSend, err)
	}

	meta, err := json.MarshalIndent(devMetadata{
		Timestamp: now.Format(time.RFC3339),
		From:      msg.From,
		To:        msg.To,
		Subject:   msg.Subject,
		File:      filepath.Base(emlPath),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal metadata: %v", ErrSend, err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, base+".json"), meta, 0o644); err != nil {
		return fmt.Errorf("%w: write metadata: %v", ErrSend, err)
	}
	return nil
}

var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename turns a subject into a short, filesystem-safe name.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 80
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
