package forms

import (
	"fmt"
	"maps"
	"net/mail"
	"slices"
	"strings"
)

// Registry maps a form name, exactly as the builder platform reports it, to
// the mailbox that receives its submissions.
//
// A Registry is immutable once built and safe for concurrent lookups.
type Registry struct {
	entries map[string]string
}

// New validates the given mapping and returns a Registry holding a private
// copy of it. Names are matched exactly: no trimming, no case folding.
func New(entries map[string]string) (*Registry, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	for name, recipient := range entries {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: form name is empty", ErrInvalidEntry)
		}
		if _, err := mail.ParseAddress(recipient); err != nil {
			return nil, fmt.Errorf("%w: form %q: recipient %q: %v", ErrInvalidEntry, name, recipient, err)
		}
	}
	return &Registry{entries: maps.Clone(entries)}, nil
}

// MustNew is like New but panics on an invalid mapping.
func MustNew(entries map[string]string) *Registry {
	r, err := New(entries)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the compiled-in mapping used when no mapping file is configured.
func Default() *Registry {
	return MustNew(map[string]string{
		"Contact Form":      "jordan.svz1@gmail.com",
		"Support Ticket":    "esveidi.esveidi@gmail.com",
		"Newsletter Signup": "jordy.queno@gmail.com",
	})
}

// Lookup returns the recipient configured for the form name.
func (r *Registry) Lookup(name string) (string, bool) {
	recipient, ok := r.entries[name]
	return recipient, ok
}

// Len returns the number of configured forms.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Names returns the configured form names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.entries))
}
