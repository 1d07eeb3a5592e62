// Package forms holds the static form-name → recipient mapping.
//
// The mapping is loaded once at startup, either from the compiled-in Default
// or from a YAML file via LoadFile, and is injected into the webhook receiver.
// Lookups are exact and case-sensitive.
package forms
