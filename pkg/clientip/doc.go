// Package clientip resolves the address of the HTTP client, optionally
// trusting proxy headers such as X-Forwarded-For, and carries it in the
// request context for rate limiting and logging.
package clientip
