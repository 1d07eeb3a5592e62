// Package receiver is the HTTP face of the relay.
//
// POST /webhook accepts a Webflow form-submission payload, looks up the
// recipient configured for the form and hands a dispatch.Job to the
// dispatcher. The outcome is always a small JSON document:
//
//	{"status":"success","message":"Email processing started"}
//	{"status":"ignored","reason":"Form not configured"}
//	{"status":"error","message":"Dispatch queue is full"}
//
// Submissions the relay does not care about (invalid JSON, no form name,
// unknown form, duplicates) are acknowledged with 200 so the platform stops
// retrying them. Only conditions worth a retry produce 5xx; bad signatures
// produce 401 and throttled clients 429.
//
// NewRouter wires the handlers with chi, request ids, client IP resolution,
// panic recovery, optional per-IP rate limiting, readiness checks and the
// Prometheus endpoint.
package receiver
