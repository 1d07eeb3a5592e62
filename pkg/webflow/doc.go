// Package webflow decodes form-submission webhooks sent by the Webflow site
// builder and verifies their signatures.
//
// Parse accepts the raw request body and returns a Submission whose Data keeps
// the field order of the JSON document, so notifications list fields the way
// the visitor filled them in.
//
// Signature verification follows the platform's scheme: the
// X-Webflow-Timestamp header carries unix milliseconds and
// X-Webflow-Signature the hex HMAC-SHA256 of "<timestamp>:<body>" keyed with
// the site's webhook secret.
package webflow
