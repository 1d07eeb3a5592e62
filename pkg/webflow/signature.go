package webflow

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	HeaderSignature = "X-Webflow-Signature"
	HeaderTimestamp = "X-Webflow-Timestamp"
)

// Sign computes the request signature: hex(HMAC-SHA256(secret, timestamp + ":" + body)),
// with the timestamp expressed in unix milliseconds.
func Sign(secret string, timestamp int64, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(strconv.FormatInt(timestamp, 10)))
	h.Write([]byte(":"))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// Verifier checks webhook signatures for a single site secret.
type Verifier struct {
	secret string
	maxAge time.Duration
	now    func() time.Time
}

// NewVerifier returns a Verifier. A zero maxAge disables the replay window check.
func NewVerifier(secret string, maxAge time.Duration) *Verifier {
	return &Verifier{secret: secret, maxAge: maxAge, now: time.Now}
}

// Verify validates the signature headers against the raw request body.
func (v *Verifier) Verify(header http.Header, body []byte) error {
	sig := header.Get(HeaderSignature)
	tsRaw := header.Get(HeaderTimestamp)
	if sig == "" || tsRaw == "" {
		return fmt.Errorf("%w: signature headers missing", ErrInvalidSignature)
	}
	ts, err := strconv.ParseInt(tsRaw, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: malformed timestamp %q", ErrInvalidSignature, tsRaw)
	}

	if v.maxAge > 0 {
		age := v.now().Sub(time.UnixMilli(ts))
		if age > v.maxAge {
			return fmt.Errorf("%w: timestamp too old: %v", ErrInvalidSignature, age)
		}
		if age < -time.Minute {
			return fmt.Errorf("%w: timestamp is in the future", ErrInvalidSignature)
		}
	}

	expected := Sign(v.secret, ts, body)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return fmt.Errorf("%w: signature mismatch", ErrInvalidSignature)
	}
	return nil
}
