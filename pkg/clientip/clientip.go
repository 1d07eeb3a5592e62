package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders lists forwarding headers in priority order.
var DefaultHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// Resolver extracts the client address from a request.
// Forwarding headers are honored only when the service runs behind a proxy
// that sets them; otherwise clients could spoof their address.
type Resolver struct {
	headers []string
}

// New returns a resolver that trusts the given headers, in order.
// With no headers only RemoteAddr is used.
func New(headers ...string) *Resolver {
	return &Resolver{headers: headers}
}

// IP returns the normalized client IP, or "" when none can be parsed.
// For X-Forwarded-For the first valid entry wins.
func (res *Resolver) IP(r *http.Request) string {
	for _, h := range res.headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for part := range strings.SplitSeq(v, ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	// Strip the zone so "fe80::1%eth0" and "fe80::1" share a key.
	return addr.Unmap().WithZone("").String()
}
