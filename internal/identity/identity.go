// Package identity derives a stable sender identity from inbound request headers.
package identity

import (
	"net/http"
	"regexp"
)

// XFCC format: URI=spiffe://domain/sa/agent-name;...
var spiffePattern = regexp.MustCompile(`URI=spiffe://[^/]+/sa/([^;,\s]+)`)

// Resolve derives the sender identity used to pin the proxied call to a
// per-sender gateway session.
//
// Priority:
//  1. SPIFFE ID from x-forwarded-client-cert (envoy mTLS)
//  2. Explicit x-openclaw-user header from the caller
//  3. "" (the gateway will create an ephemeral session)
func Resolve(headers http.Header) string {
	if xfcc := headers.Get("x-forwarded-client-cert"); xfcc != "" {
		if m := spiffePattern.FindStringSubmatch(xfcc); m != nil {
			return "a2a:" + m[1]
		}
	}
	return headers.Get("x-openclaw-user")
}
