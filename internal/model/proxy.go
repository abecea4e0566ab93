// Package model defines shared types for the proxy.
package model

import (
	"context"
	"net/http"
	"net/url"
)

// ProxyRequest is a validated request to fetch a target through the proxy.
// TargetURL is always absolute.
type ProxyRequest struct {
	Ctx       context.Context
	TargetURL *url.URL
}

// OriginResponse is a fully buffered response from the origin server.
type OriginResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ProxyResponse is what the proxy sends back for a ProxyRequest.
type ProxyResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// Rewritten is true when Body is the output of the rewrite engine.
	Rewritten bool
}

// ContentType returns the origin Content-Type header, or "" when absent.
func (r *OriginResponse) ContentType() string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get("Content-Type")
}
