// Package proxyurl resolves document references and converts absolute URLs to
// and from the proxy's self-addressed form, /proxy?url=<escaped absolute URL>.
package proxyurl

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// Path is the route every proxy-internal URL points at.
	Path = "/proxy"
	// Param is the query parameter carrying the target URL.
	Param = "url"
)

var (
	// ErrMissingTarget means the query carries no target URL.
	ErrMissingTarget = errors.New("missing target URL")
	// ErrInvalidTarget means the target is not a parseable absolute URL.
	ErrInvalidTarget = errors.New("invalid target URL")
	// ErrUnresolvableReference means a document reference cannot be turned
	// into an absolute URL.
	ErrUnresolvableReference = errors.New("unresolvable reference")
)

// asciiSpace is what the HTML standard strips around URL attribute values.
const asciiSpace = "\t\n\f\r "

// Resolve resolves ref against base using RFC 3986 reference resolution.
// Scheme-relative, path-relative, query-only and fragment-only references
// all resolve against base.
func Resolve(base *url.URL, ref string) (*url.URL, error) {
	r, err := url.Parse(strings.Trim(ref, asciiSpace))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnresolvableReference, err)
	}
	abs := base.ResolveReference(r)
	if !abs.IsAbs() {
		return nil, fmt.Errorf("%w: %q has no scheme after resolution", ErrUnresolvableReference, ref)
	}
	return abs, nil
}

// Encode returns the proxy-internal URL addressing target.
func Encode(target *url.URL) string {
	return Path + "?" + Param + "=" + url.QueryEscape(target.String())
}

// Decode extracts and validates the target URL from a proxy request's raw
// query string. It is the left inverse of Encode: Decode of the query part
// of Encode(u) yields a URL whose String() equals u.String().
func Decode(rawQuery string) (*url.URL, error) {
	q, err := url.ParseQuery(rawQuery)
	if err != nil && !q.Has(Param) {
		// ParseQuery drops pairs it cannot unescape, including ours.
		return nil, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}
	return ParseTarget(q.Get(Param))
}

// ParseTarget validates an already-unescaped target value.
func ParseTarget(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, ErrMissingTarget
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrInvalidTarget, raw)
	}
	return u, nil
}
