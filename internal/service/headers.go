package service

import "net/http"

// framingHeaders describe the origin's transport framing. They stop being
// true once the proxy re-serves a possibly resized body.
var framingHeaders = map[string]bool{
	"Content-Encoding":  true,
	"Content-Length":    true,
	"Transfer-Encoding": true,
	"Connection":        true,
}

// FilterHeaders returns a copy of src without transport-framing headers.
// Keys are compared case-insensitively; everything else passes through.
func FilterHeaders(src http.Header) http.Header {
	dst := make(http.Header, len(src))
	for key, vals := range src {
		if framingHeaders[http.CanonicalHeaderKey(key)] {
			continue
		}
		dst[key] = append([]string(nil), vals...)
	}
	return dst
}
