package middleware

import (
	"github.com/labstack/echo/v4"
)

// defaultSecurityHeaders are set on responses the proxy authors itself.
var defaultSecurityHeaders = map[string]string{
	"X-Content-Type-Options": "nosniff",
	// The control panel embeds proxied pages in an iframe on the same host.
	"X-Frame-Options": "SAMEORIGIN",
	"Referrer-Policy": "same-origin",
}

// SecurityHeaders returns an Echo middleware that adds default security
// headers to responses. It is attached per route, never to /proxy: proxied
// responses carry the filtered origin headers and nothing else.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Response().Header()
			for k, v := range defaultSecurityHeaders {
				header.Set(k, v)
			}
			return next(c)
		}
	}
}
