// Package device names the calling browser and OS from the User-Agent header.
package device

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"onsightnow/pkg/requestcontext"
)

// Device stores a display name for the client in the request context. It
// must run after the metadata middleware.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if ua := requestcontext.UserAgent(ctx); ua != "" {
			ctx = requestcontext.WithClientName(ctx, DisplayName(ua))
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DisplayName renders a User-Agent as "Browser on OS", e.g. "Edge on Windows 10".
func DisplayName(userAgent string) string {
	if userAgent == "" {
		return "Unknown Device"
	}
	ua := useragent.New(userAgent)
	if ua.Bot() {
		name, _ := ua.Browser()
		if name == "" {
			return "Bot"
		}
		return name
	}

	browser, _ := ua.Browser()
	browser = strings.TrimSpace(browser)
	if browser == "" {
		browser = "Unknown Browser"
	}
	os := ua.OSInfo().Name
	if os == "" {
		os = ua.OS()
	}
	if os == "" {
		return browser
	}
	return browser + " on " + os
}
