// Package auth handles Teneo access-token credentials: connect URL
// construction, request headers, and log-safe token redaction.
package auth

import (
	"fmt"
	"net/http"
	"net/url"
)

// Origin the dashboard frontend uses; the websocket endpoint rejects
// handshakes without browser-looking headers.
const dashboardOrigin = "https://dashboard.teneo.pro"

// ConnectURL builds the websocket connect URL with the access token and
// protocol version as query parameters.
func ConnectURL(wsURL, accessToken, version string) (string, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return "", fmt.Errorf("parse ws url: %w", err)
	}

	q := u.Query()
	q.Set("accessToken", accessToken)
	q.Set("version", version)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Headers returns the handshake headers the service expects.
func Headers() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("Accept-Language", "en-US")
	h.Set("Cache-Control", "no-cache")
	h.Set("Origin", dashboardOrigin)
	h.Set("Pragma", "no-cache")
	h.Set("Referer", dashboardOrigin+"/")
	h.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	return h
}

// Bearer returns the Authorization header value for dashboard API requests.
func Bearer(accessToken string) string {
	return "Bearer " + accessToken
}

// Redact returns a log-safe form of the token: first and last 4 characters
// with the middle elided. Short tokens are fully masked.
func Redact(token string) string {
	if len(token) <= 12 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
