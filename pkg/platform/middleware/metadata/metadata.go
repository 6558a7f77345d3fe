package metadata

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

// Client summarizes the caller's User-Agent for access logs.
type Client struct {
	Name    string
	Version string
	Bot     bool
}

// DescribeUserAgent parses a User-Agent header into a browser or bot name.
// An empty header yields "unknown".
func DescribeUserAgent(header string) Client {
	if strings.TrimSpace(header) == "" {
		return Client{Name: "unknown"}
	}
	ua := useragent.New(header)
	name, version := ua.Browser()
	if name == "" {
		name = "unknown"
	}
	return Client{Name: name, Version: version, Bot: ua.Bot()}
}

// ClientIPFromRequest extracts the real client IP from the request, handling proxies and load balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs (client, proxy1, proxy2, ...)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "ip:port"; IPv6 is "[::1]:port"
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return strings.Trim(addr[:idx], "[]")
		}
		return addr
	}

	return "unknown"
}
