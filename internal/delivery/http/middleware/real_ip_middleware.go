package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// RealIPMiddleware resolves the client address once per request. Forwarding
// headers are honoured only when the direct peer is a trusted proxy.
type RealIPMiddleware struct {
	trusted []*net.IPNet
}

func NewRealIPMiddleware(trustedProxies []string, log *logrus.Logger) *RealIPMiddleware {
	m := &RealIPMiddleware{}
	for _, entry := range trustedProxies {
		if !strings.Contains(entry, "/") {
			if ip := net.ParseIP(entry); ip != nil && ip.To4() != nil {
				entry += "/32"
			} else {
				entry += "/128"
			}
		}
		_, network, err := net.ParseCIDR(entry)
		if err != nil {
			log.Warnf("Ignoring invalid trusted proxy %q: %+v", entry, err)
			continue
		}
		m.trusted = append(m.trusted, network)
	}
	return m
}

func (m *RealIPMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ClientIPKey, m.resolve(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *RealIPMiddleware) isTrusted(raw string) bool {
	ip := net.ParseIP(strings.TrimSpace(raw))
	if ip == nil {
		return false
	}
	for _, network := range m.trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// resolve walks X-Forwarded-For from the nearest hop outwards and returns the
// first address that is not one of our proxies.
func (m *RealIPMiddleware) resolve(r *http.Request) string {
	peer := remoteHost(r)
	if !m.isTrusted(peer) {
		return peer
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" || m.isTrusted(hop) {
				continue
			}
			if net.ParseIP(hop) == nil {
				break
			}
			return hop
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(realIP) != nil {
		return realIP
	}
	return peer
}

// ClientIP returns the address resolved by RealIPMiddleware, or the direct
// peer when the middleware did not run.
func ClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(ClientIPKey).(string); ok && ip != "" {
		return ip
	}
	return remoteHost(r)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
