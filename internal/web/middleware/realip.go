package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
)

// TrustedRealIP rewrites RemoteAddr from X-Real-IP or X-Forwarded-For, but
// only when the connection itself comes from a trusted proxy. Requests from
// anywhere else keep their original RemoteAddr, so untrusted clients cannot
// spoof their way past rate limiting or request logging by sending the
// headers themselves.
//
// trustedCIDRs accepts CIDR notation or single IPs; invalid entries are
// logged and skipped.
func TrustedRealIP(trustedCIDRs []string) func(http.Handler) http.Handler {
	trustedNets := parseTrustedNets(trustedCIDRs)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			remoteIP := extractIP(r.RemoteAddr)

			if isTrusted(remoteIP, trustedNets) {
				if ip := clientIPFromHeaders(r); ip != nil {
					r.RemoteAddr = ip.String()
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// parseTrustedNets parses the configured proxy list once at startup.
func parseTrustedNets(cidrs []string) []*net.IPNet {
	var nets []*net.IPNet
	for _, cidr := range cidrs {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}

		if _, network, err := net.ParseCIDR(cidr); err == nil {
			nets = append(nets, network)
			continue
		}

		// Allow single IPs like "10.0.0.5" without the /32 suffix.
		if ip := net.ParseIP(cidr); ip != nil {
			mask := net.CIDRMask(128, 128)
			if ip.To4() != nil {
				mask = net.CIDRMask(32, 32)
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: mask})
			continue
		}

		slog.Warn("realip: invalid trusted proxy entry, skipping", "entry", cidr)
	}
	return nets
}

// clientIPFromHeaders returns the client IP claimed by the proxy headers, or
// nil when neither header carries a valid address. X-Real-IP wins; otherwise
// the first entry of the X-Forwarded-For chain is the original client.
func clientIPFromHeaders(r *http.Request) net.IP {
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return net.ParseIP(strings.TrimSpace(rip))
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		candidate := xff
		if idx := strings.Index(xff, ","); idx > 0 {
			candidate = xff[:idx]
		}
		return net.ParseIP(strings.TrimSpace(candidate))
	}

	return nil
}

// extractIP parses an IP address from a host:port string or plain IP.
func extractIP(addr string) net.IP {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return net.ParseIP(host)
	}
	return net.ParseIP(addr)
}

// isTrusted checks if an IP is within any of the trusted networks.
func isTrusted(ip net.IP, trusted []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, network := range trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
