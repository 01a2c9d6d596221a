package identity

import "strings"

// NormalizeOrigin canonicalizes a request origin for duplicate-account
// comparison: loopback forms collapse to 127.0.0.1 and IPv6-mapped addresses
// are reduced to their IPv4 suffix.
func NormalizeOrigin(addr string) string {
	if addr == "" {
		addr = "::1"
	}

	addr = strings.ReplaceAll(addr, "::1", "::ffff:127.0.0.1")
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		addr = addr[i+1:]
	}

	return addr
}
