// internal/hostname/hostname.go
//
// Host-header canonicalisation.
//
// Context
// -------
// Every tenant lookup keys on a hostname, and the raw signal arrives in
// half a dozen shapes: mixed case, with a port, with a scheme pasted in
// by a mis-configured proxy, or with the trailing dot that makes a name
// fully qualified in DNS.  Normalize collapses all of those into one
// canonical form so the directory only ever sees lowercase bare hosts.
//
// Notes
// -----
// • Pure functions, no failure modes.  Empty in, empty out.
// • Oxford commas, two spaces after periods.
package hostname

import (
	"net"
	"strings"
)

// Normalize converts a raw host signal into a canonical lowercase
// hostname: scheme and port stripped, trailing dots removed.
func Normalize(raw string) string {
	h := strings.TrimSpace(raw)
	if h == "" {
		return ""
	}
	h = strings.ToLower(h)

	// Tolerate full URLs pasted into host headers.
	if i := strings.Index(h, "://"); i != -1 {
		h = h[i+3:]
	}
	if i := strings.IndexByte(h, '/'); i != -1 {
		h = h[:i]
	}

	// SplitHostPort also unwraps bracketed IPv6 literals.
	if host, _, err := net.SplitHostPort(h); err == nil {
		h = host
	}

	return strings.TrimRight(h, ".")
}

// StripPort removes only the ":port" suffix.  Used where the caller
// wants the original casing preserved (redirect targets).
func StripPort(h string) string {
	if host, _, err := net.SplitHostPort(h); err == nil {
		return host
	}
	return h
}
