// internal/server/timeouts.go
//
// http.Server construction with hard timeouts.
//
// Context
// -------
// Every inbound request is a database round-trip or two plus a JSON
// body; nothing legitimate needs more than a few seconds.  The read
// timeout kills slow-loris header dribble, the write timeout caps
// total response time (domain probes run under their own 3s context
// deadline, well inside it), and the idle timeout reclaims keep-alive
// connections from silent clients.
package server

import (
	"net/http"
	"time"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second
)

// New returns a server for addr with the platform timeout set applied.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}
