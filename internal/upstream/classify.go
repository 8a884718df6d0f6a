// Package upstream classifies transport failures of outbound HTTP calls into
// stable error codes reported back to API callers.
package upstream

import (
	"context"
	"errors"
	"net"
	"syscall"
)

const (
	CodeTimeout           = "TIMEOUT"
	CodeDNS               = "DNS_ERROR"
	CodeConnectionRefused = "CONNECTION_REFUSED"
	CodeConnectionReset   = "CONNECTION_RESET"
	CodeNetwork           = "NETWORK_ERROR"
	CodeBodyTooLarge      = "RESPONSE_TOO_LARGE"
)

// Classify maps a transport error to an error code. It returns an empty
// string for a nil error.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrBodyTooLarge) {
		return CodeBodyTooLarge
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CodeTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return CodeDNS
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return CodeConnectionRefused
	case errors.Is(err, syscall.ECONNRESET), errors.Is(err, syscall.EPIPE):
		return CodeConnectionReset
	}

	return CodeNetwork
}
