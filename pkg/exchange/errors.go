package exchange

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures. Every error leaving a provider or
// the signal translator carries exactly one kind so callers can map it to a
// transport status without inspecting message text.
type ErrorKind string

const (
	// KindConfig indicates missing or unusable credential material. Raised
	// before any signed call is attempted.
	KindConfig ErrorKind = "config"
	// KindValidation indicates a malformed or incomplete inbound signal.
	KindValidation ErrorKind = "validation"
	// KindAuth indicates a webhook token mismatch.
	KindAuth ErrorKind = "auth"
	// KindUpstreamUnavailable indicates a transport failure, timeout or
	// unparseable response after the retry budget is exhausted.
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	// KindInstrumentNotFound indicates the symbol resolved to no tradable
	// instrument. No order is attempted.
	KindInstrumentNotFound ErrorKind = "instrument_not_found"
	// KindVenue indicates the venue answered with a non-zero business code.
	// Never retried; the venue's message is surfaced verbatim.
	KindVenue ErrorKind = "venue"
)

// Error is the tagged failure variant shared by all providers.
type Error struct {
	Kind    ErrorKind
	Message string
	// VenueCode holds the venue's own status code for KindVenue errors.
	VenueCode string
	Err       error
}

func (e *Error) Error() string {
	if e.VenueCode != "" {
		return fmt.Sprintf("exchange: %s (code=%s): %s", e.Kind, e.VenueCode, e.Message)
	}
	if e.Err != nil && e.Message == "" {
		return fmt.Sprintf("exchange: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("exchange: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError constructs a tagged error with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError tags an underlying cause with a kind and message.
func WrapError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// NewVenueError captures a non-zero venue response code with its message.
func NewVenueError(code, msg string) *Error {
	return &Error{Kind: KindVenue, VenueCode: code, Message: msg}
}

// KindOf extracts the error kind, or empty string for untagged errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
