package soap

import "errors"

// ErrorKind classifies client failures so callers can map them to HTTP
// statuses without inspecting error text.
type ErrorKind string

const (
	// KindInvalidArgument means a required field was blank; no network call
	// was made.
	KindInvalidArgument ErrorKind = "invalid_argument"
	// KindNetwork means the upstream could not be reached at the transport
	// level (refused, DNS, reset).
	KindNetwork ErrorKind = "network"
	// KindTimeout means the upstream did not respond within the configured
	// timeout.
	KindTimeout ErrorKind = "timeout"
	// KindMalformedResponse means the upstream answered with something that
	// is not a parseable SOAP payload.
	KindMalformedResponse ErrorKind = "malformed_response"
	// KindUpstreamRejected means the upstream returned a non-success HTTP
	// status.
	KindUpstreamRejected ErrorKind = "upstream_rejected"
)

// ClientError is the failure type for all gateway client operations.
// Body holds the raw upstream payload for diagnostics; it is surfaced in logs
// only and must never be echoed to the end caller.
type ClientError struct {
	Kind    ErrorKind
	Message string
	Body    string
	Err     error
}

func (e *ClientError) Error() string {
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a ClientError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Kind == kind
}

// Kind returns the error kind of err, or an empty kind when err is not a
// ClientError.
func Kind(err error) ErrorKind {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
