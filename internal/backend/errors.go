package backend

import (
	"errors"
	"net"
	"net/url"
	"strings"
)

// Kind is a closed classification of backend failures. The hosted services
// report errors as loosely shaped message strings; they are pattern-matched
// once here, at the call boundary, so everything downstream switches on Kind
// instead of substrings.
type Kind int

const (
	KindUnknown Kind = iota
	KindNoRows
	KindDuplicatePhone
	KindDuplicateEmail
	KindPermissionDenied
	KindInvalidCredentials
	KindOTPInvalid
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindNoRows:
		return "no rows"
	case KindDuplicatePhone:
		return "duplicate phone"
	case KindDuplicateEmail:
		return "duplicate email"
	case KindPermissionDenied:
		return "permission denied"
	case KindInvalidCredentials:
		return "invalid credentials"
	case KindOTPInvalid:
		return "invalid otp"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Error is a classified backend failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the classification from any error, returning KindUnknown
// for errors that did not come through this package.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnknown
}

// classify wraps a raw backend error with its Kind. Returns nil for nil.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var be *Error
	if errors.As(err, &be) {
		return be
	}
	return &Error{Kind: kindFor(err), Message: err.Error(), Err: err}
}

func kindFor(err error) Kind {
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return KindNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "profiles_phone_key"),
		strings.Contains(msg, "donors_phone_key"):
		return KindDuplicatePhone
	case strings.Contains(msg, "user already registered"),
		strings.Contains(msg, "user_already_exists"),
		strings.Contains(msg, "email address") && strings.Contains(msg, "already"):
		return KindDuplicateEmail
	case strings.Contains(msg, "duplicate key value"):
		if strings.Contains(msg, "phone") {
			return KindDuplicatePhone
		}
		return KindDuplicateEmail
	case strings.Contains(msg, "row-level security"),
		strings.Contains(msg, "42501"):
		return KindPermissionDenied
	case strings.Contains(msg, "pgrst116"),
		strings.Contains(msg, "multiple (or no) rows"),
		strings.Contains(msg, "0 rows"):
		return KindNoRows
	case strings.Contains(msg, "invalid login credentials"):
		return KindInvalidCredentials
	case strings.Contains(msg, "otp_expired"),
		strings.Contains(msg, "token has expired or is invalid"),
		strings.Contains(msg, "invalid otp"):
		return KindOTPInvalid
	default:
		return KindUnknown
	}
}
