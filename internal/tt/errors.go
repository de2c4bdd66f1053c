package tt

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers that need to pick a response.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindInvalid
	KindNotFound
	KindConflict
	KindExternal
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindExternal:
		return "external"
	default:
		return "internal"
	}
}

// CodeReLogin tells a client that its device binding no longer holds and it
// must authenticate again.
const CodeReLogin = "Re-login"

// Error is a classified service error. Message is safe to return to clients.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Unauthenticated(msg string) *Error { return &Error{Kind: KindUnauthenticated, Message: msg} }
func Forbidden(msg string) *Error       { return &Error{Kind: KindForbidden, Message: msg} }
func Invalid(msg string) *Error         { return &Error{Kind: KindInvalid, Message: msg} }
func NotFound(msg string) *Error        { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error        { return &Error{Kind: KindConflict, Message: msg} }

// External wraps a failure of object storage, mail or another collaborator.
func External(msg string, err error) *Error {
	return &Error{Kind: KindExternal, Message: msg, Err: err}
}

// ReLogin is returned when an employee's device fingerprint does not match.
func ReLogin() *Error {
	return &Error{
		Kind:    KindUnauthenticated,
		Code:    CodeReLogin,
		Message: "device not recognized, please log in again",
	}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ErrDuplicate is wrapped by Database implementations when a unique
// constraint rejects a write.
var ErrDuplicate = errors.New("duplicate value")

// ErrTokenUnusable is returned by Database.ActivateEmployee when the token is
// unknown, expired or already consumed.
var ErrTokenUnusable = errors.New("activation token unusable")
