// Package errs defines the error kinds produced while resolving the LAN gateway.
package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindParse
	KindNoRoute
	KindDHCPTimeout
	KindSocket
	KindNoCandidates
	KindNoMatch
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindNoRoute:
		return "no route"
	case KindDHCPTimeout:
		return "dhcp timeout"
	case KindSocket:
		return "socket"
	case KindNoCandidates:
		return "no candidates"
	case KindNoMatch:
		return "no match"
	default:
		return "unknown"
	}
}

// Error carries a Kind alongside the failing operation and an optional cause.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
