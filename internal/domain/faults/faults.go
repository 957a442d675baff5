// Package faults classifies pipeline failures for the caller: the remote
// service could not be reached (Transport), it answered with something that
// does not satisfy the contract (Format, NoImageProduced), or the caller's
// input was incomplete (Validation).
package faults

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindUnknown Kind = iota
	KindTransport
	KindFormat
	KindNoImageProduced
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindFormat:
		return "format"
	case KindNoImageProduced:
		return "no_image"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

// Sentinels for errors.Is. ErrFormat also matches NoImageProduced errors.
var (
	ErrTransport       = &Error{Kind: KindTransport}
	ErrFormat          = &Error{Kind: KindFormat}
	ErrNoImageProduced = &Error{Kind: KindNoImageProduced}
	ErrValidation      = &Error{Kind: KindValidation}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String() + " error"
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind == e.Kind {
		return true
	}
	return t.Kind == KindFormat && e.Kind == KindNoImageProduced
}

func Transport(op string, err error) error {
	return &Error{Kind: KindTransport, Op: op, Message: "remote service request failed", Err: err}
}

func Transportf(op string, err error, format string, args ...any) error {
	return &Error{Kind: KindTransport, Op: op, Message: fmt.Sprintf(format, args...), Err: err}
}

func Format(op string, err error, format string, args ...any) error {
	return &Error{Kind: KindFormat, Op: op, Message: fmt.Sprintf(format, args...), Err: err}
}

func NoImageProduced(op string, format string, args ...any) error {
	return &Error{Kind: KindNoImageProduced, Op: op, Message: fmt.Sprintf(format, args...)}
}

func Validation(op string, format string, args ...any) error {
	return &Error{Kind: KindValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
