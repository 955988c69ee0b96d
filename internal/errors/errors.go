package errors

import (
	stderrors "errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorType string

const (
	// ErrTypeTransport covers connection failures, timeouts and non-2xx
	// HTTP responses from the search API.
	ErrTypeTransport ErrorType = "TRANSPORT"
	// ErrTypeDecode covers malformed response bodies.
	ErrTypeDecode ErrorType = "DECODE"
	// ErrTypeAPIStatus covers well-formed envelopes with a non-OK status.
	ErrTypeAPIStatus ErrorType = "API_STATUS"
	ErrTypeNotFound  ErrorType = "NOT_FOUND"
	ErrTypeInternal  ErrorType = "INTERNAL"
)

type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func New(errType ErrorType, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func Transport(message string, err error) *DomainError {
	return New(ErrTypeTransport, message, err)
}

func Decode(message string, err error) *DomainError {
	return New(ErrTypeDecode, message, err)
}

func APIStatus(message string, err error) *DomainError {
	return New(ErrTypeAPIStatus, message, err)
}

func NotFound(message string, err error) *DomainError {
	return New(ErrTypeNotFound, message, err)
}

func Internal(message string, err error) *DomainError {
	return New(ErrTypeInternal, message, err)
}

// TypeOf lets call sites pick a policy (abort the run vs skip the record)
// without string matching. Unknown errors classify as INTERNAL.
func TypeOf(err error) ErrorType {
	var domainErr *DomainError
	if stderrors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ErrTypeInternal
}
