// Package apierr carries the service's tagged error taxonomy. Codes are the
// canonical gRPC codes, serialized in the kebab-case form the portfolio
// client already understands (the callable-function protocol).
package apierr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
)

type Error struct {
	code codes.Code
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Code() codes.Code { return e.code }

func New(code codes.Code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

func InvalidArgument(msg string) *Error { return New(codes.InvalidArgument, msg) }

func NotFound(msg string) *Error { return New(codes.NotFound, msg) }

func FailedPrecondition(msg string) *Error { return New(codes.FailedPrecondition, msg) }

func DeadlineExceeded(msg string) *Error { return New(codes.DeadlineExceeded, msg) }

func PermissionDenied(msg string) *Error { return New(codes.PermissionDenied, msg) }

func Unauthenticated(msg string) *Error { return New(codes.Unauthenticated, msg) }

// Internal wraps a collaborator failure. The cause stays attached for logs
// but is not serialized to the client.
func Internal(msg string, err error) *Error {
	return &Error{code: codes.Internal, msg: msg, err: err}
}

// CodeOf reports the tagged code of err, or codes.Internal for untagged
// errors.
func CodeOf(err error) codes.Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return codes.Internal
}

var codeTags = map[codes.Code]string{
	codes.InvalidArgument:    "invalid-argument",
	codes.NotFound:           "not-found",
	codes.FailedPrecondition: "failed-precondition",
	codes.DeadlineExceeded:   "deadline-exceeded",
	codes.PermissionDenied:   "permission-denied",
	codes.Unauthenticated:    "unauthenticated",
	codes.Internal:           "internal",
}

func Tag(code codes.Code) string {
	if tag, ok := codeTags[code]; ok {
		return tag
	}
	return "internal"
}

func httpStatus(code codes.Code) int {
	switch code {
	case codes.InvalidArgument, codes.FailedPrecondition:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Handle writes err as a tagged JSON error response and aborts the request.
// Untagged errors surface as internal without leaking the cause.
func Handle(c *gin.Context, err error) {
	code := CodeOf(err)
	msg := "internal error"
	var e *Error
	if errors.As(err, &e) && e.code != codes.Internal {
		msg = e.msg
	}
	c.AbortWithStatusJSON(httpStatus(code), gin.H{
		"error": gin.H{"code": Tag(code), "message": msg},
	})
}
