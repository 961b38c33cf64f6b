package errors

import (
	goerrors "errors"
	"net/http"
)

type Kind string

const (
	KindValidation         Kind = "validation_error"
	KindUnauthorized       Kind = "unauthorized"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindCapacityExceeded   Kind = "capacity_exceeded"
	KindInvalidDiscount    Kind = "invalid_discount"
	KindNotEligible        Kind = "not_eligible"
	KindDuplicateWebhook   Kind = "duplicate_webhook"
	KindAllocationConflict Kind = "allocation_conflict"
	KindInvalidTransition  Kind = "invalid_transition"
	KindInternal           Kind = "internal_server_error"
)

// ErrorResponse is the error value passed between layers. Code is the HTTP
// status the handler answers with.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e ErrorResponse) Error() string {
	return e.Message
}

func BadRequest(msg string) error {
	return ErrorResponse{Code: http.StatusBadRequest, Kind: KindValidation, Message: msg}
}

func UnauthorizedError(msg string) error {
	return ErrorResponse{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: msg}
}

func Forbidden(msg string) error {
	return ErrorResponse{Code: http.StatusForbidden, Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) error {
	return ErrorResponse{Code: http.StatusNotFound, Kind: KindNotFound, Message: msg}
}

func CapacityExceeded(msg string) error {
	return ErrorResponse{Code: http.StatusConflict, Kind: KindCapacityExceeded, Message: msg}
}

func InvalidDiscount(msg string) error {
	return ErrorResponse{Code: http.StatusBadRequest, Kind: KindInvalidDiscount, Message: msg}
}

func NotEligible(msg string) error {
	return ErrorResponse{Code: http.StatusUnprocessableEntity, Kind: KindNotEligible, Message: msg}
}

// DuplicateWebhook is swallowed by the webhook handlers and answered with 200.
func DuplicateWebhook(msg string) error {
	return ErrorResponse{Code: http.StatusOK, Kind: KindDuplicateWebhook, Message: msg}
}

func AllocationConflict(msg string) error {
	return ErrorResponse{Code: http.StatusServiceUnavailable, Kind: KindAllocationConflict, Message: msg}
}

func InvalidTransition(msg string) error {
	return ErrorResponse{Code: http.StatusConflict, Kind: KindInvalidTransition, Message: msg}
}

func InternalServerError(msg string) error {
	return ErrorResponse{Code: http.StatusInternalServerError, Kind: KindInternal, Message: msg}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e ErrorResponse
	if goerrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// StatusCode maps err to an HTTP status, defaulting to 500.
func StatusCode(err error) int {
	var e ErrorResponse
	if goerrors.As(err, &e) && e.Code != 0 {
		return e.Code
	}
	return http.StatusInternalServerError
}

// Permanent reports whether err is a client error that no retry can fix.
func Permanent(err error) bool {
	if err == nil {
		return false
	}
	code := StatusCode(err)
	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}
