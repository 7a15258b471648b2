package pkg

import "fmt"

// AppError is the HTTP-facing error envelope. Code is a stable
// machine-readable identifier; Message is safe to surface verbatim.

type AppError struct {
	Code       string
	Message    string
	Err        error
	HTTPStatus int
}

func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: httpStatus}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// HTTPError is the JSON body written for a failed request. The wrapped cause
// is deliberately omitted: store failures propagate as an opaque message.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{Code: e.Code, Message: e.Message}
}
