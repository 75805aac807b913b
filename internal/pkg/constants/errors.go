package constants

import "net/http"

// CodedError carries the HTTP status the API error handler should answer
// with when the error reaches the top of the handler chain.
type CodedError struct {
	msg  string
	code int
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{msg: msg, code: code}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrUnauthorized          = NewCodedError("unauthorized", http.StatusUnauthorized)
	ErrMissingAuthCookie     = NewCodedError("missing auth cookie", http.StatusUnauthorized)
	ErrDBNotFound            = NewCodedError("not found", http.StatusNotFound)
	ErrBadRequest            = NewCodedError("bad request", http.StatusBadRequest)
	ErrEmptyBulletin         = NewCodedError("bulletin source returned no rows", http.StatusConflict)
	ErrAmbiguousBulletinWeek = NewCodedError("cannot parse bulletin week boundaries", http.StatusUnprocessableEntity)
)
