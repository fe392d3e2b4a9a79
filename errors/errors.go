package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"

	"go.vocdoni.io/dvote/log"
)

// Error is used by handler functions to wrap errors, assigning a unique error code
// and also specifying which HTTP Status should be used.
type Error struct {
	Err        error  // Public error, sent to the client
	Code       int    // Error code
	HTTPstatus int    // HTTP status code to return
	LogLevel   string // Log level for this error (defaults to "debug", "error" for 5xx)
	Cause      error  // Internal error, only logged
}

// MarshalJSON returns a JSON containing Err.Error() and Code. Fields
// HTTPstatus and Cause are ignored.
//
// Example output: {"error":"failed to fetch coffee","code":50102}
func (e Error) MarshalJSON() ([]byte, error) {
	// json.Marshal doesn't call Err.Error(), so the message is copied into
	// an anonymous struct
	return json.Marshal(
		struct {
			Error string `json:"error"`
			Code  int    `json:"code"`
		}{
			Error: e.Err.Error(),
			Code:  e.Code,
		})
}

// Error returns the public message contained inside the Error
func (e Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the internal cause, if any, so errors.Is and errors.As can
// inspect it.
func (e Error) Unwrap() error {
	return e.Cause
}

// Write serializes a JSON msg using Error.Err and Error.Code and writes it
// with the HTTPstatus of the error. 5xx errors are logged with their internal cause and the
// caller, the rest are logged at the configured level.
func (e Error) Write(w http.ResponseWriter) {
	msg, err := json.Marshal(e)
	if err != nil {
		log.Warn(err)
		http.Error(w, "marshal failed", http.StatusInternalServerError)
		return
	}

	pc, file, line, _ := runtime.Caller(1)
	caller := runtime.FuncForPC(pc).Name()

	if e.HTTPstatus >= 500 {
		cause := e.Cause
		if cause == nil {
			cause = e.Err
		}
		log.Errorw(cause, fmt.Sprintf("API error response [%d]: %s (code: %d, caller: %s, file: %s:%d)",
			e.HTTPstatus, e.Error(), e.Code, caller, file, line))
	} else {
		errMsg := fmt.Sprintf("API error response [%d]: %s (code: %d, caller: %s)",
			e.HTTPstatus, e.Error(), e.Code, caller)
		switch e.LogLevel {
		case "info":
			log.Infow(errMsg)
		case "warn":
			log.Warnw(errMsg)
		default:
			log.Debugw(errMsg)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(e.HTTPstatus)
	if _, err := fmt.Fprintln(w, string(msg)); err != nil {
		log.Warnw("failed to write error response", "error", err)
	}
}

// Withf returns a copy of Error with the Sprintf formatted string appended at the end of e.Err
func (e Error) Withf(format string, args ...any) Error {
	return e.With(fmt.Sprintf(format, args...))
}

// With returns a copy of Error with the string appended at the end of e.Err
func (e Error) With(s string) Error {
	e.Err = fmt.Errorf("%w: %v", e.Err, s)
	return e
}

// WithErr returns a copy of Error with err.Error() appended at the end of
// e.Err. Use it only when the error text is safe to show to the client.
func (e Error) WithErr(err error) Error {
	e.Err = fmt.Errorf("%w: %v", e.Err, err.Error())
	e.Cause = err
	return e
}

// WithCause returns a copy of Error that keeps its public message unchanged
// and records err as the internal cause, logged by Write.
func (e Error) WithCause(err error) Error {
	e.Cause = err
	return e
}
