// Package errors provides custom error types and definitions for the application.
//
//nolint:lll
package errors

import (
	"fmt"
	"net/http"
)

// The custom Error type satisfies the error interface.
// Error() returns a human-readable description of the error.
//
// Error codes in the 40001-49999 range are the user's fault,
// and they return HTTP Status 400 or 404, whatever is most appropriate.
//
// Error codes 50001-59999 are the server's fault
// and they return HTTP Status 500 or 503, or something else if appropriate.
//
// Every failing store operation has its own fixed message, the internal cause
// is only logged. A malformed document identifier is reported as a failure of
// the operation that received it.
//
// NEVER change any of the current error codes, only append new errors after
// the current last one of its range.
var (
	// Validation errors (400)
	ErrMalformedBody        = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid JSON request body")}
	ErrMalformedURLParam    = Error{Code: 40010, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid URL parameter")}
	ErrStorageInvalidObject = Error{Code: 40024, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid storage object or parameters")}
	ErrEmptyUpdate          = Error{Code: 40038, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("update contains none of the known fields")}

	// Not found errors (404)
	ErrStorageObjectNotFound = Error{Code: 40045, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("storage object not found"), LogLevel: "info"}

	// Generic server errors (500)
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: operation failed")}
	ErrInternalStorageError       = Error{Code: 50006, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: storage operation failed")}

	// Coffee errors (500)
	ErrCoffeeListFailed   = Error{Code: 50101, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("failed to fetch coffees")}
	ErrCoffeeFetchFailed  = Error{Code: 50102, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("failed to fetch coffee")}
	ErrCoffeeCreateFailed = Error{Code: 50103, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("failed to add coffee")}
	ErrCoffeeUpdateFailed = Error{Code: 50104, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("failed to update coffee")}
	ErrCoffeeDeleteFailed = Error{Code: 50105, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("failed to delete coffee")}

	// User errors (500)
	ErrUserListFailed   = Error{Code: 50201, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("failed to fetch users")}
	ErrUserFetchFailed  = Error{Code: 50202, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("failed to fetch user")}
	ErrUserCreateFailed = Error{Code: 50203, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("failed to add user")}
	ErrUserUpdateFailed = Error{Code: 50204, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("failed to update user")}
	ErrUserDeleteFailed = Error{Code: 50205, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("failed to delete user")}
)
