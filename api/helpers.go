package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vocdoni/coffee-backend/api/apicommon"
	"github.com/vocdoni/coffee-backend/db"
	apierrors "github.com/vocdoni/coffee-backend/errors"
	"go.vocdoni.io/dvote/log"
)

const greeting = "Welcome to the coffee API!"

// maxBodySize limits the size of the JSON documents accepted by the API.
const maxBodySize = 1 << 20

// rootHandler writes a plain text greeting.
func (*API) rootHandler(w http.ResponseWriter, _ *http.Request) {
	apicommon.HTTPWriteText(w, greeting)
}

// recoverer catches the panics of the next handlers, prints their stack and
// replies with ErrGenericInternalServerError. http.ErrAbortHandler is
// propagated so the server aborts the response.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			//nolint:errorlint
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			middleware.PrintPrettyStack(rvr)
			apierrors.ErrGenericInternalServerError.WithCause(fmt.Errorf("panic: %v", rvr)).Write(w)
		}()
		next.ServeHTTP(w, r)
	})
}

// documentFromRequest decodes the request body into a document. It writes a
// 400 response and returns false when the body is not a JSON object.
func documentFromRequest(w http.ResponseWriter, r *http.Request) (db.Document, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		apierrors.ErrMalformedBody.Withf("cannot read body: %v", err).Write(w)
		return nil, false
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		apierrors.ErrMalformedBody.With("expected a JSON object").Write(w)
		return nil, false
	}
	doc := db.Document{}
	if err := json.Unmarshal(body, &doc); err != nil {
		apierrors.ErrMalformedBody.WithErr(err).Write(w)
		return nil, false
	}
	return doc, true
}

// idFromRequest returns the {id} URL parameter.
func idFromRequest(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// writeDocument writes the document found, or JSON null when the store
// reports it does not exist. Any other error is written as failed.
func writeDocument(w http.ResponseWriter, doc db.Document, err error, failed apierrors.Error) {
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			log.Debugw("document not found", "error", err)
			apicommon.HTTPWriteJSON(w, nil)
			return
		}
		failed.WithCause(err).Write(w)
		return
	}
	apicommon.HTTPWriteJSON(w, doc)
}

// writeResult writes the acknowledgment of a store operation, or failed if
// the operation returned an error.
func writeResult(w http.ResponseWriter, result any, err error, failed apierrors.Error) {
	if err != nil {
		failed.WithCause(err).Write(w)
		return
	}
	apicommon.HTTPWriteJSON(w, result)
}

// writeUpdateResult works like writeResult but reports an update that
// contains none of the known fields as a client error.
func writeUpdateResult(w http.ResponseWriter, result *db.UpdateResult, err error, failed apierrors.Error) {
	if errors.Is(err, db.ErrInvalidData) {
		apierrors.ErrEmptyUpdate.Write(w)
		return
	}
	writeResult(w, result, err, failed)
}
