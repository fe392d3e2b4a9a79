package api

import (
	"net/http"

	"github.com/vocdoni/coffee-backend/errors"
)

// listUsersHandler writes every user stored.
func (a *API) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := a.db.Users(r.Context())
	writeResult(w, users, err, errors.ErrUserListFailed)
}

// createUserHandler stores the user of the request body. Neither the email
// nor any other field is validated.
func (a *API) createUserHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := documentFromRequest(w, r)
	if !ok {
		return
	}
	res, err := a.db.AddUser(r.Context(), user)
	writeResult(w, res, err, errors.ErrUserCreateFailed)
}

func (a *API) userHandler(w http.ResponseWriter, r *http.Request) {
	user, err := a.db.User(r.Context(), idFromRequest(r))
	writeDocument(w, user, err, errors.ErrUserFetchFailed)
}

// setUserHandler replaces the name and email of the user with the id of the
// URL, creating the user if it doesn't exist.
func (a *API) setUserHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := documentFromRequest(w, r)
	if !ok {
		return
	}
	res, err := a.db.SetUser(r.Context(), idFromRequest(r), user)
	writeResult(w, res, err, errors.ErrUserUpdateFailed)
}

func (a *API) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := documentFromRequest(w, r)
	if !ok {
		return
	}
	res, err := a.db.UpdateUser(r.Context(), idFromRequest(r), user)
	writeUpdateResult(w, res, err, errors.ErrUserUpdateFailed)
}

func (a *API) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	res, err := a.db.DelUser(r.Context(), idFromRequest(r))
	writeResult(w, res, err, errors.ErrUserDeleteFailed)
}
