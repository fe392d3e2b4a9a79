package api

import (
	"net/http"

	"github.com/vocdoni/coffee-backend/errors"
)

// listCoffeeHandler writes every coffee stored.
func (a *API) listCoffeeHandler(w http.ResponseWriter, r *http.Request) {
	coffees, err := a.db.Coffees(r.Context())
	writeResult(w, coffees, err, errors.ErrCoffeeListFailed)
}

// createCoffeeHandler stores the coffee of the request body as is and writes
// the insert acknowledgment.
func (a *API) createCoffeeHandler(w http.ResponseWriter, r *http.Request) {
	coffee, ok := documentFromRequest(w, r)
	if !ok {
		return
	}
	res, err := a.db.AddCoffee(r.Context(), coffee)
	writeResult(w, res, err, errors.ErrCoffeeCreateFailed)
}

// coffeeHandler writes the coffee with the id of the URL, or null if it
// doesn't exist.
func (a *API) coffeeHandler(w http.ResponseWriter, r *http.Request) {
	coffee, err := a.db.Coffee(r.Context(), idFromRequest(r))
	writeDocument(w, coffee, err, errors.ErrCoffeeFetchFailed)
}

// setCoffeeHandler replaces the coffee fields of the coffee with the id of
// the URL. Fields missing from the body are removed, and the coffee is
// created if it doesn't exist.
func (a *API) setCoffeeHandler(w http.ResponseWriter, r *http.Request) {
	coffee, ok := documentFromRequest(w, r)
	if !ok {
		return
	}
	res, err := a.db.SetCoffee(r.Context(), idFromRequest(r), coffee)
	writeResult(w, res, err, errors.ErrCoffeeUpdateFailed)
}

// updateCoffeeHandler sets only the coffee fields of the body.
func (a *API) updateCoffeeHandler(w http.ResponseWriter, r *http.Request) {
	coffee, ok := documentFromRequest(w, r)
	if !ok {
		return
	}
	res, err := a.db.UpdateCoffee(r.Context(), idFromRequest(r), coffee)
	writeUpdateResult(w, res, err, errors.ErrCoffeeUpdateFailed)
}

func (a *API) deleteCoffeeHandler(w http.ResponseWriter, r *http.Request) {
	res, err := a.db.DelCoffee(r.Context(), idFromRequest(r))
	writeResult(w, res, err, errors.ErrCoffeeDeleteFailed)
}
