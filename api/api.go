// Package api provides the HTTP API of the coffee backend: CRUD routes over
// the coffee and users collections, plus the coffee photo storage.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vocdoni/coffee-backend/db"
	"github.com/vocdoni/coffee-backend/objectstorage"
	"go.vocdoni.io/dvote/log"
)

// Config holds the dependencies and listen address of the API.
type Config struct {
	Host string
	Port int
	DB   db.Database
	// ObjectStorage is optional, the storage routes are only registered when
	// it is set.
	ObjectStorage *objectstorage.Client
}

// API type represents the API HTTP server.
type API struct {
	db            db.Database
	host          string
	port          int
	router        *chi.Mux
	objectStorage *objectstorage.Client
}

// New creates a new API HTTP server. It does not start the server. Use Start() for that.
func New(conf *Config) *API {
	if conf == nil {
		return nil
	}
	a := &API{
		db:            conf.DB,
		host:          conf.Host,
		port:          conf.Port,
		objectStorage: conf.ObjectStorage,
	}
	a.initRouter()
	return a
}

// Start starts the API HTTP server (non blocking).
func (a *API) Start() {
	go func() {
		addr := fmt.Sprintf("%s:%d", a.host, a.port)
		log.Infow("starting API server", "address", addr)
		if err := http.ListenAndServe(addr, a.router); err != nil {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
}

// Router returns the HTTP handler with every route of the API.
func (a *API) Router() http.Handler {
	return a.router
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() {
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	}).Handler)
	r.Use(middleware.Logger)
	r.Use(recoverer)
	r.Use(middleware.Timeout(45 * time.Second))

	log.Infow("new route", "method", "GET", "path", rootEndpoint)
	r.Get(rootEndpoint, a.rootHandler)
	log.Infow("new route", "method", "GET", "path", pingEndpoint)
	r.Get(pingEndpoint, func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte(".")); err != nil {
			log.Warnw("failed to write ping response", "error", err)
		}
	})

	// COFFEE ROUTES
	log.Infow("new route", "method", "GET", "path", coffeeEndpoint)
	r.Get(coffeeEndpoint, a.listCoffeeHandler)
	log.Infow("new route", "method", "POST", "path", coffeeEndpoint)
	r.Post(coffeeEndpoint, a.createCoffeeHandler)
	log.Infow("new route", "method", "GET", "path", coffeeIDEndpoint)
	r.Get(coffeeIDEndpoint, a.coffeeHandler)
	log.Infow("new route", "method", "PUT", "path", coffeeIDEndpoint)
	r.Put(coffeeIDEndpoint, a.setCoffeeHandler)
	log.Infow("new route", "method", "PATCH", "path", coffeeIDEndpoint)
	r.Patch(coffeeIDEndpoint, a.updateCoffeeHandler)
	log.Infow("new route", "method", "DELETE", "path", coffeeIDEndpoint)
	r.Delete(coffeeIDEndpoint, a.deleteCoffeeHandler)

	// USER ROUTES
	log.Infow("new route", "method", "GET", "path", usersEndpoint)
	r.Get(usersEndpoint, a.listUsersHandler)
	log.Infow("new route", "method", "POST", "path", usersEndpoint)
	r.Post(usersEndpoint, a.createUserHandler)
	log.Infow("new route", "method", "GET", "path", userIDEndpoint)
	r.Get(userIDEndpoint, a.userHandler)
	log.Infow("new route", "method", "PUT", "path", userIDEndpoint)
	r.Put(userIDEndpoint, a.setUserHandler)
	log.Infow("new route", "method", "PATCH", "path", userIDEndpoint)
	r.Patch(userIDEndpoint, a.updateUserHandler)
	log.Infow("new route", "method", "DELETE", "path", userIDEndpoint)
	r.Delete(userIDEndpoint, a.deleteUserHandler)

	// STORAGE ROUTES
	if a.objectStorage != nil {
		log.Infow("new route", "method", "POST", "path", objectStorageUploadEndpoint)
		r.Post(objectStorageUploadEndpoint, a.objectStorage.UploadImageWithFormHandler)
		log.Infow("new route", "method", "GET", "path", objectStorageDownloadEndpoint)
		r.Get(objectStorageDownloadEndpoint, a.objectStorage.DownloadImageInlineHandler)
	}
	a.router = r
}
