package api

const (
	// GET / to get a greeting, useful to check the server is up
	rootEndpoint = "/"
	// GET /ping health probe
	pingEndpoint = "/ping"

	// coffee routes

	// GET /coffee to list every coffee
	// POST /coffee to add a coffee
	coffeeEndpoint = "/coffee"
	// GET /coffee/{id} to get a coffee
	// PUT /coffee/{id} to replace the known fields of a coffee
	// PATCH /coffee/{id} to update some fields of a coffee
	// DELETE /coffee/{id} to delete a coffee
	coffeeIDEndpoint = "/coffee/{id}"

	// user routes

	// GET /users to list every user
	// POST /users to add a user
	usersEndpoint = "/users"
	// GET /users/{id} to get a user
	// PUT /users/{id} to replace the known fields of a user
	// PATCH /users/{id} to update some fields of a user
	// DELETE /users/{id} to delete a user
	userIDEndpoint = "/users/{id}"

	// object storage routes

	// POST /storage to upload coffee photos
	objectStorageUploadEndpoint = "/storage"
	// GET /storage/{objectName} to download a coffee photo
	objectStorageDownloadEndpoint = "/storage/{objectName}"
)
