package objectstorage

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/vocdoni/coffee-backend/api/apicommon"
	apierrors "github.com/vocdoni/coffee-backend/errors"
	"go.vocdoni.io/dvote/log"
)

// isObjectNameRgx is a regular expression to match object names.
var isObjectNameRgx = regexp.MustCompile(`^([a-f0-9]{24})\.(jpg|jpeg|png)$`)

// UploadImageWithFormHandler stores every image sent in the "file" field of
// a multipart form and writes the URLs to download them as {"urls": [...]}.
func (osc *Client) UploadImageWithFormHandler(w http.ResponseWriter, r *http.Request) {
	// 32 MB is the default used by FormFile() function
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		apierrors.ErrStorageInvalidObject.Withf("could not parse form: %v", err).Write(w)
		return
	}
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		apierrors.ErrStorageInvalidObject.With("no files found").Write(w)
		return
	}
	returnURLs := make([]string, 0, len(files))
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			apierrors.ErrStorageInvalidObject.Withf("cannot open file %s", fileHeader.Filename).Write(w)
			return
		}
		objectName, err := osc.Put(r.Context(), file)
		if cerr := file.Close(); cerr != nil {
			log.Warnw("cannot close uploaded file", "file", fileHeader.Filename, "error", cerr)
		}
		if err != nil {
			if errors.Is(err, ErrorFileTypeNotSupported) || errors.Is(err, ErrorFileTooLarge) {
				apierrors.ErrStorageInvalidObject.Withf("%s: %v", fileHeader.Filename, err).Write(w)
				return
			}
			apierrors.ErrInternalStorageError.WithCause(err).Write(w)
			return
		}
		returnURLs = append(returnURLs, objectURL(osc.ServerURL, objectName))
	}
	apicommon.HTTPWriteJSON(w, map[string][]string{"urls": returnURLs})
}

// DownloadImageInlineHandler writes the requested image inline, so browsers
// display it directly.
func (osc *Client) DownloadImageInlineHandler(w http.ResponseWriter, r *http.Request) {
	objectName := chi.URLParam(r, "objectName")
	if objectName == "" {
		apierrors.ErrMalformedURLParam.With("objectName is required").Write(w)
		return
	}
	objectID, ok := objectIDfromName(objectName)
	if !ok {
		apierrors.ErrStorageInvalidObject.With("invalid objectName").Write(w)
		return
	}
	object, err := osc.Get(r.Context(), objectID)
	if err != nil {
		if errors.Is(err, ErrorObjectNotFound) {
			apierrors.ErrStorageObjectNotFound.Write(w)
			return
		}
		apierrors.ErrInternalStorageError.WithCause(err).Write(w)
		return
	}
	w.Header().Set("Content-Type", object.ContentType)
	w.Header().Set("Content-Disposition", "inline")
	if _, err := w.Write(object.Data); err != nil {
		log.Warnw("cannot write object", "object", objectID, "error", err)
	}
}

// objectURL returns the URL for the object with the given name.
func objectURL(baseURL, objectName string) string {
	return fmt.Sprintf("%s/storage/%s", baseURL, objectName)
}

// objectIDfromName returns the objectID from the given object name. If the
// name is not a valid object name, it returns an empty string and false.
func objectIDfromName(name string) (string, bool) {
	objectID := isObjectNameRgx.FindStringSubmatch(name)
	if len(objectID) != 3 {
		return "", false
	}
	return objectID[1], true
}
