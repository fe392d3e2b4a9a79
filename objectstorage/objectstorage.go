// Package objectstorage stores the coffee photos uploaded by the clients.
// Objects are content addressed and kept in the database, with an LRU cache
// in front of the reads.
package objectstorage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vocdoni/coffee-backend/db"
)

var (
	// ErrorObjectNotFound is returned when the requested object is not found in storage.
	ErrorObjectNotFound = fmt.Errorf("object not found")
	// ErrorInvalidObjectID is returned when the provided object ID is empty.
	ErrorInvalidObjectID = fmt.Errorf("invalid object ID")
	// ErrorFileTypeNotSupported is returned when the file type is not in the supported types list.
	ErrorFileTypeNotSupported = fmt.Errorf("file type not supported")
	// ErrorFileTooLarge is returned when the file exceeds MaxObjectSize.
	ErrorFileTooLarge = fmt.Errorf("file too large")
)

// ObjectFileType represents the MIME type of a stored object file.
type ObjectFileType string

const (
	// FileTypeJPEG represents the JPEG image MIME type.
	FileTypeJPEG ObjectFileType = "image/jpeg"
	// FileTypePNG represents the PNG image MIME type.
	FileTypePNG ObjectFileType = "image/png"

	// MaxObjectSize is the maximum size of a single object, in bytes.
	MaxObjectSize = 8 << 20
	// DefaultCacheSize is the number of objects kept in memory.
	DefaultCacheSize = 256
)

// DefaultSupportedFileTypes is a map of file types that are supported by default.
var DefaultSupportedFileTypes = map[ObjectFileType]bool{
	FileTypeJPEG: true,
	FileTypePNG:  true,
}

// Config holds the configuration for the object storage client. CacheSize
// defaults to DefaultCacheSize.
type Config struct {
	DB        db.Database
	ServerURL string
	CacheSize int
}

// Client provides functionality for storing and retrieving objects.
type Client struct {
	db             db.Database
	supportedTypes map[ObjectFileType]bool
	cache          *lru.Cache[string, db.Object]
	ServerURL      string
}

// New initializes a new object storage Client with the provided configuration.
func New(conf *Config) (*Client, error) {
	if conf == nil || conf.DB == nil {
		return nil, fmt.Errorf("invalid object storage configuration")
	}
	size := conf.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, db.Object](size)
	if err != nil {
		return nil, fmt.Errorf("cannot create cache: %w", err)
	}
	return &Client{
		db:             conf.DB,
		supportedTypes: DefaultSupportedFileTypes,
		cache:          cache,
		ServerURL:      strings.TrimSuffix(conf.ServerURL, "/"),
	}, nil
}

// Get retrieves an object from storage by its ID. It first checks the cache,
// and if not found, retrieves it from the database.
func (osc *Client) Get(ctx context.Context, objectID string) (*db.Object, error) {
	if objectID == "" {
		return nil, ErrorInvalidObjectID
	}
	if object, ok := osc.cache.Get(objectID); ok {
		return &object, nil
	}
	object, err := osc.db.Object(ctx, objectID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrorObjectNotFound
		}
		return nil, fmt.Errorf("error retrieving object: %w", err)
	}
	osc.cache.Add(objectID, *object)
	return object, nil
}

// Put stores the image read from data. The object ID is derived from the
// content, so uploading the same image twice results in the same object. It
// returns the object name: the object ID followed by the file extension.
func (osc *Client) Put(ctx context.Context, data io.Reader) (string, error) {
	buff, err := io.ReadAll(io.LimitReader(data, MaxObjectSize+1))
	if err != nil {
		return "", fmt.Errorf("cannot read file: %w", err)
	}
	if len(buff) > MaxObjectSize {
		return "", ErrorFileTooLarge
	}
	// only images are allowed
	filetype := http.DetectContentType(buff)
	if !osc.supportedTypes[ObjectFileType(filetype)] {
		return "", fmt.Errorf("%w: %s", ErrorFileTypeNotSupported, filetype)
	}
	objectID := calculateObjectID(buff)
	if err := osc.db.SetObject(ctx, objectID, filetype, buff); err != nil {
		return "", fmt.Errorf("cannot set object: %w", err)
	}
	osc.cache.Remove(objectID)
	return fmt.Sprintf("%s.%s", objectID, strings.TrimPrefix(filetype, "image/")), nil
}

// calculateObjectID returns the hex encoded first 12 bytes of the md5 hash of
// data.
func calculateObjectID(data []byte) string {
	hash := md5.Sum(data)
	return hex.EncodeToString(hash[:12])
}
