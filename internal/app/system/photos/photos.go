// Package photos validates and stores vehicle photos uploaded with a
// trade-in request. The API handler and the form wizard share it.
package photos

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
)

// Upload limits.
const (
	DefaultMaxFiles = 10
	DefaultMaxBytes = 5 << 20
)

// Prefix is the storage folder for photos.
const Prefix = "photos/"

// TooManyError is returned when more than the allowed number of photos is sent.
type TooManyError struct{ Max int }

func (e *TooManyError) Error() string {
	return fmt.Sprintf("Maximum %d photos autorisées", e.Max)
}

// ErrNotAllowed is the API-level rejection of a non-image upload.
var ErrNotAllowed = errors.New("Seules les images sont autorisées")

// TooLargeError reports a photo over the size limit.
type TooLargeError struct {
	Name     string
	MaxBytes int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s est trop volumineux (max %d Mo)", e.Name, e.MaxBytes>>20)
}

// NotImageError reports a file that is not a jpeg, png or webp image.
type NotImageError struct{ Name string }

func (e *NotImageError) Error() string {
	return e.Name + " n'est pas une image valide"
}

// Is lets errors.Is(err, ErrNotAllowed) match any NotImageError.
func (e *NotImageError) Is(target error) bool {
	return target == ErrNotAllowed
}

var allowedExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// Blobs is the subset of the upload storage photos need.
type Blobs interface {
	Put(ctx context.Context, path string, r io.Reader, opts *storage.PutOptions) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

// Limits bounds one request's photos.
type Limits struct {
	MaxFiles int
	MaxBytes int64
}

// DefaultLimits returns the standard 10 x 5 MB limits.
func DefaultLimits() Limits {
	return Limits{MaxFiles: DefaultMaxFiles, MaxBytes: DefaultMaxBytes}
}

// RequestLimit returns the body size limit for a multipart request
// carrying the maximum number of photos plus form fields.
func (l Limits) RequestLimit() int64 {
	return int64(l.MaxFiles)*l.MaxBytes + 1<<20
}

// Check validates one file's name, size and declared content type.
func (l Limits) Check(name string, size int64, contentType string) error {
	if size > l.MaxBytes {
		return &TooLargeError{Name: name, MaxBytes: l.MaxBytes}
	}
	want, ok := allowedExt[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return &NotImageError{Name: name}
	}
	if ct := mediaType(contentType); ct != "" && ct != want && !(want == "image/jpeg" && ct == "image/jpg") {
		return &NotImageError{Name: name}
	}
	return nil
}

func mediaType(ct string) string {
	ct, _, _ = strings.Cut(ct, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}

// NewName returns the stored name for an upload: "<unix-ms>-<uuid><ext>".
func NewName(original string, now time.Time) string {
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), uuid.NewString(), strings.ToLower(filepath.Ext(original)))
}

// Path returns the storage path of a stored photo name.
func Path(name string) string {
	return Prefix + name
}

// ContentType returns the image MIME type for a stored name.
func ContentType(name string) string {
	if ct, ok := allowedExt[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Save checks and stores one uploaded file, sniffing its content to make
// sure it is really an image. It returns the stored name.
func (l Limits) Save(ctx context.Context, blobs Blobs, fh *multipart.FileHeader, now time.Time) (string, error) {
	if err := l.Check(fh.Filename, fh.Size, fh.Header.Get("Content-Type")); err != nil {
		return "", err
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if !strings.HasPrefix(http.DetectContentType(head), "image/") {
		return "", &NotImageError{Name: fh.Filename}
	}

	name := NewName(fh.Filename, now)
	body := io.MultiReader(bytes.NewReader(head), f)
	if err := blobs.Put(ctx, Path(name), body, &storage.PutOptions{ContentType: ContentType(name)}); err != nil {
		return "", fmt.Errorf("store photo: %w", err)
	}
	return name, nil
}

// SaveAll stores every file or none: on the first failure the photos
// already stored are deleted.
func (l Limits) SaveAll(ctx context.Context, blobs Blobs, files []*multipart.FileHeader, now time.Time) ([]string, error) {
	if len(files) > l.MaxFiles {
		return nil, &TooManyError{Max: l.MaxFiles}
	}
	names := make([]string, 0, len(files))
	for _, fh := range files {
		name, err := l.Save(ctx, blobs, fh, now)
		if err != nil {
			Remove(ctx, blobs, names)
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// Remove deletes stored photos, ignoring errors.
func Remove(ctx context.Context, blobs Blobs, names []string) {
	for _, name := range names {
		_ = blobs.Delete(ctx, Path(name))
	}
}

// Read loads a stored photo into memory.
func Read(ctx context.Context, blobs Blobs, name string) ([]byte, error) {
	rc, err := blobs.Get(ctx, Path(name))
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
