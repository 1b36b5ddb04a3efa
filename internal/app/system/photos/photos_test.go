package photos

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
)

// memBlobs is an in-memory Blobs.
type memBlobs struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemBlobs() *memBlobs { return &memBlobs{files: map[string][]byte{}} }

func (m *memBlobs) Put(_ context.Context, path string, r io.Reader, _ *storage.PutOptions) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.files[path] = b
	m.mu.Unlock()
	return nil
}

func (m *memBlobs) Get(_ context.Context, path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memBlobs) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	delete(m.files, path)
	m.mu.Unlock()
	return nil
}

var pngData = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

type upload struct {
	name, ct string
	data     []byte
}

// fileHeaders builds multipart file headers the way net/http parses them.
func fileHeaders(t *testing.T, files ...upload) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="photos"; filename="` + f.name + `"`}
		h["Content-Type"] = []string{f.ct}
		p, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		p.Write(f.data)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["photos"]
}

func TestCheck(t *testing.T) {
	l := DefaultLimits()
	tests := []struct {
		name    string
		file    string
		size    int64
		ct      string
		wantMsg string
	}{
		{"jpeg", "avant.jpg", 1000, "image/jpeg", ""},
		{"jpeg upper ext", "AVANT.JPEG", 1000, "image/jpeg", ""},
		{"png no content type", "a.png", 1000, "", ""},
		{"webp", "a.webp", 1000, "image/webp", ""},
		{"too large", "gros.jpg", DefaultMaxBytes + 1, "image/jpeg", "gros.jpg est trop volumineux (max 5 Mo)"},
		{"exactly max", "ok.jpg", DefaultMaxBytes, "image/jpeg", ""},
		{"pdf", "carte-grise.pdf", 1000, "application/pdf", "carte-grise.pdf n'est pas une image valide"},
		{"gif", "a.gif", 1000, "image/gif", "a.gif n'est pas une image valide"},
		{"mismatched type", "a.png", 1000, "text/html", "a.png n'est pas une image valide"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.Check(tt.file, tt.size, tt.ct)
			got := ""
			if err != nil {
				got = err.Error()
			}
			if got != tt.wantMsg {
				t.Errorf("Check() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestNotImageError_IsNotAllowed(t *testing.T) {
	err := DefaultLimits().Check("a.pdf", 1, "application/pdf")
	if !errors.Is(err, ErrNotAllowed) {
		t.Errorf("errors.Is(%v, ErrNotAllowed) = false", err)
	}
}

func TestNewName(t *testing.T) {
	now := time.UnixMilli(1760000000000)
	name := NewName("Photo.JPG", now)
	if !strings.HasPrefix(name, "1760000000000-") || !strings.HasSuffix(name, ".jpg") {
		t.Errorf("NewName() = %q", name)
	}
	if len(name) != len("1760000000000-")+36+len(".jpg") {
		t.Errorf("NewName() = %q, unexpected length", name)
	}
}

func TestSaveAll(t *testing.T) {
	blobs := newMemBlobs()
	files := fileHeaders(t,
		upload{"avant.png", "image/png", pngData},
		upload{"arriere.png", "image/png", pngData},
	)

	names, err := DefaultLimits().SaveAll(context.Background(), blobs, files, time.Now())
	if err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}
	if len(names) != 2 || len(blobs.files) != 2 {
		t.Fatalf("SaveAll() names = %v, stored %d", names, len(blobs.files))
	}

	data, err := Read(context.Background(), blobs, names[0])
	if err != nil || !bytes.Equal(data, pngData) {
		t.Errorf("Read() = %d bytes, %v", len(data), err)
	}
}

func TestSaveAll_RollsBack(t *testing.T) {
	blobs := newMemBlobs()
	files := fileHeaders(t,
		upload{"avant.png", "image/png", pngData},
		upload{"faux.png", "image/png", []byte("<html>not an image</html>")},
	)

	_, err := DefaultLimits().SaveAll(context.Background(), blobs, files, time.Now())
	var notImage *NotImageError
	if !errors.As(err, &notImage) || notImage.Name != "faux.png" {
		t.Fatalf("SaveAll() error = %v, want NotImageError for faux.png", err)
	}
	if len(blobs.files) != 0 {
		t.Errorf("stored %d files after failure, want 0", len(blobs.files))
	}
}

func TestSaveAll_TooMany(t *testing.T) {
	l := Limits{MaxFiles: 1, MaxBytes: DefaultMaxBytes}
	files := fileHeaders(t,
		upload{"a.png", "image/png", pngData},
		upload{"b.png", "image/png", pngData},
	)
	_, err := l.SaveAll(context.Background(), newMemBlobs(), files, time.Now())
	if err == nil || err.Error() != "Maximum 1 photos autorisées" {
		t.Errorf("SaveAll() error = %v", err)
	}
}

func TestRequestLimit(t *testing.T) {
	if got := DefaultLimits().RequestLimit(); got != 10*5<<20+1<<20 {
		t.Errorf("RequestLimit() = %d", got)
	}
}
