package testutil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/dalemusser/waffle/pantry/storage"
)

// MemBlobs is an in-memory upload storage for handler tests.
type MemBlobs struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemBlobs returns an empty MemBlobs.
func NewMemBlobs() *MemBlobs {
	return &MemBlobs{files: map[string][]byte{}}
}

// Put stores the content of r under path.
func (m *MemBlobs) Put(_ context.Context, path string, r io.Reader, _ *storage.PutOptions) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.files[path] = b
	m.mu.Unlock()
	return nil
}

// Get opens the blob stored under path.
func (m *MemBlobs) Get(_ context.Context, path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[path]
	if !ok {
		return nil, errors.New("blob not found: " + path)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

// Delete removes path.
func (m *MemBlobs) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	delete(m.files, path)
	m.mu.Unlock()
	return nil
}

// Paths lists the stored paths in order.
func (m *MemBlobs) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
