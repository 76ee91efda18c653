package cart

import (
	"context"
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"cafe-storefront/internal/domain"
)

// Storage persists one opaque snapshot blob per cart owner.
type Storage interface {
	Load(ctx context.Context, owner string) ([]byte, error)
	Save(ctx context.Context, owner string, data []byte) error
	Delete(ctx context.Context, owner string) error
}

type fileStorage struct {
	root string
}

// NewFileStorage stores snapshots as one JSON file per owner under root.
func NewFileStorage(root string) (Storage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &fileStorage{root: root}, nil
}

func (s *fileStorage) path(owner string) string {
	name := base64.RawURLEncoding.EncodeToString([]byte(owner))
	return filepath.Join(s.root, name+".json")
}

func (s *fileStorage) Load(_ context.Context, owner string) ([]byte, error) {
	data, err := os.ReadFile(s.path(owner))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *fileStorage) Save(_ context.Context, owner string, data []byte) error {
	tmp := s.path(owner) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(owner))
}

func (s *fileStorage) Delete(_ context.Context, owner string) error {
	err := os.Remove(s.path(owner))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

type memoryStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryStorage keeps snapshots in memory, for tests and ephemeral runs.
func NewMemoryStorage() Storage {
	return &memoryStorage{blobs: make(map[string][]byte)}
}

func (s *memoryStorage) Load(_ context.Context, owner string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.blobs[owner]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (s *memoryStorage) Save(_ context.Context, owner string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[owner] = cp
	return nil
}

func (s *memoryStorage) Delete(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, owner)
	return nil
}
