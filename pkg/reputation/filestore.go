package reputation

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps the profile as a yaml document on disk.
type FileStore struct {
	path string

	mu sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrap(err, "creating profile dir")
	}

	return &FileStore{path: path}, nil
}

func (fs *FileStore) Load(ctx context.Context) (*Profile, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	d, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "opening profile file for read")
	}

	if len(d) == 0 {
		return nil, ErrNotFound
	}

	p := &Profile{}
	if err := yaml.Unmarshal(d, p); err != nil {
		return nil, errors.Wrap(err, "unmarshalling profile data")
	}

	return p, nil
}

func (fs *FileStore) Save(ctx context.Context, p *Profile) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	d, err := yaml.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "marshalling profile data")
	}

	f, err := os.OpenFile(fs.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return errors.Wrap(err, "opening profile file for write")
	}
	defer f.Close()

	f.Truncate(0)
	_, err = f.Write(d)
	return err
}

func (fs *FileStore) Clear(ctx context.Context) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing profile file")
	}

	return nil
}

func (fs *FileStore) Close() error {
	return nil
}
