package reputation

import (
	"context"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ Store = (*LevelDBStore)(nil)

	profileKey = []byte("profile")
)

// LevelDBStore persists the profile as a msgpack record in leveldb.
type LevelDBStore struct {
	db *leveldb.DB
}

func NewLevelDBStore(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "opening profile db")
	}

	return &LevelDBStore{db: db}, nil
}

func (s *LevelDBStore) Load(ctx context.Context) (*Profile, error) {
	d, err := s.db.Get(profileKey, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "reading profile record")
	}

	p := &Profile{}
	if err := msgpack.Unmarshal(d, p); err != nil {
		return nil, errors.Wrap(err, "unmarshalling profile record")
	}

	return p, nil
}

func (s *LevelDBStore) Save(ctx context.Context, p *Profile) error {
	d, err := msgpack.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "marshalling profile record")
	}

	if err := s.db.Put(profileKey, d, nil); err != nil {
		return errors.Wrap(err, "writing profile record")
	}

	return nil
}

func (s *LevelDBStore) Clear(ctx context.Context) error {
	if err := s.db.Delete(profileKey, nil); err != nil {
		return errors.Wrap(err, "deleting profile record")
	}

	return nil
}

func (s *LevelDBStore) Close() error {
	return s.db.Close()
}
