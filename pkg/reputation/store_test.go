package reputation

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *Profile {
	return &Profile{
		Name:       "Ada",
		Address:    NewAddress(),
		Reputation: 150,
		Level:      "Novice",
		Badges: []Badge{
			{ID: "b1", Name: "First Steps", Category: CategoryAchievement, Date: time.Now().UTC()},
		},
		RegistrationDate: time.Now().UTC(),
	}
}

func testStoreRoundTrip(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	p := testProfile()
	require.NoError(t, s.Save(ctx, p))

	got, err := s.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, p.Address, got.Address)
	assert.Equal(t, p.Reputation, got.Reputation)
	require.Len(t, got.Badges, 1)
	assert.Equal(t, "b1", got.Badges[0].ID)

	require.NoError(t, s.Clear(ctx))

	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStore(t *testing.T) {
	testStoreRoundTrip(t, NewMemStore())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "profile.yaml"))
	require.NoError(t, err)
	defer s.Close()

	testStoreRoundTrip(t, s)
}

func TestLevelDBStore(t *testing.T) {
	s, err := NewLevelDBStore(filepath.Join(t.TempDir(), "profile.db"))
	require.NoError(t, err)
	defer s.Close()

	testStoreRoundTrip(t, s)
}

func TestMemStoreIsolation(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	p := testProfile()
	require.NoError(t, s.Save(ctx, p))

	// mutating the caller's copy must not leak into the store
	p.Reputation = 9999

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), got.Reputation)
}
