package reputation

import "context"

// Store persists the single session profile. Load returns ErrNotFound when
// nothing has been saved or the profile was cleared.
type Store interface {
	Load(ctx context.Context) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
	Clear(ctx context.Context) error
	Close() error
}
