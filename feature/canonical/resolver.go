package canonical

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrPrintingNotFound is returned when neither the index nor the upstream
// snapshot knows a printing id.
var ErrPrintingNotFound = errors.New("printing not found")

// IndexLookup reads the canonical key recorded for a printing in the index store.
type IndexLookup interface {
	CanonicalKeyFor(ctx context.Context, printingID string) (string, bool, error)
}

// IdentitySource reads the identity fields of one printing from the upstream snapshot.
type IdentitySource interface {
	Identity(ctx context.Context, printingID string) (Identity, bool, error)
}

// Resolver resolves a single printing id to its canonical key outside of a rebuild.
type Resolver struct {
	index  IndexLookup
	source IdentitySource
	logger *zap.Logger
}

// NewResolver creates a resolver. Either collaborator may be nil.
func NewResolver(index IndexLookup, source IdentitySource, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{index: index, source: source, logger: logger}
}

// KeyFor returns the canonical key of printingID.
// The index store is consulted first; when it is unavailable or does not know the
// printing, the key is computed from the upstream row with Key.
func (r *Resolver) KeyFor(ctx context.Context, printingID string) (string, error) {
	if r.index != nil {
		key, ok, err := r.index.CanonicalKeyFor(ctx, printingID)
		switch {
		case err != nil:
			r.logger.Debug("Index lookup failed, falling back to upstream",
				zap.String("printing_id", printingID), zap.Error(err))
		case ok:
			return key, nil
		}
	}

	if r.source == nil {
		return "", ErrPrintingNotFound
	}

	identity, ok, err := r.source.Identity(ctx, printingID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrPrintingNotFound
	}
	return Key(identity), nil
}
