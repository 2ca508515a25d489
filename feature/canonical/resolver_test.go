package canonical

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockIndex struct {
	mock.Mock
}

func (m *mockIndex) CanonicalKeyFor(ctx context.Context, printingID string) (string, bool, error) {
	args := m.Called(ctx, printingID)
	return args.String(0), args.Bool(1), args.Error(2)
}

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Identity(ctx context.Context, printingID string) (Identity, bool, error) {
	args := m.Called(ctx, printingID)
	return args.Get(0).(Identity), args.Bool(1), args.Error(2)
}

func TestResolver_KeyFor(t *testing.T) {
	ctx := context.Background()

	t.Run("Index Hit", func(t *testing.T) {
		idx := new(mockIndex)
		src := new(mockSource)
		idx.On("CanonicalKeyFor", ctx, "p1").Return("oracle-1", true, nil)

		key, err := NewResolver(idx, src, nil).KeyFor(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "oracle-1", key)
		src.AssertNotCalled(t, "Identity", mock.Anything, mock.Anything)
	})

	t.Run("Index Miss Falls Back To Upstream", func(t *testing.T) {
		idx := new(mockIndex)
		src := new(mockSource)
		idx.On("CanonicalKeyFor", ctx, "p2").Return("", false, nil)
		src.On("Identity", ctx, "p2").Return(Identity{PrintingID: "p2", Name: "Opt", Layout: "normal"}, true, nil)

		key, err := NewResolver(idx, src, nil).KeyFor(ctx, "p2")
		require.NoError(t, err)
		assert.Equal(t, "opt::normal::front", key)
	})

	t.Run("Index Error Falls Back To Upstream", func(t *testing.T) {
		idx := new(mockIndex)
		src := new(mockSource)
		idx.On("CanonicalKeyFor", ctx, "p3").Return("", false, errors.New("no such table"))
		src.On("Identity", ctx, "p3").Return(Identity{CardOracleID: "oracle-3"}, true, nil)

		key, err := NewResolver(idx, src, nil).KeyFor(ctx, "p3")
		require.NoError(t, err)
		assert.Equal(t, "oracle-3", key)
	})

	t.Run("Unknown Printing", func(t *testing.T) {
		idx := new(mockIndex)
		src := new(mockSource)
		idx.On("CanonicalKeyFor", ctx, "nope").Return("", false, nil)
		src.On("Identity", ctx, "nope").Return(Identity{}, false, nil)

		_, err := NewResolver(idx, src, nil).KeyFor(ctx, "nope")
		assert.ErrorIs(t, err, ErrPrintingNotFound)
	})

	t.Run("Upstream Error", func(t *testing.T) {
		src := new(mockSource)
		src.On("Identity", ctx, "p4").Return(Identity{}, false, errors.New("disk I/O error"))

		_, err := NewResolver(nil, src, nil).KeyFor(ctx, "p4")
		assert.EqualError(t, err, "disk I/O error")
	})

	t.Run("No Collaborators", func(t *testing.T) {
		_, err := NewResolver(nil, nil, nil).KeyFor(ctx, "p5")
		assert.ErrorIs(t, err, ErrPrintingNotFound)
	})
}
