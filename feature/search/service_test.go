package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_SearchAttachesOwnership(t *testing.T) {
	fx := buildFixture(t, 0)

	var asked []string
	owned := OwnershipFunc(func(ctx context.Context, keys []string) (map[string]Owned, error) {
		asked = keys
		return map[string]Owned{"oracle-counterspell": {Qty: 3, FoilQty: 1}}, nil
	})
	svc := NewService(fx.engine, owned, zap.NewNop())

	page, err := svc.Search(t.Context(), Request{Filters: Parse("c:u t:instant")})
	require.NoError(t, err)
	require.Equal(t, []string{"Azorius Charm", "Counterspell", "Esper Charm", "Opt"}, names(page.Results))
	assert.Len(t, asked, 4)

	require.NotNil(t, page.Results[1].Owned)
	assert.Equal(t, Owned{Qty: 3, FoilQty: 1}, *page.Results[1].Owned)
	require.NotNil(t, page.Results[3].Owned)
	assert.Equal(t, Owned{}, *page.Results[3].Owned)
	assert.Equal(t, DefaultLimit, page.Options.Limit)
}

func TestService_OwnershipFailureKeepsResults(t *testing.T) {
	fx := buildFixture(t, 0)
	owned := OwnershipFunc(func(ctx context.Context, keys []string) (map[string]Owned, error) {
		return nil, errors.New("ledger offline")
	})
	svc := NewService(fx.engine, owned, zap.NewNop())

	page, err := svc.Search(t.Context(), Request{Filters: Parse("name:opt")})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Nil(t, page.Results[0].Owned)
}

func TestService_Card(t *testing.T) {
	fx := buildFixture(t, 0)
	owned := OwnershipFunc(func(ctx context.Context, keys []string) (map[string]Owned, error) {
		return map[string]Owned{keys[0]: {Qty: 2}}, nil
	})
	svc := NewService(fx.engine, owned, nil)

	detail, err := svc.Card(t.Context(), "oracle-counterspell")
	require.NoError(t, err)
	require.NotNil(t, detail.Owned)
	assert.Equal(t, 2, detail.Owned.Qty)
	assert.Len(t, detail.Printings, 3)

	_, err = svc.Card(t.Context(), "missing")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestService_WithoutOwnership(t *testing.T) {
	fx := buildFixture(t, 0)
	svc := NewService(fx.engine, nil, nil)

	page, err := svc.Search(t.Context(), Request{Filters: Parse("name:opt")})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Nil(t, page.Results[0].Owned)
	assert.Same(t, fx.engine, svc.Engine())
}
