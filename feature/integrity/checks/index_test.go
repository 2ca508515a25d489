package checks

import (
	"testing"

	"mana-vault/feature/index"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckIndex_Healthy(t *testing.T) {
	db := builtIndex(t)

	report, err := CheckIndex(t.Context(), db)
	require.NoError(t, err)

	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, int64(2), report.Cards)
	assert.Equal(t, int64(4), report.Printings)
	assert.Equal(t, int64(2), report.Documents)
	assert.Empty(t, report.Problems)
	require.NotNil(t, report.Models)
	assert.True(t, report.Models.Matched)
}

func TestCheckIndex_Unavailable(t *testing.T) {
	report, err := CheckIndex(t.Context(), newIndexDB(t))
	require.NoError(t, err)

	assert.Equal(t, "unavailable", report.Status)
	assert.ElementsMatch(t, index.RequiredTables, report.MissingTables)
}

func TestCheckIndex_BrokenInvariants(t *testing.T) {
	db := builtIndex(t)
	require.NoError(t, db.Exec("DELETE FROM "+index.TablePrintings+" WHERE printing_id = ?", "opt-d").Error)
	require.NoError(t, db.Exec("INSERT INTO "+index.TablePrintings+" (printing_id, canonical_key) VALUES ('ghost', 'nobody')").Error)
	require.NoError(t, db.Exec("DELETE FROM "+index.TableFTS).Error)

	report, err := CheckIndex(t.Context(), db)
	require.NoError(t, err)

	assert.Equal(t, "failed", report.Status)
	assert.Equal(t, int64(1), report.CardsWithoutPrintings)
	assert.Equal(t, int64(1), report.MissingRepresentatives)
	assert.Equal(t, int64(1), report.OrphanPrintings)
	assert.Equal(t, int64(0), report.Documents)
	assert.Len(t, report.Problems, 4)
}

func TestCheckIndex_NilDB(t *testing.T) {
	_, err := CheckIndex(t.Context(), nil)
	assert.Error(t, err)
}
