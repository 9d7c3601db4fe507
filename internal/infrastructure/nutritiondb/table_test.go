package nutritiondb

import (
	"strings"
	"testing"
	"unicode"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable_KeysAreNormalized(t *testing.T) {
	table := Default()
	require.Greater(t, len(table.Keys()), 40)

	for _, key := range table.Keys() {
		assert.Equal(t, strings.ToLower(key), key, "key %q must be lowercase", key)
		assert.Equal(t, strings.TrimSpace(key), key)
		for _, r := range key {
			assert.True(t, r < unicode.MaxASCII, "key %q contains non-ASCII rune %q", key, r)
		}
	}
}

func TestDefaultTable_ValuesAreNonNegative(t *testing.T) {
	table := Default()
	for _, key := range table.Keys() {
		e, ok := table.Lookup(key)
		require.True(t, ok)
		assert.GreaterOrEqual(t, e.Calories, 0.0, key)
		assert.GreaterOrEqual(t, e.Protein, 0.0, key)
		assert.GreaterOrEqual(t, e.Carbs, 0.0, key)
		assert.GreaterOrEqual(t, e.Fat, 0.0, key)
		assert.GreaterOrEqual(t, e.Fiber, 0.0, key)
		assert.GreaterOrEqual(t, e.Sodium, 0.0, key)
	}
}

func TestDefaultTable_WhiteRice(t *testing.T) {
	e, ok := Default().Lookup("arroz branco cozido")
	require.True(t, ok)
	assert.Equal(t, 130.0, e.Calories)
}

func TestNew_KeepsOrderAndDropsDuplicates(t *testing.T) {
	table := New([]domain.NutritionEntry{
		{Name: "b", Calories: 1},
		{Name: "a", Calories: 2},
		{Name: "b", Calories: 3},
	})

	assert.Equal(t, []string{"b", "a"}, table.Keys())
	e, _ := table.Lookup("b")
	assert.Equal(t, 1.0, e.Calories)
}

func TestKeys_ReturnsCopy(t *testing.T) {
	table := Default()
	keys := table.Keys()
	keys[0] = "mutated"

	assert.Equal(t, "arroz branco cozido", table.Keys()[0])
}
