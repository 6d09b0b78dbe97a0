package defense

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnchairsociety/heroforge/internal/class"
	"github.com/lawnchairsociety/heroforge/internal/content"
	"github.com/lawnchairsociety/heroforge/internal/stats"
)

func testCalculator() *Calculator {
	return NewCalculator(content.NewMemoryPack(
		&class.Definition{ID: "alpha", HitDie: 8, Defenses: class.Defenses{Fortitude: 2}},
		&class.Definition{ID: "beta", HitDie: 8, Defenses: class.Defenses{Fortitude: 5, Reflex: 1}},
		&class.Definition{ID: "scout", HitDie: 8, Defenses: class.Defenses{Reflex: 2, Fortitude: 1}},
		&class.Definition{ID: "nonheroic", Nonheroic: true},
	))
}

func TestMulticlassBonusesDoNotStack(t *testing.T) {
	got, err := testCalculator().Calculate(context.Background(), 2, stats.Modifiers{},
		[]class.Entry{{ClassID: "alpha", Level: 1}, {ClassID: "beta", Level: 1}}, false, Adjustments{})
	require.NoError(t, err)

	assert.Equal(t, 10+2+5, got.Fortitude.Base)
	assert.Equal(t, 10+2+1, got.Reflex.Base)
	assert.Equal(t, 10+2, got.Will.Base)
}

func TestAbilityModifiers(t *testing.T) {
	mods := stats.Modifiers{Str: 1, Dex: 3, Con: 2, Wis: -1}
	entries := []class.Entry{{ClassID: "scout", Level: 1}}

	living, err := testCalculator().Calculate(context.Background(), 1, mods, entries, false, Adjustments{})
	require.NoError(t, err)
	assert.Equal(t, 10+1+1+2, living.Fortitude.Total, "biological uses max(str, con)")
	assert.Equal(t, 10+1+2+3, living.Reflex.Total)
	assert.Equal(t, 10+1+0-1, living.Will.Total)

	droid, err := testCalculator().Calculate(context.Background(), 1, mods, entries, true, Adjustments{})
	require.NoError(t, err)
	assert.Equal(t, 10+1+1+1, droid.Fortitude.Total, "mechanical uses str only")
	assert.Equal(t, living.Reflex, droid.Reflex)
}

func TestHeroicLevelOnly(t *testing.T) {
	entries := []class.Entry{{ClassID: "scout", Level: 3}, {ClassID: "nonheroic", Level: 5}}
	got, err := testCalculator().Calculate(context.Background(), 3, stats.Modifiers{}, entries, false, Adjustments{})
	require.NoError(t, err)
	assert.Equal(t, 10+3+2, got.Reflex.Base)
}

func TestAdjustments(t *testing.T) {
	got, err := testCalculator().Calculate(context.Background(), 0, stats.Modifiers{}, nil, false,
		Adjustments{Fortitude: 2, Reflex: -3, Will: 1})
	require.NoError(t, err)

	assert.Equal(t, Score{Base: 10, Total: 12, Adjustment: 2}, got.Fortitude)
	assert.Equal(t, Score{Base: 10, Total: 7, Adjustment: -3}, got.Reflex)
	assert.Equal(t, Score{Base: 10, Total: 11, Adjustment: 1}, got.Will)
}

func TestTotalsClampToOne(t *testing.T) {
	got, err := testCalculator().Calculate(context.Background(), 0, stats.Modifiers{Dex: -5}, nil, false,
		Adjustments{Reflex: -40, Will: -9, Fortitude: -10})
	require.NoError(t, err)

	assert.Equal(t, 1, got.Reflex.Total)
	assert.Equal(t, 5, got.Reflex.Base)
	assert.Equal(t, 1, got.Will.Total)
	assert.Equal(t, 1, got.Fortitude.Total)
}

func TestUnknownClass(t *testing.T) {
	_, err := testCalculator().Calculate(context.Background(), 1, stats.Modifiers{},
		[]class.Entry{{ClassID: "mystery", Level: 1}}, false, Adjustments{})
	assert.ErrorIs(t, err, content.ErrConfiguration)
}
