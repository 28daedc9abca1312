package xp

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nymstead/wayfarer/internal/domain"
)

func TestAccountCurveThresholds(t *testing.T) {
	curve := NewCurves().ForTrack(domain.TrackAccount)

	// Step to level N costs BaseXP * N * N, so the cumulative totals are
	// 100, 500, 1400, ...
	assert.Equal(t, "0", curve.TotalXPForLevel(0).String())
	assert.Equal(t, "100", curve.TotalXPForLevel(1).String())
	assert.Equal(t, "500", curve.TotalXPForLevel(2).String())
	assert.Equal(t, "1400", curve.TotalXPForLevel(3).String())
}

func TestLevelForTotalXPBoundaries(t *testing.T) {
	curve := NewCurves().ForTrack(domain.TrackAccount)

	tests := []struct {
		total  int64
		expect int
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{499, 1},
		{500, 2},
		{1399, 2},
		{1400, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, curve.LevelForTotalXP(big.NewInt(tt.total)), "total %d", tt.total)
	}

	assert.Equal(t, 0, curve.LevelForTotalXP(big.NewInt(-50)))
	assert.Equal(t, 0, curve.LevelForTotalXP(nil))
}

func TestLevelForTotalXPClampsAtMaxLevel(t *testing.T) {
	curve := NewCurves().ForTrack(domain.TrackAccount)

	huge := new(big.Int).Exp(big.NewInt(10), big.NewInt(40), nil)
	assert.Equal(t, MaxLevel, curve.LevelForTotalXP(huge))
	assert.Equal(t, MaxLevel, curve.MaxLevel())
}

func TestThresholdRoundTrip(t *testing.T) {
	curve := NewCurves().ForTrack(domain.TrackAccount)

	for level := 0; level <= MaxLevel; level += 17 {
		total := curve.TotalXPForLevel(level)
		assert.Equal(t, level, curve.LevelForTotalXP(total), "level %d", level)
		if level > 0 {
			under := new(big.Int).Sub(total, big.NewInt(1))
			assert.Equal(t, level-1, curve.LevelForTotalXP(under), "just under level %d", level)
		}
	}
}

func TestTotalXPForLevelClampsInput(t *testing.T) {
	curve := NewCurves().ForTrack(domain.TrackAccount)

	assert.Equal(t, "0", curve.TotalXPForLevel(-3).String())
	assert.Equal(t,
		curve.TotalXPForLevel(MaxLevel).String(),
		curve.TotalXPForLevel(MaxLevel+50).String())
}

func TestDerivedCurveScaling(t *testing.T) {
	curves := NewCurves()
	account := curves.ForTrack(domain.TrackAccount)

	t.Run("vocation tracks scale by three", func(t *testing.T) {
		woodcutting := curves.ForTrack(domain.VocationTrack(domain.VocationWoodcutting))
		assert.Equal(t, "300", woodcutting.TotalXPForLevel(1).String())
		assert.Equal(t, "1500", woodcutting.TotalXPForLevel(2).String())
	})

	t.Run("combat scales by five", func(t *testing.T) {
		combat := curves.ForTrack(domain.TrackCombat)
		assert.Equal(t, "500", combat.TotalXPForLevel(1).String())
	})

	t.Run("unknown tracks share the account curve", func(t *testing.T) {
		other := curves.ForTrack(domain.Track("cartography"))
		assert.Equal(t, account.TotalXPForLevel(1).String(), other.TotalXPForLevel(1).String())
	})

	t.Run("derivation is cached", func(t *testing.T) {
		first := curves.ForTrack(domain.TrackDungeon)
		second := curves.ForTrack(domain.TrackDungeon)
		assert.Same(t, first, second)
	})
}

func TestRegisterOverridesDerivation(t *testing.T) {
	curves := NewCurves()

	custom := curves.ForTrack(domain.TrackAccount).scaled(7)
	curves.Register(domain.TrackCombat, custom)

	combat := curves.ForTrack(domain.TrackCombat)
	require.Same(t, custom, combat)
	assert.Equal(t, "700", combat.TotalXPForLevel(1).String())
}
