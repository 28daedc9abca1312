package xp

import (
	"math/big"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nymstead/wayfarer/internal/domain"
)

const (
	// BaseXP and the quadratic per-level increment define the account curve:
	// XP to go from level N-1 to N is BaseXP * N * N.
	BaseXP = 100

	// MaxLevel bounds every generated table.
	MaxLevel = 200

	// derivedCacheSize bounds the derived-curve cache. Eviction is harmless:
	// derivation is deterministic, so a regenerated curve is bit-identical.
	derivedCacheSize = 64
)

// Default scale factors for tracks without an explicit curve. A track absent
// here scales 1:1 with the account curve.
var defaultScaleFactors = map[domain.Track]int64{
	domain.TrackCombat:  5,
	domain.TrackDungeon: 8,
}

const vocationScaleFactor = 3

// Curve maps cumulative experience totals to levels and back. Thresholds are
// arbitrary-precision: late-game totals exceed the 53-bit-safe range.
type Curve struct {
	// thresholds[L] is the cumulative XP required to reach level L.
	// thresholds[0] == 0 and the sequence is strictly increasing after it.
	thresholds []*big.Int
}

// newAccountCurve precomputes the base account table.
func newAccountCurve() *Curve {
	thresholds := make([]*big.Int, MaxLevel+1)
	thresholds[0] = big.NewInt(0)

	cumulative := new(big.Int)
	for level := int64(1); level <= MaxLevel; level++ {
		step := new(big.Int).SetInt64(level)
		step.Mul(step, step)
		step.Mul(step, big.NewInt(BaseXP))
		cumulative.Add(cumulative, step)
		thresholds[level] = new(big.Int).Set(cumulative)
	}

	return &Curve{thresholds: thresholds}
}

// scaled derives a new curve by multiplying every threshold by factor.
func (c *Curve) scaled(factor int64) *Curve {
	if factor <= 1 {
		return c
	}
	f := big.NewInt(factor)
	thresholds := make([]*big.Int, len(c.thresholds))
	for i, t := range c.thresholds {
		thresholds[i] = new(big.Int).Mul(t, f)
	}
	return &Curve{thresholds: thresholds}
}

// MaxLevel is the highest level the curve generates.
func (c *Curve) MaxLevel() int {
	return len(c.thresholds) - 1
}

// TotalXPForLevel returns the cumulative XP threshold for a level. Levels
// outside the table clamp to its ends.
func (c *Curve) TotalXPForLevel(level int) *big.Int {
	if level <= 0 {
		return new(big.Int)
	}
	if level > c.MaxLevel() {
		level = c.MaxLevel()
	}
	return new(big.Int).Set(c.thresholds[level])
}

// LevelForTotalXP returns the highest level whose threshold does not exceed
// the total. Negative totals map to level zero.
func (c *Curve) LevelForTotalXP(total *big.Int) int {
	if total == nil || total.Sign() < 0 {
		return 0
	}
	// First index whose threshold exceeds the total; the level is one below.
	idx := sort.Search(len(c.thresholds), func(i int) bool {
		return c.thresholds[i].Cmp(total) > 0
	})
	return idx - 1
}

// Curves hands out the per-track level tables. Tracks without an explicit
// table derive from the account curve by an integer scale factor; derivation
// is deterministic and cached so the same track always sees the same curve.
type Curves struct {
	account  *Curve
	explicit map[domain.Track]*Curve
	derived  *lru.Cache[domain.Track, *Curve]
}

// NewCurves creates the curve registry with the base account table.
func NewCurves() *Curves {
	derived, _ := lru.New[domain.Track, *Curve](derivedCacheSize)
	return &Curves{
		account:  newAccountCurve(),
		explicit: make(map[domain.Track]*Curve),
		derived:  derived,
	}
}

// Register installs an explicit table for a track, overriding derivation.
func (cs *Curves) Register(track domain.Track, curve *Curve) {
	cs.explicit[track] = curve
}

// ForTrack resolves the curve for a track.
func (cs *Curves) ForTrack(track domain.Track) *Curve {
	if track == domain.TrackAccount {
		return cs.account
	}
	if c, ok := cs.explicit[track]; ok {
		return c
	}
	if c, ok := cs.derived.Get(track); ok {
		return c
	}
	c := cs.account.scaled(scaleFactor(track))
	cs.derived.Add(track, c)
	return c
}

func scaleFactor(track domain.Track) int64 {
	if f, ok := defaultScaleFactors[track]; ok {
		return f
	}
	if strings.HasPrefix(string(track), "vocation:") {
		return vocationScaleFactor
	}
	return 1
}
