package level

import (
	"math/rand/v2"

	dferrors "github.com/matzehuels/dungeonforge/pkg/errors"
)

const (
	// DefaultOuterBudget is the number of graph picks per Generate call.
	DefaultOuterBudget = 10

	// DefaultInnerBudget is the number of rebuild attempts per graph pick.
	DefaultInnerBudget = 1000

	// DefaultMaxCorridorFanOut caps the corridor children of a single room.
	DefaultMaxCorridorFanOut = 3

	// DefaultSeed seeds NewRand when callers have no preference.
	DefaultSeed = uint64(42)
)

// Options bounds the search. Zero fields take the defaults.
type Options struct {
	OuterBudget       int `json:"outer_budget,omitempty" yaml:"outer_budget,omitempty"`
	InnerBudget       int `json:"inner_budget,omitempty" yaml:"inner_budget,omitempty"`
	MaxCorridorFanOut int `json:"max_corridor_fan_out,omitempty" yaml:"max_corridor_fan_out,omitempty"`
}

// SetDefaults fills zero fields.
func (o *Options) SetDefaults() {
	if o.OuterBudget == 0 {
		o.OuterBudget = DefaultOuterBudget
	}
	if o.InnerBudget == 0 {
		o.InnerBudget = DefaultInnerBudget
	}
	if o.MaxCorridorFanOut == 0 {
		o.MaxCorridorFanOut = DefaultMaxCorridorFanOut
	}
}

// Validate rejects negative budgets. Call SetDefaults first.
func (o Options) Validate() error {
	switch {
	case o.OuterBudget < 1:
		return dferrors.New(dferrors.ErrCodeInvalidConfig, "outer budget must be positive, got %d", o.OuterBudget)
	case o.InnerBudget < 1:
		return dferrors.New(dferrors.ErrCodeInvalidConfig, "inner budget must be positive, got %d", o.InnerBudget)
	case o.MaxCorridorFanOut < 1:
		return dferrors.New(dferrors.ErrCodeInvalidConfig, "max corridor fan-out must be positive, got %d", o.MaxCorridorFanOut)
	}
	return nil
}

// MaxAttempts is the upper bound on placement attempts for one Generate call.
func (o Options) MaxAttempts() int { return o.OuterBudget * o.InnerBudget }

// Rand is the random source threaded through every choice the search makes.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a deterministic PCG-backed generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
