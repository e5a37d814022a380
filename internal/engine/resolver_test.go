package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gridiron-sim/internal/rng"
	"github.com/stitts-dev/gridiron-sim/internal/tactics"
)

func TestYardBounds(t *testing.T) {
	tests := []struct {
		class    tactics.PlayClass
		min, max int
	}{
		{tactics.ClassDeepPass, -5, 45},
		{tactics.ClassShortPass, -3, 25},
		{tactics.ClassRun, -2, 15},
	}
	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			min, max := YardBounds(tt.class)
			assert.Equal(t, tt.min, min)
			assert.Equal(t, tt.max, max)
		})
	}
}

func TestForceRatio(t *testing.T) {
	tests := []struct {
		name     string
		off, def float64
		want     float64
	}{
		{"even", 50, 50, 1},
		{"double", 100, 50, 2},
		{"both zero", 0, 0, 1},
		{"defense zero", 80, 0, maxForceRatio},
		{"offense zero", 0, 80, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := forceRatio(tt.off, tt.def)
			assert.Equal(t, tt.want, got)
			assert.False(t, math.IsInf(got, 0))
		})
	}
}

func TestResolve_YardageWithinBounds(t *testing.T) {
	tests := []struct {
		name     string
		offSkill float64
		defSkill float64
	}{
		{"even", 60, 60},
		{"dominant offense", 100, 0},
		{"dominant defense", 0, 100},
		{"zero force both sides", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offense := flatTeam(t, "Off", tt.offSkill, 50)
			defense := flatTeam(t, "Def", tt.defSkill, 50)
			r := NewResolver(rng.New(17), 0)
			state := NewMatchState()

			for i := 0; i < 500; i++ {
				state.Down = 1 + i%4
				state.OffenseYardLine = 1 + i%99
				out := r.Resolve(offense, defense, &state, i%21, 0)

				min, max := YardBounds(out.Class)
				require.GreaterOrEqual(t, out.Yards, min)
				require.LessOrEqual(t, out.Yards, max)
				require.False(t, math.IsNaN(out.Expected))
				require.False(t, math.IsInf(out.Expected, 0))
			}
		})
	}
}

func TestResolve_UpdatesCurrentStrategies(t *testing.T) {
	offense := flatTeam(t, "Off", 70, 30)
	defense := flatTeam(t, "Def", 70, 80)
	state := NewMatchState()

	out := NewResolver(rng.New(5), 0).Resolve(offense, defense, &state, 0, 0)
	assert.Equal(t, out.OffenseStrategy, offense.CurrentStrategy)
	assert.Equal(t, out.DefenseStrategy, defense.CurrentStrategy)
	assert.Equal(t, out.OffenseVector.Classify(), out.Class)
}

func TestForce_DefendersOnlyCountOnDefense(t *testing.T) {
	team := flatTeam(t, "Solo", 80, 50)
	r := NewResolver(rng.New(1), 0)
	v := tactics.PlayVector{BlConc: 0, EjEspec: 0}

	// With both responsibility weights zeroed only kickers and defenders remain.
	kickerOnly := r.Force(team, v, false)
	withDefenders := r.Force(team, v, true)
	assert.Greater(t, kickerOnly, 0.0)
	assert.InDelta(t, kickerOnly*(1+2*0.8/0.1), withDefenders, 1e-6)
}
