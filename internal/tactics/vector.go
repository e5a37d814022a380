package tactics

import (
	"math"

	"github.com/stitts-dev/gridiron-sim/internal/football"
	"github.com/stitts-dev/gridiron-sim/internal/rng"
)

// PlayClass is the archetype a play vector resolves to.
type PlayClass int

const (
	ClassRun PlayClass = iota
	ClassShortPass
	ClassDeepPass
)

func (c PlayClass) String() string {
	switch c {
	case ClassRun:
		return "run"
	case ClassShortPass:
		return "short_pass"
	case ClassDeepPass:
		return "deep_pass"
	}
	return "unknown"
}

// PlayVector is one team's quantified intent for a single play.
//
// TCon, APrec, AProf and TEva sum to 1. C is always 1-R. BlConc and EjEspec
// are independent responsibility weights in [0,1].
type PlayVector struct {
	TCon    float64 `json:"t_con"`  // power run
	APrec   float64 `json:"a_prec"` // short/medium pass
	AProf   float64 `json:"a_prof"` // deep pass
	TEva    float64 `json:"t_eva"`  // evasion run
	R       float64 `json:"r"`
	C       float64 `json:"c"`
	BlConc  float64 `json:"bl_conc"`
	EjEspec float64 `json:"ej_espec"`
}

// Vectorize turns a strategy into a play vector. Every call draws fresh
// randomness from src, so repeated calls on one strategy differ.
func Vectorize(strategy football.DynamicStrategy, src rng.Source) PlayVector {
	depth := football.Clamp(strategy.Axes.VerticalDepth/100, 0, 1)
	aggression := football.Clamp(strategy.Axes.Aggression/100, 0, 1)
	specialization := football.Clamp(strategy.Axes.PositionalFocus/100, 0, 1)
	tempo := football.Clamp(strategy.Modifiers.Tempo, 0, 1)

	var aProf float64
	if depth > 0.6 {
		aProf = 0.8*depth + src.Uniform(0, 0.4)
	} else {
		aProf = 0.3*depth + src.Uniform(0, 0.2)
	}
	aPrec := 0.7*(1-depth) + src.Uniform(0, 0.5)

	var tCon float64
	if aggression > 0.5 {
		tCon = 0.6*aggression + src.Uniform(0, 0.4)
	} else {
		tCon = 0.4*(1-depth) + src.Uniform(0, 0.3)
	}
	tEva := 0.5*(1-aggression) + 0.3*depth + src.Uniform(0, 0.3)

	v := PlayVector{TCon: tCon, APrec: aPrec, AProf: aProf, TEva: tEva}
	v.normalize()

	v.R = math.Min(1, 0.8*aggression+0.2*tempo)
	v.C = 1 - v.R
	v.BlConc = football.Clamp(math.Min(1, 0.7*specialization+0.3*(1-aggression)), 0, 1)
	v.EjEspec = football.Clamp(math.Min(1, 0.8*specialization+0.2*aggression), 0, 1)
	return v
}

func (v *PlayVector) normalize() {
	sum := v.TCon + v.APrec + v.AProf + v.TEva
	if sum <= 0 || math.IsNaN(sum) {
		v.TCon, v.APrec, v.AProf, v.TEva = 0.25, 0.25, 0.25, 0.25
		return
	}
	v.TCon /= sum
	v.APrec /= sum
	v.AProf /= sum
	v.TEva /= sum
}

// Classify picks the play archetype: deep pass when the deep weight alone
// exceeds 0.4, otherwise whichever of pass or run carries more weight.
func (v PlayVector) Classify() PlayClass {
	if v.AProf > 0.4 {
		return ClassDeepPass
	}
	if v.APrec+v.AProf > v.TCon+v.TEva {
		return ClassShortPass
	}
	return ClassRun
}
