package engine

import (
	"math"

	"github.com/stitts-dev/gridiron-sim/internal/football"
	"github.com/stitts-dev/gridiron-sim/internal/rng"
	"github.com/stitts-dev/gridiron-sim/internal/tactics"
)

const (
	offenseDuelBonus = 0.2
	defenseDuelBonus = 0.15

	// assumedDefensiveConcentration stands in for the defense's read of a
	// disguised play in the alignment term.
	assumedDefensiveConcentration = 0.7

	// maxForceRatio replaces offense/defense when the defense has no force.
	maxForceRatio = 10.0
)

// contribution maps a role to the play-vector weight and skill it adds to
// its side's raw force.
type contribution struct {
	weight func(v tactics.PlayVector, defending bool) float64
	attr   football.PlayerAttribute
}

func defenderWeight(_ tactics.PlayVector, defending bool) float64 {
	if defending {
		return 0.8
	}
	return 0
}

func fixedWeight(w float64) func(tactics.PlayVector, bool) float64 {
	return func(tactics.PlayVector, bool) float64 { return w }
}

var roleContributions = [...]contribution{
	football.RoleRunner:       {weight: func(v tactics.PlayVector, _ bool) float64 { return v.EjEspec }, attr: football.AttrAgility},
	football.RoleBlocker:      {weight: func(v tactics.PlayVector, _ bool) float64 { return v.BlConc }, attr: football.AttrBlocking},
	football.RoleQuarterback:  {weight: func(v tactics.PlayVector, _ bool) float64 { return v.EjEspec }, attr: football.AttrThrowing},
	football.RoleZoneDefender: {weight: defenderWeight, attr: football.AttrTackling},
	football.RoleManDefender:  {weight: defenderWeight, attr: football.AttrTackling},
	football.RoleKicker:       {weight: fixedWeight(0.1), attr: football.AttrKickAccuracy},
}

// Fails to compile if a Role is added without a row above.
var _ = [1]struct{}{}[len(roleContributions)-(int(football.RoleKicker)+1)]

var fallbackContribution = contribution{weight: fixedWeight(0.1), attr: football.AttrAwareness}

func contributionFor(role football.Role) contribution {
	if role < 0 || int(role) >= len(roleContributions) {
		return fallbackContribution
	}
	return roleContributions[role]
}

// yardBand holds the class-dependent constants of the yardage model.
type yardBand struct {
	baseFactor float64
	noise      float64 // symmetric spread
	riskNoise  float64 // extra upside scaled by R
	min, max   int
}

var yardBands = map[tactics.PlayClass]yardBand{
	tactics.ClassDeepPass:  {baseFactor: 8.0, noise: 15, riskNoise: 15, min: -5, max: 45},
	tactics.ClassShortPass: {baseFactor: 5.5, noise: 8, riskNoise: 7, min: -3, max: 25},
	tactics.ClassRun:       {baseFactor: 4.0, noise: 5, riskNoise: 5, min: -2, max: 15},
}

// YardBounds returns the inclusive yardage range for a play class.
func YardBounds(c tactics.PlayClass) (int, int) {
	b := yardBands[c]
	return b.min, b.max
}

// PlayOutcome is everything the resolver produced for one snap.
type PlayOutcome struct {
	Yards           int                      `json:"yards"`
	Class           tactics.PlayClass        `json:"class"`
	Expected        float64                  `json:"expected"`
	OffenseForce    float64                  `json:"offense_force"`
	DefenseForce    float64                  `json:"defense_force"`
	OffenseStrategy football.DynamicStrategy `json:"offense_strategy"`
	DefenseStrategy football.DynamicStrategy `json:"defense_strategy"`
	OffenseVector   tactics.PlayVector       `json:"offense_vector"`
	DefenseVector   tactics.PlayVector       `json:"defense_vector"`
}

// Resolver turns two teams' intents into a yardage outcome.
type Resolver struct {
	src          rng.Source
	fatigueShape float64
}

// NewResolver returns a resolver drawing from src. A non-positive shape
// falls back to football.DefaultFatigueShape.
func NewResolver(src rng.Source, fatigueShape float64) *Resolver {
	if fatigueShape <= 0 {
		fatigueShape = football.DefaultFatigueShape
	}
	return &Resolver{src: src, fatigueShape: fatigueShape}
}

// Force sums every player's effective skill weighted by its role's share of
// the play vector.
func (r *Resolver) Force(team *football.Team, v tactics.PlayVector, defending bool) float64 {
	total := 0.0
	for _, p := range team.Players {
		c := contributionFor(p.Role)
		w := c.weight(v, defending)
		if w == 0 {
			continue
		}
		total += p.EffectiveWithShape(c.attr, r.fatigueShape) * w
	}
	return total
}

// Resolve generates both strategies, vectorizes them and returns the signed
// yardage of the snap. Both teams' current strategies are updated.
func (r *Resolver) Resolve(offense, defense *football.Team, state *MatchState, offenseScore, defenseScore int) PlayOutcome {
	sit := state.Situation()
	offStrategy := tactics.Generate(offense, sit, true, offenseScore-defenseScore)
	defStrategy := tactics.Generate(defense, sit, false, defenseScore-offenseScore)
	offVector := tactics.Vectorize(offStrategy, r.src)
	defVector := tactics.Vectorize(defStrategy, r.src)

	offForce := r.Force(offense, offVector, false) * (1 + offenseDuelBonus*offStrategy.Axes.Aggression/100)
	defForce := r.Force(defense, defVector, true) * (1 + defenseDuelBonus*defStrategy.Axes.Aggression/100)

	depth := depthMultiplier(offense, defense, offStrategy, defStrategy)
	alignment := alignmentMultiplier(offStrategy, defStrategy)

	class := offVector.Classify()
	band := yardBands[class]
	expected := band.baseFactor * forceRatio(offForce, defForce) * depth * alignment

	noise := r.src.Uniform(-1, 1)*band.noise + r.src.Float64()*offVector.R*band.riskNoise
	yards := roundYards(expected+noise, band.min, band.max)

	return PlayOutcome{
		Yards:           yards,
		Class:           class,
		Expected:        expected,
		OffenseForce:    offForce,
		DefenseForce:    defForce,
		OffenseStrategy: offStrategy,
		DefenseStrategy: defStrategy,
		OffenseVector:   offVector,
		DefenseVector:   defVector,
	}
}

func forceRatio(offense, defense float64) float64 {
	if defense <= 0 {
		if offense <= 0 {
			return 1
		}
		return maxForceRatio
	}
	return offense / defense
}

func depthMultiplier(offense, defense *football.Team, off, def football.DynamicStrategy) float64 {
	depthEdge := 1 + 0.3*(off.Axes.VerticalDepth-def.Axes.VerticalDepth)/100
	defPCM := defense.DefenseSpecialization.PCM
	if defPCM <= 0 {
		defPCM = 1
	}
	return football.Clamp(depthEdge*(offense.OffenseSpecialization.PCM/defPCM), 0.5, 2.0)
}

func alignmentMultiplier(off, def football.DynamicStrategy) float64 {
	rhythm := 1 + 0.3*(off.Modifiers.Tempo-def.Modifiers.Tempo)
	deception := 1 + 0.4*off.Modifiers.Deception*(1-assumedDefensiveConcentration)
	return (rhythm + deception) / 2
}

func roundYards(v float64, min, max int) int {
	if math.IsNaN(v) {
		return 0
	}
	v = football.Clamp(math.Round(v), float64(min), float64(max))
	return int(v)
}
