package tactics

import (
	"math"

	"github.com/stitts-dev/gridiron-sim/internal/football"
)

// RegulationSeconds is the length of a full match.
const RegulationSeconds = 3600.0

// Situation is the slice of match state the strategy generator reads.
type Situation struct {
	TimeRemaining   float64
	OffenseYardLine int
	Down            int
}

// Urgency returns the three contextual scalars in [0,1]: elapsed share of
// the match, field position from the offense's view and down pressure.
func (s Situation) Urgency() (timeUrgency, fieldPosition, downPressure float64) {
	timeUrgency = football.Clamp((RegulationSeconds-s.TimeRemaining)/RegulationSeconds, 0, 1)
	fieldPosition = football.Clamp(float64(s.OffenseYardLine)/100, 0, 1)
	downPressure = football.Clamp(float64(s.Down)/4, 0, 1)
	return timeUrgency, fieldPosition, downPressure
}

// BaseStrategy derives the strategy a team would run before its staff
// weighs in.
func BaseStrategy(team *football.Team, s Situation, isOffense bool) football.DynamicStrategy {
	timeUrgency, fieldPosition, downPressure := s.Urgency()
	teamAggression := football.Clamp((100-team.TacticalComprehension)/100, 0, 1)
	teamCohesion := football.Clamp(team.BaseCohesion/100, 0, 1)

	var verticalDepth float64
	if isOffense {
		verticalDepth = math.Min(100, 50*(1-fieldPosition)+40*timeUrgency+30*downPressure)
	} else {
		verticalDepth = math.Max(0, 50-30*fieldPosition)
	}

	return football.DynamicStrategy{
		Axes: football.StrategicAxes{
			Aggression:      math.Min(100, 60*teamAggression+30*timeUrgency+40*downPressure),
			VerticalDepth:   verticalDepth,
			PositionalFocus: math.Min(100, 80*teamCohesion+20*downPressure),
		},
		Modifiers: football.ExecutionModifiers{
			Tempo:     math.Min(1, 0.3+0.5*timeUrgency+0.2*downPressure),
			Deception: math.Min(1, 0.4*teamCohesion+0.3*downPressure),
		},
	}
}

// Generate builds the team's strategy for the coming play, runs it past the
// coaching staff and stores the result as the team's current strategy.
func Generate(team *football.Team, s Situation, isOffense bool, scoreDiff int) football.DynamicStrategy {
	base := BaseStrategy(team, s, isOffense)
	strategy := team.Staff.Influence(base, football.InfluenceContext{
		IsOffense:     isOffense,
		ScoreDiff:     scoreDiff,
		TimeRemaining: s.TimeRemaining,
		Down:          s.Down,
	}).Bounded()
	team.CurrentStrategy = strategy
	return strategy
}
