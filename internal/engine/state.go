package engine

import "github.com/stitts-dev/gridiron-sim/internal/tactics"

const (
	QuarterSeconds = 900.0
	Quarters       = 4

	startingYardLine = 25
	firstDownYards   = 10
)

// Phase is a state of the per-play state machine.
type Phase string

const (
	PhaseNormalDown      Phase = "normal_down"
	PhaseSpecialDecision Phase = "special_play_decision"
	PhaseScoring         Phase = "scoring"
	PhaseTurnover        Phase = "turnover"
	PhaseQuarterBoundary Phase = "quarter_boundary"
)

// MatchState is the authoritative down, distance, field and clock state.
// OffenseYardLine is measured from the offense's own goal (0) to the
// opponent's goal (100).
type MatchState struct {
	Down                 int     `json:"down"`
	YardsToGo            int     `json:"yards_to_go"`
	OffenseYardLine      int     `json:"offense_yard_line"`
	TimeRemaining        float64 `json:"time_remaining"`
	QuarterTimeRemaining float64 `json:"quarter_time_remaining"`
	Quarter              int     `json:"quarter"`
}

// NewMatchState returns the opening state: first and ten at the 25.
func NewMatchState() MatchState {
	return MatchState{
		Down:                 1,
		YardsToGo:            firstDownYards,
		OffenseYardLine:      startingYardLine,
		TimeRemaining:        QuarterSeconds * Quarters,
		QuarterTimeRemaining: QuarterSeconds,
		Quarter:              1,
	}
}

// Situation projects the state onto what the strategy generator reads.
func (s MatchState) Situation() tactics.Situation {
	return tactics.Situation{
		TimeRemaining:   s.TimeRemaining,
		OffenseYardLine: s.OffenseYardLine,
		Down:            s.Down,
	}
}

func (s *MatchState) resetSeries(yardLine int) {
	s.Down = 1
	s.YardsToGo = firstDownYards
	s.OffenseYardLine = yardLine
}

// Elapsed returns seconds played so far.
func (s MatchState) Elapsed() float64 {
	return QuarterSeconds*Quarters - s.TimeRemaining
}
