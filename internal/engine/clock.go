package engine

import (
	"github.com/stitts-dev/gridiron-sim/internal/tactics"
)

const (
	puntSeconds       = 45.0
	fieldGoalSeconds  = 35.0
	extraPointSeconds = 35.0

	fastTempo       = 0.7
	slowTempo       = 0.3
	longRunYards    = 8
	longRunSecsYard = 0.5
)

// durationRange is the uniform snap-to-whistle window per play class.
var durationRange = map[tactics.PlayClass][2]float64{
	tactics.ClassDeepPass:  {25, 40},
	tactics.ClassShortPass: {20, 40},
	tactics.ClassRun:       {15, 40},
}

func (m *Match) playDuration(class tactics.PlayClass, tempo float64, yards int) float64 {
	r := durationRange[class]
	d := m.src.Uniform(r[0], r[1])
	switch {
	case tempo > fastTempo:
		d *= 0.7
	case tempo < slowTempo:
		d *= 1.3
	}
	if class == tactics.ClassRun && yards > longRunYards {
		d += longRunSecsYard * float64(yards)
	}
	return d
}

// consumeClock runs both clocks down together. A play never spills over
// into the next quarter.
func (m *Match) consumeClock(d float64) {
	if d > m.State.QuarterTimeRemaining {
		d = m.State.QuarterTimeRemaining
	}
	if d < 0 {
		d = 0
	}
	m.State.QuarterTimeRemaining -= d
	m.State.TimeRemaining -= d
	if m.State.Quarter >= Quarters && m.State.QuarterTimeRemaining <= 0 {
		m.State.TimeRemaining = 0
	}
}

func (m *Match) checkQuarterBoundary(res *PlayResult) {
	s := &m.State
	if s.QuarterTimeRemaining > 0 || s.Quarter >= Quarters {
		return
	}
	s.Quarter++
	s.QuarterTimeRemaining = QuarterSeconds
	res.Phases = append(res.Phases, PhaseQuarterBoundary)
	m.log.WithField("quarter", s.Quarter).Debug("Quarter started")

	if s.Quarter == 2 || s.Quarter == 4 {
		m.changePossession(res, DriveEndOfQuarter, s.OffenseYardLine, startingYardLine)
	}
}
