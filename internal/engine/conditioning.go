package engine

import (
	"github.com/stitts-dev/gridiron-sim/internal/football"
)

// updateMentalPhysical drains every player's energy and feeds the snap's
// result to both staffs. The defense succeeds when the offense does not.
func (m *Match) updateMentalPhysical(offense, defense *football.Team, success bool) {
	for _, t := range m.Teams {
		for _, p := range t.Players {
			p.LoseEnergy(m.cfg.EnergyIntensity)
		}
	}

	offIdx := m.indexOf(offense)
	offense.Staff.UpdateMentalState(success, football.MentalContext{
		ScoreDiff:     m.scoreDiff(offIdx),
		TimeRemaining: m.State.TimeRemaining,
	})
	defense.Staff.UpdateMentalState(!success, football.MentalContext{
		ScoreDiff:     m.scoreDiff(1 - offIdx),
		TimeRemaining: m.State.TimeRemaining,
	})
}

func (m *Match) indexOf(t *football.Team) int {
	if m.Teams[1] == t {
		return 1
	}
	return 0
}
