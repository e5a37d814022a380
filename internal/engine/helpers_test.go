package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gridiron-sim/internal/football"
)

func flatPlayerAttrs(v float64) football.PlayerAttributes {
	return football.PlayerAttributes{
		Speed: v, Strength: v, Agility: v, Stamina: v, Awareness: v, Concentration: v, Catching: v, Throwing: v,
		Blocking: v, Tackling: v, Coverage: v, Carrying: v, Vision: v, KickPower: v, KickAccuracy: v, Discipline: v,
	}
}

func flatCoachAttrs(v float64) football.CoachAttributes {
	return football.CoachAttributes{
		TacticalKnowledge: v, DecisionMaking: v, GameManagement: v, Analytics: v, Innovation: v,
		PlayerDevelopment: v, Communication: v, Leadership: v, Adaptability: v, OffensiveSchemes: v,
		DefensiveSchemes: v, SpecialTeamsKnowledge: v, Motivation: v, Discipline: v, Scouting: v,
		Composure: v, Experience: v,
	}
}

// flatTeam fields one player per role, every attribute at skill.
func flatTeam(t *testing.T, name string, skill, comprehension float64) *football.Team {
	t.Helper()
	staff, err := football.NewCoachingStaff(
		football.NewCoach(name+" HC", football.HeadCoach, "", flatCoachAttrs(50)),
		football.NewCoach(name+" OC", football.OffensiveCoordinator, "", flatCoachAttrs(50)),
		football.NewCoach(name+" DC", football.DefensiveCoordinator, "", flatCoachAttrs(50)),
		football.NewCoach(name+" ST", football.SpecialTeamsCoordinator, "", flatCoachAttrs(50)),
	)
	require.NoError(t, err)

	team := &football.Team{
		Name:                  name,
		TacticalComprehension: comprehension,
		BaseCohesion:          50,
		Adaptability:          50,
		Communication:         50,
		OffenseSpecialization: football.SpecializationMatrix{PCM: 50, PTE: 50, PRE: 50, PAD: 50},
		DefenseSpecialization: football.SpecializationMatrix{PCM: 50, PTE: 50, PRE: 50, PAD: 50},
		Staff:                 staff,
	}
	for _, role := range football.Roles {
		team.Players = append(team.Players, football.NewPlayer(name+" "+role.String(), role, flatPlayerAttrs(skill)))
	}
	return team
}

// captureRecorder keeps every event in memory.
type captureRecorder struct {
	plays  []PlayEvent
	scores []ScoreEvent
	drives []DriveEvent
}

func (r *captureRecorder) RecordPlay(e PlayEvent)   { r.plays = append(r.plays, e) }
func (r *captureRecorder) RecordScore(e ScoreEvent) { r.scores = append(r.scores, e) }
func (r *captureRecorder) RecordDrive(e DriveEvent) { r.drives = append(r.drives, e) }

func hasPhase(phases []Phase, want Phase) bool {
	for _, p := range phases {
		if p == want {
			return true
		}
	}
	return false
}
