// Package roster builds complete, valid teams from an injected random source.
package roster

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/stitts-dev/gridiron-sim/internal/football"
	"github.com/stitts-dev/gridiron-sim/internal/rng"
)

// Slot is one line of a roster template.
type Slot struct {
	Role  football.Role
	Count int
}

// DefaultTemplate is the seventeen-man game-day roster.
var DefaultTemplate = []Slot{
	{football.RoleQuarterback, 1},
	{football.RoleRunner, 3},
	{football.RoleBlocker, 5},
	{football.RoleZoneDefender, 4},
	{football.RoleManDefender, 3},
	{football.RoleKicker, 1},
}

const (
	baseMin, baseMax       = 40.0, 70.0
	primaryMin, primaryMax = 65.0, 95.0
)

// primaryAttributes are drawn from the higher band for each role.
var primaryAttributes = map[football.Role][]football.PlayerAttribute{
	football.RoleQuarterback:  {football.AttrThrowing, football.AttrAwareness, football.AttrVision, football.AttrConcentration},
	football.RoleRunner:       {football.AttrAgility, football.AttrSpeed, football.AttrCarrying, football.AttrCatching},
	football.RoleBlocker:      {football.AttrBlocking, football.AttrStrength, football.AttrStamina},
	football.RoleZoneDefender: {football.AttrTackling, football.AttrCoverage, football.AttrAwareness},
	football.RoleManDefender:  {football.AttrTackling, football.AttrCoverage, football.AttrSpeed},
	football.RoleKicker:       {football.AttrKickAccuracy, football.AttrKickPower, football.AttrConcentration},
}

var coachSpecialties = map[football.CoachRole]string{
	football.HeadCoach:               "game management",
	football.OffensiveCoordinator:    "offensive schemes",
	football.DefensiveCoordinator:    "defensive schemes",
	football.SpecialTeamsCoordinator: "special teams",
}

// Generate builds a team on the default template.
func Generate(name string, src rng.Source) (*football.Team, error) {
	return GenerateWithTemplate(name, DefaultTemplate, src)
}

// GenerateWithTemplate builds a team whose players fill template in order.
// Draws are sequential, so one seed always yields the same team.
func GenerateWithTemplate(name string, template []Slot, src rng.Source) (*football.Team, error) {
	team := &football.Team{
		ID:                    uuid.New(),
		Name:                  name,
		TacticalComprehension: src.Uniform(baseMin, primaryMax),
		BaseCohesion:          src.Uniform(baseMin, primaryMax),
		Adaptability:          src.Uniform(baseMin, primaryMax),
		Communication:         src.Uniform(baseMin, primaryMax),
		OffenseSpecialization: specialization(src),
		DefenseSpecialization: specialization(src),
	}

	for _, slot := range template {
		for i := 0; i < slot.Count; i++ {
			playerName := fmt.Sprintf("%s %s %d", name, slot.Role, i+1)
			team.Players = append(team.Players, football.NewPlayer(playerName, slot.Role, playerAttributes(slot.Role, src)))
		}
	}

	coaches := make([]*football.Coach, 0, len(football.CoachRoles))
	for _, role := range football.CoachRoles {
		coachName := fmt.Sprintf("%s %s", name, role)
		coaches = append(coaches, football.NewCoach(coachName, role, coachSpecialties[role], coachAttributes(src)))
	}
	staff, err := football.NewCoachingStaff(coaches...)
	if err != nil {
		return nil, fmt.Errorf("generate %q: %w", name, err)
	}
	team.Staff = staff

	if err := team.Validate(); err != nil {
		return nil, fmt.Errorf("generate %q: %w", name, err)
	}
	return team, nil
}

func specialization(src rng.Source) football.SpecializationMatrix {
	return football.SpecializationMatrix{
		PCM: src.Uniform(baseMin, primaryMax),
		PTE: src.Uniform(baseMin, primaryMax),
		PRE: src.Uniform(baseMin, primaryMax),
		PAD: src.Uniform(baseMin, primaryMax),
	}
}

func playerAttributes(role football.Role, src rng.Source) football.PlayerAttributes {
	var v [football.AttrDiscipline + 1]float64
	for i := range v {
		v[i] = src.Uniform(baseMin, baseMax)
	}
	for _, attr := range primaryAttributes[role] {
		v[attr] = src.Uniform(primaryMin, primaryMax)
	}
	return football.PlayerAttributes{
		Speed:         v[football.AttrSpeed],
		Strength:      v[football.AttrStrength],
		Agility:       v[football.AttrAgility],
		Stamina:       v[football.AttrStamina],
		Awareness:     v[football.AttrAwareness],
		Concentration: v[football.AttrConcentration],
		Catching:      v[football.AttrCatching],
		Throwing:      v[football.AttrThrowing],
		Blocking:      v[football.AttrBlocking],
		Tackling:      v[football.AttrTackling],
		Coverage:      v[football.AttrCoverage],
		Carrying:      v[football.AttrCarrying],
		Vision:        v[football.AttrVision],
		KickPower:     v[football.AttrKickPower],
		KickAccuracy:  v[football.AttrKickAccuracy],
		Discipline:    v[football.AttrDiscipline],
	}
}

func coachAttributes(src rng.Source) football.CoachAttributes {
	u := func() float64 { return src.Uniform(baseMin+10, primaryMax) }
	return football.CoachAttributes{
		TacticalKnowledge:     u(),
		DecisionMaking:        u(),
		GameManagement:        u(),
		Analytics:             u(),
		Innovation:            u(),
		PlayerDevelopment:     u(),
		Communication:         u(),
		Leadership:            u(),
		Adaptability:          u(),
		OffensiveSchemes:      u(),
		DefensiveSchemes:      u(),
		SpecialTeamsKnowledge: u(),
		Motivation:            u(),
		Discipline:            u(),
		Scouting:              u(),
		Composure:             u(),
		Experience:            u(),
	}
}
