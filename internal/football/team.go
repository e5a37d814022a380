package football

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoster         = errors.New("team has no players")
	ErrIncompleteStaff     = errors.New("coaching staff must fill all four roles")
	ErrAttributeOutOfRange = errors.New("attribute out of range")
	ErrMissingRole         = errors.New("required roster role missing")
)

// SpecializationMatrix holds four unit facets in [1,100]. PCM (play-concept
// mastery) drives the depth matchup; the rest describe the unit for rosters.
type SpecializationMatrix struct {
	PCM float64 `json:"pcm"`
	PTE float64 `json:"pte"` // technique execution
	PRE float64 `json:"pre"` // pre-snap recognition
	PAD float64 `json:"pad"` // in-game adjustment
}

func (m SpecializationMatrix) validate(unit string) error {
	for _, v := range []float64{m.PCM, m.PTE, m.PRE, m.PAD} {
		if v < 1 || v > 100 {
			return fmt.Errorf("%s specialization facet %.1f: %w", unit, v, ErrAttributeOutOfRange)
		}
	}
	return nil
}

// Team is the unit of possession. It owns its players and staff.
type Team struct {
	ID                    uuid.UUID            `json:"id"`
	Name                  string               `json:"name"`
	Players               []*Player            `json:"players"`
	TacticalComprehension float64              `json:"tactical_comprehension"`
	BaseCohesion          float64              `json:"base_cohesion"`
	Adaptability          float64              `json:"adaptability"`
	Communication         float64              `json:"communication"`
	OffenseSpecialization SpecializationMatrix `json:"offense_specialization"`
	DefenseSpecialization SpecializationMatrix `json:"defense_specialization"`
	FieldPosition         int                  `json:"field_position"`
	CurrentStrategy       DynamicStrategy      `json:"current_strategy"`
	Staff                 *CoachingStaff       `json:"staff"`
}

// Validate fails fast on rosters the engine cannot play with. Every role
// except kicker must be filled.
func (t *Team) Validate() error {
	if len(t.Players) == 0 {
		return fmt.Errorf("team %q: %w", t.Name, ErrEmptyRoster)
	}
	for _, p := range t.Players {
		if p == nil {
			return fmt.Errorf("team %q: nil player: %w", t.Name, ErrEmptyRoster)
		}
		for _, v := range p.Attributes.values() {
			if v < 0 || v > 100 {
				return fmt.Errorf("team %q player %q attribute %.1f: %w", t.Name, p.Name, v, ErrAttributeOutOfRange)
			}
		}
	}
	for _, v := range []float64{t.TacticalComprehension, t.BaseCohesion, t.Adaptability, t.Communication} {
		if v < 0 || v > 100 {
			return fmt.Errorf("team %q tactical scalar %.1f: %w", t.Name, v, ErrAttributeOutOfRange)
		}
	}
	if err := t.OffenseSpecialization.validate("offense"); err != nil {
		return fmt.Errorf("team %q: %w", t.Name, err)
	}
	if err := t.DefenseSpecialization.validate("defense"); err != nil {
		return fmt.Errorf("team %q: %w", t.Name, err)
	}
	for _, role := range Roles {
		// A missing kicker degrades to the first player kicking.
		if role != RoleKicker && !t.HasRole(role) {
			return fmt.Errorf("team %q has no %s: %w", t.Name, role, ErrMissingRole)
		}
	}
	if t.Staff == nil {
		return fmt.Errorf("team %q: %w", t.Name, ErrIncompleteStaff)
	}
	if err := t.Staff.Validate(); err != nil {
		return fmt.Errorf("team %q: %w", t.Name, err)
	}
	return nil
}

// HasRole reports whether any player fills role.
func (t *Team) HasRole(role Role) bool {
	for _, p := range t.Players {
		if p.Role == role {
			return true
		}
	}
	return false
}

// Kicker returns the first kicker on the roster. A roster without one kicks
// with its first player; callers that want a hard failure check HasRole.
func (t *Team) Kicker() *Player {
	for _, p := range t.Players {
		if p.Role == RoleKicker {
			return p
		}
	}
	if len(t.Players) == 0 {
		return nil
	}
	return t.Players[0]
}

// Clone deep-copies the team so an independent match can mutate it.
func (t *Team) Clone() *Team {
	out := *t
	out.Players = make([]*Player, len(t.Players))
	for i, p := range t.Players {
		pc := *p
		out.Players[i] = &pc
	}
	if t.Staff != nil {
		out.Staff = t.Staff.clone()
	}
	return &out
}
