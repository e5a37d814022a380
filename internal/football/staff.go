package football

import "fmt"

const (
	primaryInfluenceWeight   = 0.7
	secondaryInfluenceWeight = 0.3
	maxAxisAdjustment        = 10.0

	// lateGameSeconds is the remaining-time threshold under which a failed
	// play stresses coaches twice as much.
	lateGameSeconds = 300.0
)

// InfluenceContext is the match situation the staff reacts to.
type InfluenceContext struct {
	IsOffense     bool
	ScoreDiff     int
	TimeRemaining float64
	Down          int
}

// MentalContext is passed to UpdateMentalState after each play.
type MentalContext struct {
	ScoreDiff     int
	TimeRemaining float64
}

// CoachingStaff holds exactly one coach per CoachRole. Overall, Chemistry
// and Adaptability always reflect the members' current mental state.
type CoachingStaff struct {
	Coaches      [4]*Coach `json:"coaches"`
	Overall      float64   `json:"overall"`
	Chemistry    float64   `json:"chemistry"`
	Adaptability float64   `json:"adaptability"`
}

// NewCoachingStaff slots each coach by role and computes the ratings.
func NewCoachingStaff(coaches ...*Coach) (*CoachingStaff, error) {
	s := &CoachingStaff{}
	for _, c := range coaches {
		if c == nil {
			continue
		}
		if c.Role < HeadCoach || c.Role > SpecialTeamsCoordinator {
			return nil, fmt.Errorf("coach %q: %w", c.Name, ErrIncompleteStaff)
		}
		if s.Coaches[c.Role] != nil {
			return nil, fmt.Errorf("duplicate %s: %w", c.Role, ErrIncompleteStaff)
		}
		s.Coaches[c.Role] = c
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.Recalculate()
	return s, nil
}

// Validate reports a missing slot or an attribute outside [0,100].
func (s *CoachingStaff) Validate() error {
	for _, role := range CoachRoles {
		c := s.Coaches[role]
		if c == nil {
			return fmt.Errorf("missing %s: %w", role, ErrIncompleteStaff)
		}
		for _, v := range c.Attributes.values() {
			if v < 0 || v > 100 {
				return fmt.Errorf("coach %q attribute %.1f: %w", c.Name, v, ErrAttributeOutOfRange)
			}
		}
	}
	return nil
}

// Coach returns the member occupying role.
func (s *CoachingStaff) Coach(role CoachRole) *Coach {
	return s.Coaches[role]
}

func (s *CoachingStaff) coordinator(isOffense bool) *Coach {
	if isOffense {
		return s.Coaches[OffensiveCoordinator]
	}
	return s.Coaches[DefensiveCoordinator]
}

// Recalculate refreshes the aggregate ratings from current member state.
func (s *CoachingStaff) Recalculate() {
	hc := s.Coaches[HeadCoach]
	oc := s.Coaches[OffensiveCoordinator]
	dc := s.Coaches[DefensiveCoordinator]
	st := s.Coaches[SpecialTeamsCoordinator]

	s.Overall = 0.4*hc.Effective(CoachTacticalKnowledge) +
		0.2*oc.Effective(CoachOffensiveSchemes) +
		0.2*dc.Effective(CoachDefensiveSchemes) +
		0.2*st.Effective(CoachSpecialTeamsKnowledge)

	var communication, leadership, adaptability float64
	for _, c := range s.Coaches {
		communication += c.Effective(CoachCommunication)
		leadership += c.Effective(CoachLeadership)
		adaptability += c.Effective(CoachAdaptability)
	}
	n := float64(len(s.Coaches))
	s.Chemistry = (communication/n)/2 + (leadership/n)/2
	s.Adaptability = adaptability / n
}

// Influence perturbs base by the staff's effective skills. Each axis moves at
// most ±10; tempo and deception are scaled up and capped at 1.
func (s *CoachingStaff) Influence(base DynamicStrategy, ctx InfluenceContext) DynamicStrategy {
	hc := s.Coaches[HeadCoach]
	coord := s.coordinator(ctx.IsOffense)

	out := base
	out.Axes.Aggression = adjustAxis(base.Axes.Aggression,
		hc.Effective(CoachDecisionMaking), coord.Effective(CoachTacticalKnowledge))
	out.Axes.VerticalDepth = adjustAxis(base.Axes.VerticalDepth,
		coord.Effective(CoachInnovation), hc.Effective(CoachAnalytics))
	out.Axes.PositionalFocus = adjustAxis(base.Axes.PositionalFocus,
		coord.Effective(CoachPlayerDevelopment), s.Chemistry)

	schemes := CoachDefensiveSchemes
	if ctx.IsOffense {
		schemes = CoachOffensiveSchemes
	}
	out.Modifiers.Tempo = clamp(base.Modifiers.Tempo*(1+0.2*hc.Effective(CoachGameManagement)/100), 0, 1)
	out.Modifiers.Deception = clamp(base.Modifiers.Deception*(1+0.3*coord.Effective(schemes)/100), 0, 1)
	return out
}

// InfluenceFactor blends two 0..100 inputs 70/30 into [0,1].
func InfluenceFactor(primary, secondary float64) float64 {
	return clamp((primaryInfluenceWeight*primary+secondaryInfluenceWeight*secondary)/100, 0, 1)
}

func adjustAxis(axis, primary, secondary float64) float64 {
	adjustment := (InfluenceFactor(primary, secondary) - 0.5) * 2 * maxAxisAdjustment
	return clamp(axis+adjustment, 0, 100)
}

// UpdateMentalState moves every coach's confidence and stress after a play,
// then recomputes the aggregate ratings.
func (s *CoachingStaff) UpdateMentalState(success bool, ctx MentalContext) {
	for _, c := range s.Coaches {
		c.applyResult(success, ctx.TimeRemaining)
	}
	s.Recalculate()
}

func (s *CoachingStaff) clone() *CoachingStaff {
	out := *s
	for i, c := range s.Coaches {
		if c != nil {
			cc := *c
			out.Coaches[i] = &cc
		}
	}
	return &out
}
