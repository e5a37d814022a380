package football

import "github.com/google/uuid"

// CoachRole is one of the four staff slots.
type CoachRole int

const (
	HeadCoach CoachRole = iota
	OffensiveCoordinator
	DefensiveCoordinator
	SpecialTeamsCoordinator
)

// CoachRoles lists every staff slot in declaration order.
var CoachRoles = []CoachRole{HeadCoach, OffensiveCoordinator, DefensiveCoordinator, SpecialTeamsCoordinator}

func (r CoachRole) String() string {
	switch r {
	case HeadCoach:
		return "head_coach"
	case OffensiveCoordinator:
		return "offensive_coordinator"
	case DefensiveCoordinator:
		return "defensive_coordinator"
	case SpecialTeamsCoordinator:
		return "special_teams_coordinator"
	}
	return "unknown"
}

// CoachAttribute selects one of the seventeen coaching skills.
type CoachAttribute int

const (
	CoachTacticalKnowledge CoachAttribute = iota
	CoachDecisionMaking
	CoachGameManagement
	CoachAnalytics
	CoachInnovation
	CoachPlayerDevelopment
	CoachCommunication
	CoachLeadership
	CoachAdaptability
	CoachOffensiveSchemes
	CoachDefensiveSchemes
	CoachSpecialTeamsKnowledge
	CoachMotivation
	CoachDiscipline
	CoachScouting
	CoachComposure
	CoachExperience
)

// CoachAttributes is the immutable skill set of a coach, each in [0,100].
type CoachAttributes struct {
	TacticalKnowledge     float64 `json:"tactical_knowledge"`
	DecisionMaking        float64 `json:"decision_making"`
	GameManagement        float64 `json:"game_management"`
	Analytics             float64 `json:"analytics"`
	Innovation            float64 `json:"innovation"`
	PlayerDevelopment     float64 `json:"player_development"`
	Communication         float64 `json:"communication"`
	Leadership            float64 `json:"leadership"`
	Adaptability          float64 `json:"adaptability"`
	OffensiveSchemes      float64 `json:"offensive_schemes"`
	DefensiveSchemes      float64 `json:"defensive_schemes"`
	SpecialTeamsKnowledge float64 `json:"special_teams_knowledge"`
	Motivation            float64 `json:"motivation"`
	Discipline            float64 `json:"discipline"`
	Scouting              float64 `json:"scouting"`
	Composure             float64 `json:"composure"`
	Experience            float64 `json:"experience"`
}

// Get returns the raw value of attr.
func (a CoachAttributes) Get(attr CoachAttribute) float64 {
	switch attr {
	case CoachTacticalKnowledge:
		return a.TacticalKnowledge
	case CoachDecisionMaking:
		return a.DecisionMaking
	case CoachGameManagement:
		return a.GameManagement
	case CoachAnalytics:
		return a.Analytics
	case CoachInnovation:
		return a.Innovation
	case CoachPlayerDevelopment:
		return a.PlayerDevelopment
	case CoachCommunication:
		return a.Communication
	case CoachLeadership:
		return a.Leadership
	case CoachAdaptability:
		return a.Adaptability
	case CoachOffensiveSchemes:
		return a.OffensiveSchemes
	case CoachDefensiveSchemes:
		return a.DefensiveSchemes
	case CoachSpecialTeamsKnowledge:
		return a.SpecialTeamsKnowledge
	case CoachMotivation:
		return a.Motivation
	case CoachDiscipline:
		return a.Discipline
	case CoachScouting:
		return a.Scouting
	case CoachComposure:
		return a.Composure
	case CoachExperience:
		return a.Experience
	}
	return 0
}

func (a CoachAttributes) values() []float64 {
	return []float64{
		a.TacticalKnowledge, a.DecisionMaking, a.GameManagement, a.Analytics, a.Innovation, a.PlayerDevelopment,
		a.Communication, a.Leadership, a.Adaptability, a.OffensiveSchemes, a.DefensiveSchemes,
		a.SpecialTeamsKnowledge, a.Motivation, a.Discipline, a.Scouting, a.Composure, a.Experience,
	}
}

// Coach belongs to one CoachingStaff. Confidence and Stress move after
// every play and shape how much of the coach's skill reaches the field.
type Coach struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Role       CoachRole       `json:"role"`
	Specialty  string          `json:"specialty"`
	Attributes CoachAttributes `json:"attributes"`
	Confidence float64         `json:"confidence"`
	Stress     float64         `json:"stress"`
}

// NewCoach returns a coach at neutral confidence and low stress.
func NewCoach(name string, role CoachRole, specialty string, attrs CoachAttributes) *Coach {
	return &Coach{
		ID:         uuid.New(),
		Name:       name,
		Role:       role,
		Specialty:  specialty,
		Attributes: attrs,
		Confidence: 50,
		Stress:     20,
	}
}

// Effective scales attr by confidence (0.8..1.2) and stress (1.2..0.8),
// clamped to [10,100].
func (c *Coach) Effective(attr CoachAttribute) float64 {
	confidenceFactor := 0.8 + 0.4*clamp(c.Confidence, 0, 100)/100
	stressFactor := 1.2 - 0.4*clamp(c.Stress, 0, 100)/100
	return clamp(c.Attributes.Get(attr)*confidenceFactor*stressFactor, 10, 100)
}

func (c *Coach) applyResult(success bool, timeRemaining float64) {
	if success {
		c.Confidence = clamp(c.Confidence+1, 0, 100)
		c.Stress = clamp(c.Stress-0.5, 0, 100)
		return
	}
	c.Confidence = clamp(c.Confidence-0.5, 0, 100)
	stressGain := 1.0
	if timeRemaining < lateGameSeconds {
		stressGain = 2
	}
	c.Stress = clamp(c.Stress+stressGain, 0, 100)
}
