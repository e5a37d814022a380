package football

import (
	"math"

	"github.com/google/uuid"
)

// Role is a player's fixed position group.
type Role int

const (
	RoleRunner Role = iota
	RoleBlocker
	RoleQuarterback
	RoleZoneDefender
	RoleManDefender
	RoleKicker
)

// Roles lists every role in declaration order.
var Roles = []Role{RoleRunner, RoleBlocker, RoleQuarterback, RoleZoneDefender, RoleManDefender, RoleKicker}

func (r Role) String() string {
	switch r {
	case RoleRunner:
		return "runner"
	case RoleBlocker:
		return "blocker"
	case RoleQuarterback:
		return "quarterback"
	case RoleZoneDefender:
		return "zone_defender"
	case RoleManDefender:
		return "man_defender"
	case RoleKicker:
		return "kicker"
	}
	return "unknown"
}

// IsDefender reports whether the role belongs to the defensive back seven.
func (r Role) IsDefender() bool {
	return r == RoleZoneDefender || r == RoleManDefender
}

// PlayerAttribute selects one of the sixteen base skills.
type PlayerAttribute int

const (
	AttrSpeed PlayerAttribute = iota
	AttrStrength
	AttrAgility
	AttrStamina
	AttrAwareness
	AttrConcentration
	AttrCatching
	AttrThrowing
	AttrBlocking
	AttrTackling
	AttrCoverage
	AttrCarrying
	AttrVision
	AttrKickPower
	AttrKickAccuracy
	AttrDiscipline
)

// PlayerAttributes is the immutable skill set of a player, each in [0,100].
type PlayerAttributes struct {
	Speed         float64 `json:"speed"`
	Strength      float64 `json:"strength"`
	Agility       float64 `json:"agility"`
	Stamina       float64 `json:"stamina"`
	Awareness     float64 `json:"awareness"`
	Concentration float64 `json:"concentration"`
	Catching      float64 `json:"catching"`
	Throwing      float64 `json:"throwing"`
	Blocking      float64 `json:"blocking"`
	Tackling      float64 `json:"tackling"`
	Coverage      float64 `json:"coverage"`
	Carrying      float64 `json:"carrying"`
	Vision        float64 `json:"vision"`
	KickPower     float64 `json:"kick_power"`
	KickAccuracy  float64 `json:"kick_accuracy"`
	Discipline    float64 `json:"discipline"`
}

// Get returns the raw value of attr.
func (a PlayerAttributes) Get(attr PlayerAttribute) float64 {
	switch attr {
	case AttrSpeed:
		return a.Speed
	case AttrStrength:
		return a.Strength
	case AttrAgility:
		return a.Agility
	case AttrStamina:
		return a.Stamina
	case AttrAwareness:
		return a.Awareness
	case AttrConcentration:
		return a.Concentration
	case AttrCatching:
		return a.Catching
	case AttrThrowing:
		return a.Throwing
	case AttrBlocking:
		return a.Blocking
	case AttrTackling:
		return a.Tackling
	case AttrCoverage:
		return a.Coverage
	case AttrCarrying:
		return a.Carrying
	case AttrVision:
		return a.Vision
	case AttrKickPower:
		return a.KickPower
	case AttrKickAccuracy:
		return a.KickAccuracy
	case AttrDiscipline:
		return a.Discipline
	}
	return 0
}

func (a PlayerAttributes) values() []float64 {
	return []float64{
		a.Speed, a.Strength, a.Agility, a.Stamina, a.Awareness, a.Concentration, a.Catching, a.Throwing,
		a.Blocking, a.Tackling, a.Coverage, a.Carrying, a.Vision, a.KickPower, a.KickAccuracy, a.Discipline,
	}
}

const (
	// DefaultFatigueShape is the steepness k of the energy sigmoid.
	DefaultFatigueShape = 0.15
	// DefaultEnergyIntensity is the per-play intensity passed to LoseEnergy.
	DefaultEnergyIntensity = 0.8

	minFatigueMultiplier = 0.1
	maxEnergy            = 100.0
)

// Player is owned by exactly one Team. Energy is the only field the engine
// mutates; Morale is carried for roster tooling and read by no formula.
type Player struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	Role       Role             `json:"role"`
	Attributes PlayerAttributes `json:"attributes"`
	Energy     float64          `json:"energy"`
	Morale     float64          `json:"morale"`
}

// NewPlayer returns a fully rested player.
func NewPlayer(name string, role Role, attrs PlayerAttributes) *Player {
	return &Player{
		ID:         uuid.New(),
		Name:       name,
		Role:       role,
		Attributes: attrs,
		Energy:     maxEnergy,
		Morale:     75,
	}
}

// Effective is EffectiveWithShape using DefaultFatigueShape.
func (p *Player) Effective(attr PlayerAttribute) float64 {
	return p.EffectiveWithShape(attr, DefaultFatigueShape)
}

// EffectiveWithShape scales the base skill by the current fatigue state.
//
// Low-stamina players are more sensitive to lost energy; concentration wins
// back part of whatever fatigue took. The result never exceeds 100.
func (p *Player) EffectiveWithShape(attr PlayerAttribute, k float64) float64 {
	base := p.Attributes.Get(attr)
	f := p.FatigueMultiplier(k)
	concentration := clamp(p.Attributes.Concentration, 0, 100)
	concentrationFactor := 1 + 0.2*(concentration/100)*(1-f)
	return math.Min(100, base*f*concentrationFactor)
}

// FatigueMultiplier returns F in [0.1,1].
func (p *Player) FatigueMultiplier(k float64) float64 {
	stamina := clamp(p.Attributes.Stamina, 0, 100)
	sensitivity := 0.5 + 0.5*(100-stamina)/100
	sigmoid := 1 / (1 + math.Exp(k*(clamp(p.Energy, 0, maxEnergy)-50)))
	return math.Max(minFatigueMultiplier, 1-sigmoid*sensitivity)
}

// LoseEnergy drains energy proportionally to intensity and inverse stamina.
// Energy never recovers during a match and never drops below zero.
func (p *Player) LoseEnergy(intensity float64) {
	stamina := clamp(p.Attributes.Stamina, 0, 100)
	loss := intensity * (1 - stamina/100) * 15
	if loss < 0 {
		loss = 0
	}
	p.Energy = math.Max(0, p.Energy-loss)
}
