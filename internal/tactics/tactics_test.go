package tactics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gridiron-sim/internal/football"
	"github.com/stitts-dev/gridiron-sim/internal/rng"
)

func testTeam(t *testing.T, comprehension, cohesion, coachSkill float64) *football.Team {
	t.Helper()
	attrs := football.CoachAttributes{
		TacticalKnowledge: coachSkill, DecisionMaking: coachSkill, GameManagement: coachSkill,
		Analytics: coachSkill, Innovation: coachSkill, PlayerDevelopment: coachSkill,
		Communication: coachSkill, Leadership: coachSkill, Adaptability: coachSkill,
		OffensiveSchemes: coachSkill, DefensiveSchemes: coachSkill, SpecialTeamsKnowledge: coachSkill,
	}
	staff, err := football.NewCoachingStaff(
		football.NewCoach("HC", football.HeadCoach, "", attrs),
		football.NewCoach("OC", football.OffensiveCoordinator, "", attrs),
		football.NewCoach("DC", football.DefensiveCoordinator, "", attrs),
		football.NewCoach("ST", football.SpecialTeamsCoordinator, "", attrs),
	)
	require.NoError(t, err)
	return &football.Team{
		Name:                  "Tacticians",
		TacticalComprehension: comprehension,
		BaseCohesion:          cohesion,
		Staff:                 staff,
	}
}

func TestBaseStrategy_OpeningSnap(t *testing.T) {
	team := testTeam(t, 50, 50, 50)
	s := Situation{TimeRemaining: 3600, OffenseYardLine: 25, Down: 1}

	off := BaseStrategy(team, s, true)
	assert.InDelta(t, 60*0.5+40*0.25, off.Axes.Aggression, 1e-9)
	assert.InDelta(t, 50*0.75+30*0.25, off.Axes.VerticalDepth, 1e-9)
	assert.InDelta(t, 80*0.5+20*0.25, off.Axes.PositionalFocus, 1e-9)
	assert.InDelta(t, 0.3+0.2*0.25, off.Modifiers.Tempo, 1e-9)
	assert.InDelta(t, 0.4*0.5+0.3*0.25, off.Modifiers.Deception, 1e-9)

	def := BaseStrategy(team, s, false)
	assert.InDelta(t, 50-30*0.25, def.Axes.VerticalDepth, 1e-9)
}

func TestBaseStrategy_LateFourthDownCaps(t *testing.T) {
	team := testTeam(t, 0, 100, 50)
	s := Situation{TimeRemaining: 0, OffenseYardLine: 0, Down: 4}

	st := BaseStrategy(team, s, true)
	assert.Equal(t, 100.0, st.Axes.Aggression)
	assert.Equal(t, 100.0, st.Axes.VerticalDepth)
	assert.Equal(t, 100.0, st.Axes.PositionalFocus)
	assert.InDelta(t, 1.0, st.Modifiers.Tempo, 1e-12)
	assert.InDelta(t, 0.7, st.Modifiers.Deception, 1e-9)
}

func TestGenerate_StoresCurrentStrategy(t *testing.T) {
	team := testTeam(t, 40, 60, 70)
	s := Situation{TimeRemaining: 1800, OffenseYardLine: 60, Down: 3}

	st := Generate(team, s, true, -7)
	assert.Equal(t, st, team.CurrentStrategy)

	base := BaseStrategy(team, s, true)
	assert.InDelta(t, base.Axes.Aggression, st.Axes.Aggression, 10)
	assert.InDelta(t, base.Axes.VerticalDepth, st.Axes.VerticalDepth, 10)
}

func TestGenerate_IsDeterministic(t *testing.T) {
	team := testTeam(t, 40, 60, 70)
	s := Situation{TimeRemaining: 900, OffenseYardLine: 80, Down: 2}
	assert.Equal(t, Generate(team, s, false, 3), Generate(team, s, false, 3))
}

func TestVectorize_Invariants(t *testing.T) {
	src := rng.New(99)
	for i := 0; i < 2000; i++ {
		st := football.DynamicStrategy{
			Axes: football.StrategicAxes{
				Aggression:      src.Uniform(0, 100),
				VerticalDepth:   src.Uniform(0, 100),
				PositionalFocus: src.Uniform(0, 100),
			},
			Modifiers: football.ExecutionModifiers{Tempo: src.Float64(), Deception: src.Float64()},
		}
		v := Vectorize(st, src)

		require.InDelta(t, 1.0, v.TCon+v.APrec+v.AProf+v.TEva, 1e-9)
		require.InDelta(t, 1.0, v.R+v.C, 1e-12)
		require.GreaterOrEqual(t, v.R, 0.0)
		require.LessOrEqual(t, v.R, 1.0)
		require.GreaterOrEqual(t, v.BlConc, 0.0)
		require.LessOrEqual(t, v.BlConc, 1.0)
		require.GreaterOrEqual(t, v.EjEspec, 0.0)
		require.LessOrEqual(t, v.EjEspec, 1.0)
	}
}

func TestVectorize_FreshRandomnessEachCall(t *testing.T) {
	st := football.DynamicStrategy{
		Axes:      football.StrategicAxes{Aggression: 50, VerticalDepth: 50, PositionalFocus: 50},
		Modifiers: football.ExecutionModifiers{Tempo: 0.5, Deception: 0.5},
	}
	src := rng.New(3)
	assert.NotEqual(t, Vectorize(st, src), Vectorize(st, src))

	seq := rng.NewSequence(0.5)
	Vectorize(st, seq)
	assert.Equal(t, 4, seq.Draws())
}

func TestVectorize_RiskAndResponsibility(t *testing.T) {
	st := football.DynamicStrategy{
		Axes:      football.StrategicAxes{Aggression: 100, VerticalDepth: 0, PositionalFocus: 100},
		Modifiers: football.ExecutionModifiers{Tempo: 1},
	}
	v := Vectorize(st, rng.Constant(0))
	assert.Equal(t, 1.0, v.R)
	assert.Equal(t, 0.0, v.C)
	assert.Equal(t, 0.7, v.BlConc)
	assert.Equal(t, 1.0, v.EjEspec)
}

func TestPlayVector_Classify(t *testing.T) {
	tests := []struct {
		name string
		v    PlayVector
		want PlayClass
	}{
		{"deep", PlayVector{AProf: 0.45, APrec: 0.05, TCon: 0.25, TEva: 0.25}, ClassDeepPass},
		{"short", PlayVector{AProf: 0.2, APrec: 0.4, TCon: 0.2, TEva: 0.2}, ClassShortPass},
		{"run", PlayVector{AProf: 0.1, APrec: 0.2, TCon: 0.4, TEva: 0.3}, ClassRun},
		{"tie goes to run", PlayVector{AProf: 0.25, APrec: 0.25, TCon: 0.25, TEva: 0.25}, ClassRun},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Classify())
		})
	}
}
