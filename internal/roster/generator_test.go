package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gridiron-sim/internal/football"
	"github.com/stitts-dev/gridiron-sim/internal/rng"
)

func TestGenerate_DefaultTemplate(t *testing.T) {
	team, err := Generate("Bears", rng.New(7))
	require.NoError(t, err)
	require.NoError(t, team.Validate())

	counts := map[football.Role]int{}
	for _, p := range team.Players {
		counts[p.Role]++
		assert.Equal(t, 100.0, p.Energy)
	}
	for _, slot := range DefaultTemplate {
		assert.Equal(t, slot.Count, counts[slot.Role], slot.Role.String())
	}
	assert.Len(t, team.Players, 17)

	for _, role := range football.CoachRoles {
		require.NotNil(t, team.Staff.Coach(role), role.String())
	}
}

func TestGenerate_PrimaryAttributesUseHigherBand(t *testing.T) {
	team, err := Generate("Lions", rng.New(11))
	require.NoError(t, err)

	for _, p := range team.Players {
		for _, attr := range primaryAttributes[p.Role] {
			v := p.Attributes.Get(attr)
			assert.GreaterOrEqual(t, v, primaryMin, p.Name)
			assert.LessOrEqual(t, v, primaryMax, p.Name)
		}
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	a, err := Generate("Packers", rng.New(42))
	require.NoError(t, err)
	b, err := Generate("Packers", rng.New(42))
	require.NoError(t, err)

	require.Len(t, b.Players, len(a.Players))
	for i := range a.Players {
		assert.Equal(t, a.Players[i].Attributes, b.Players[i].Attributes)
	}
	assert.Equal(t, a.OffenseSpecialization, b.OffenseSpecialization)
	assert.Equal(t, a.Staff.Overall, b.Staff.Overall)
}

func TestGenerateWithTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template []Slot
		wantErr  error
		players  int
	}{
		{"one per role", []Slot{
			{football.RoleQuarterback, 1}, {football.RoleRunner, 1}, {football.RoleBlocker, 1},
			{football.RoleZoneDefender, 1}, {football.RoleManDefender, 1}, {football.RoleKicker, 1},
		}, nil, 6},
		{"no kicker", DefaultTemplate[:len(DefaultTemplate)-1], nil, 16},
		{"kicker only", []Slot{{football.RoleKicker, 1}}, football.ErrMissingRole, 0},
		{"offense only", []Slot{{football.RoleQuarterback, 2}, {football.RoleRunner, 1}, {football.RoleBlocker, 2}}, football.ErrMissingRole, 0},
		{"empty", nil, football.ErrEmptyRoster, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team, err := GenerateWithTemplate("Custom", tt.template, rng.New(1))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, team.Players, tt.players)
		})
	}
}
