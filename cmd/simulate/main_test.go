package main

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gridiron-sim/internal/engine"
	"github.com/stitts-dev/gridiron-sim/internal/rng"
	"github.com/stitts-dev/gridiron-sim/internal/roster"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
)

func TestInitLogging_WritesToStderr(t *testing.T) {
	t.Cleanup(func() { logger.SetOutput(os.Stdout) })

	log := initLogging("debug", true)
	assert.Same(t, logger.GetLogger(), log)
	assert.Equal(t, os.Stderr, log.Out)
}

func TestRunMatch(t *testing.T) {
	tests := []struct {
		name      string
		cancelled bool
		wantErr   error
	}{
		{"plays to the final whistle", false, nil},
		{"stops when interrupted", true, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home, err := roster.Generate("Home", rng.New(1))
			require.NoError(t, err)
			away, err := roster.Generate("Away", rng.New(2))
			require.NoError(t, err)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.cancelled {
				cancel()
			}

			out, err := runMatch(ctx, home, away, engine.Config{}, rng.New(3))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, out)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0.0, out.Summary.Final.TimeRemaining)
			require.NotEmpty(t, out.Drives)
			assert.Equal(t, engine.DriveEndOfGame, out.Drives[len(out.Drives)-1].Result)
		})
	}
}
