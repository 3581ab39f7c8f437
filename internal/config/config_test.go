package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("COINGAME_WIDTH", "1024")
	t.Setenv("COINGAME_NETWORK_DELAY", "50ms")
	t.Setenv("COINGAME_WINNING_SCORE", "3")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 1024.0, cfg.GameWidth)
	assert.Equal(t, 50*time.Millisecond, cfg.NetworkDelay)
	assert.Equal(t, 3, cfg.WinningScore)
	// Untouched options keep their defaults
	assert.Equal(t, 600.0, cfg.GameHeight)
}

func TestFromEnvRejectsGarbage(t *testing.T) {
	t.Setenv("COINGAME_TICK_RATE", "sixty")

	_, err := FromEnv()
	require.Error(t, err)
}

func TestValidateRejectsBroadcastFasterThanTick(t *testing.T) {
	cfg := Default()
	cfg.BroadcastRate = cfg.TickRate + 1
	require.Error(t, cfg.Validate())
}

func TestIntervals(t *testing.T) {
	cfg := Default()
	assert.Equal(t, time.Second/60, cfg.TickInterval())
	assert.Equal(t, 50*time.Millisecond, cfg.BroadcastInterval())
	assert.Equal(t, 50*time.Millisecond, cfg.InputSendInterval())
}
