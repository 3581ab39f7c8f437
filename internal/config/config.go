// Package config collects every tunable the game recognizes: field
// dimensions, movement and coin parameters, the simulated network delay,
// and all the loop rates. The server reads it once at startup; the client
// CLI exposes the client-side subset as flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all recognized game options
type Config struct {
	// ListenAddr is the server's listen address
	ListenAddr string

	// Game area dimensions, in game units
	GameWidth  float64
	GameHeight float64

	// Player circle radius and movement speed (units per second)
	PlayerRadius float64
	PlayerSpeed  float64

	// Coin circle radius, spawn cadence, and concurrent cap
	CoinRadius        float64
	CoinSpawnInterval time.Duration
	MaxCoins          int

	// NetworkDelay is the simulated one-way latency applied to every
	// message in both directions
	NetworkDelay time.Duration

	// TickRate is the authoritative simulation rate (Hz)
	TickRate int
	// BroadcastRate is the snapshot broadcast rate (Hz), slower than TickRate
	BroadcastRate int
	// InputSendRate is the client's input send rate (Hz)
	InputSendRate int

	// RenderDelay is how far behind now the client renders remote entities
	RenderDelay time.Duration
	// InterpRetention bounds how long snapshots stay in the client buffer
	InterpRetention time.Duration

	// Match rules
	MatchDuration time.Duration
	WinningScore  int
}

// Default returns the standard game configuration
func Default() Config {
	return Config{
		ListenAddr:        ":8765",
		GameWidth:         800,
		GameHeight:        600,
		PlayerRadius:      15,
		PlayerSpeed:       200,
		CoinRadius:        10,
		CoinSpawnInterval: 3 * time.Second,
		MaxCoins:          5,
		NetworkDelay:      200 * time.Millisecond,
		TickRate:          60,
		BroadcastRate:     20,
		InputSendRate:     20,
		RenderDelay:       100 * time.Millisecond,
		InterpRetention:   time.Second,
		MatchDuration:     60 * time.Second,
		WinningScore:      10,
	}
}

// FromEnv returns the default configuration with COINGAME_* environment
// overrides applied
func FromEnv() (Config, error) {
	cfg := Default()

	var err error
	if cfg.ListenAddr, err = envString("COINGAME_ADDR", cfg.ListenAddr); err != nil {
		return cfg, err
	}
	if cfg.GameWidth, err = envFloat("COINGAME_WIDTH", cfg.GameWidth); err != nil {
		return cfg, err
	}
	if cfg.GameHeight, err = envFloat("COINGAME_HEIGHT", cfg.GameHeight); err != nil {
		return cfg, err
	}
	if cfg.PlayerRadius, err = envFloat("COINGAME_PLAYER_RADIUS", cfg.PlayerRadius); err != nil {
		return cfg, err
	}
	if cfg.PlayerSpeed, err = envFloat("COINGAME_PLAYER_SPEED", cfg.PlayerSpeed); err != nil {
		return cfg, err
	}
	if cfg.CoinRadius, err = envFloat("COINGAME_COIN_RADIUS", cfg.CoinRadius); err != nil {
		return cfg, err
	}
	if cfg.CoinSpawnInterval, err = envDuration("COINGAME_COIN_SPAWN_INTERVAL", cfg.CoinSpawnInterval); err != nil {
		return cfg, err
	}
	if cfg.MaxCoins, err = envInt("COINGAME_MAX_COINS", cfg.MaxCoins); err != nil {
		return cfg, err
	}
	if cfg.NetworkDelay, err = envDuration("COINGAME_NETWORK_DELAY", cfg.NetworkDelay); err != nil {
		return cfg, err
	}
	if cfg.TickRate, err = envInt("COINGAME_TICK_RATE", cfg.TickRate); err != nil {
		return cfg, err
	}
	if cfg.BroadcastRate, err = envInt("COINGAME_BROADCAST_RATE", cfg.BroadcastRate); err != nil {
		return cfg, err
	}
	if cfg.InputSendRate, err = envInt("COINGAME_INPUT_SEND_RATE", cfg.InputSendRate); err != nil {
		return cfg, err
	}
	if cfg.RenderDelay, err = envDuration("COINGAME_RENDER_DELAY", cfg.RenderDelay); err != nil {
		return cfg, err
	}
	if cfg.InterpRetention, err = envDuration("COINGAME_INTERP_RETENTION", cfg.InterpRetention); err != nil {
		return cfg, err
	}
	if cfg.MatchDuration, err = envDuration("COINGAME_MATCH_DURATION", cfg.MatchDuration); err != nil {
		return cfg, err
	}
	if cfg.WinningScore, err = envInt("COINGAME_WINNING_SCORE", cfg.WinningScore); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate reports the first nonsensical option, if any
func (c Config) Validate() error {
	switch {
	case c.GameWidth <= 2*c.PlayerRadius || c.GameHeight <= 2*c.PlayerRadius:
		return fmt.Errorf("game area %gx%g cannot fit a player of radius %g",
			c.GameWidth, c.GameHeight, c.PlayerRadius)
	case c.TickRate <= 0:
		return fmt.Errorf("tick rate must be positive, got %d", c.TickRate)
	case c.BroadcastRate <= 0 || c.BroadcastRate > c.TickRate:
		return fmt.Errorf("broadcast rate %d must be in 1..tick rate %d", c.BroadcastRate, c.TickRate)
	case c.MaxCoins <= 0:
		return fmt.Errorf("max coins must be positive, got %d", c.MaxCoins)
	case c.NetworkDelay < 0:
		return fmt.Errorf("network delay cannot be negative, got %s", c.NetworkDelay)
	case c.WinningScore <= 0 && c.MatchDuration <= 0:
		return fmt.Errorf("at least one termination condition is required")
	}
	return nil
}

// TickInterval returns the duration of one simulation tick
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// BroadcastInterval returns the duration between snapshot broadcasts
func (c Config) BroadcastInterval() time.Duration {
	return time.Second / time.Duration(c.BroadcastRate)
}

// InputSendInterval returns the minimum duration between input sends
func (c Config) InputSendInterval() time.Duration {
	return time.Second / time.Duration(c.InputSendRate)
}

func envString(key, def string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	return def, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
