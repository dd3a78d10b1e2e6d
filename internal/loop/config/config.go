// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Arena resolution in logical pixels. Rendering scales to fit the host.
const (
	ArenaWidth  = 480
	ArenaHeight = 640
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Simulation tick rate. Speeds in Tuning are pixels per tick.
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// MaxCatchUp bounds how many times a periodic job fires in one frame after
// the host stalled.
const MaxCatchUp = 3

// Tuning holds the gameplay parameters. Zero values are not meaningful; start
// from Default and override.
type Tuning struct {
	ArenaWidth  float64 `toml:"arena_width"`
	ArenaHeight float64 `toml:"arena_height"`

	PlayerWidth   float64       `toml:"player_width"`
	PlayerHeight  float64       `toml:"player_height"`
	PlayerSpeed   float64       `toml:"player_speed"`
	PlayerMargin  float64       `toml:"player_margin"`
	ShootCooldown time.Duration `toml:"shoot_cooldown"`
	ShotPenalty   int           `toml:"shot_penalty"`

	BulletWidth    float64 `toml:"bullet_width"`
	BulletHeight   float64 `toml:"bullet_height"`
	BulletSpeed    float64 `toml:"bullet_speed"`
	SpreadDX       float64 `toml:"spread_dx"`
	BounceDX       float64 `toml:"bounce_dx"`
	BounceBudget   int     `toml:"bounce_budget"`
	ScorePlayer    int     `toml:"score_player_kill"`
	ScoreCompanion int     `toml:"score_companion_kill"`

	InitialHealth int `toml:"initial_health"`
	MaxHealth     int `toml:"max_health"`

	EnemySpawnInterval     time.Duration `toml:"enemy_spawn_interval"`
	PowerUpSpawnInterval   time.Duration `toml:"powerup_spawn_interval"`
	CompanionSpawnInterval time.Duration `toml:"companion_spawn_interval"`
	HealthSpawnInterval    time.Duration `toml:"health_spawn_interval"`

	PowerUpSize     float64       `toml:"powerup_size"`
	PowerUpSpeed    float64       `toml:"powerup_speed"`
	PowerUpDuration time.Duration `toml:"powerup_duration"`

	CompanionSize float64 `toml:"companion_size"`
	CompanionGap  float64 `toml:"companion_gap"`

	ExplosionRadius   float64       `toml:"explosion_radius"`
	ExplosionDuration time.Duration `toml:"explosion_duration"`
}

// Default returns the stock tuning.
func Default() Tuning {
	return Tuning{
		ArenaWidth:  ArenaWidth,
		ArenaHeight: ArenaHeight,

		PlayerWidth:   40,
		PlayerHeight:  40,
		PlayerSpeed:   5,
		PlayerMargin:  10,
		ShootCooldown: 300 * time.Millisecond,
		ShotPenalty:   2,

		BulletWidth:    6,
		BulletHeight:   12,
		BulletSpeed:    7,
		SpreadDX:       2,
		BounceDX:       2,
		BounceBudget:   3,
		ScorePlayer:    10,
		ScoreCompanion: 15,

		InitialHealth: 3,
		MaxHealth:     5,

		EnemySpawnInterval:     1500 * time.Millisecond,
		PowerUpSpawnInterval:   10 * time.Second,
		CompanionSpawnInterval: 30 * time.Second,
		HealthSpawnInterval:    40 * time.Second,

		PowerUpSize:     20,
		PowerUpSpeed:    1.5,
		PowerUpDuration: 8 * time.Second,

		CompanionSize: 30,
		CompanionGap:  10,

		ExplosionRadius:   30,
		ExplosionDuration: 500 * time.Millisecond,
	}
}

// Load reads a TOML tuning file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to read tuning %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Tuning{}, fmt.Errorf("unknown tuning keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("invalid tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate reports the first nonsensical parameter.
func (t Tuning) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"arena_width", t.ArenaWidth},
		{"arena_height", t.ArenaHeight},
		{"player_width", t.PlayerWidth},
		{"player_height", t.PlayerHeight},
		{"player_speed", t.PlayerSpeed},
		{"bullet_width", t.BulletWidth},
		{"bullet_height", t.BulletHeight},
		{"bullet_speed", t.BulletSpeed},
		{"powerup_size", t.PowerUpSize},
		{"powerup_speed", t.PowerUpSpeed},
		{"companion_size", t.CompanionSize},
		{"explosion_radius", t.ExplosionRadius},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%s must be positive, got %v", p.name, p.v)
		}
	}

	durations := []struct {
		name string
		v    time.Duration
	}{
		{"shoot_cooldown", t.ShootCooldown},
		{"enemy_spawn_interval", t.EnemySpawnInterval},
		{"powerup_spawn_interval", t.PowerUpSpawnInterval},
		{"companion_spawn_interval", t.CompanionSpawnInterval},
		{"health_spawn_interval", t.HealthSpawnInterval},
		{"powerup_duration", t.PowerUpDuration},
		{"explosion_duration", t.ExplosionDuration},
	}
	for _, d := range durations {
		if d.v <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.v)
		}
	}

	if t.PlayerWidth > t.ArenaWidth || t.PlayerHeight+t.PlayerMargin > t.ArenaHeight {
		return errors.New("player does not fit in the arena")
	}
	if t.InitialHealth <= 0 {
		return fmt.Errorf("initial_health must be positive, got %d", t.InitialHealth)
	}
	if t.MaxHealth < t.InitialHealth {
		return fmt.Errorf("max_health (%d) is below initial_health (%d)", t.MaxHealth, t.InitialHealth)
	}
	if t.ShotPenalty < 0 || t.BounceBudget < 0 {
		return errors.New("shot_penalty and bounce_budget must not be negative")
	}
	return nil
}
