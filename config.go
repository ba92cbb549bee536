package server

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries every tunable of the simulation. DefaultConfig covers the
// stock single-room layout; LoadConfig overlays a YAML tuning file on top of
// the defaults so deployments only spell out what they change.
type Config struct {
	TickRate      int   `yaml:"tick_rate_hz"`
	Seed          int64 `yaml:"seed"`
	SeedItemCount int   `yaml:"seed_item_count"`

	WorldBound float64 `yaml:"world_bound"`
	SpawnBound float64 `yaml:"spawn_bound"`

	PlayerSpeed     float64 `yaml:"player_speed"`
	TurnRate        float64 `yaml:"turn_rate"`
	PickupRadius    float64 `yaml:"pickup_radius"`
	PlaceRadius     float64 `yaml:"place_radius"`
	ShelfHalfWidth  float64 `yaml:"shelf_half_width"`
	CharacterRadius float64 `yaml:"character_radius"`

	EffectTTLSeconds float64 `yaml:"effect_ttl_seconds"`
	PlaceGuardMillis int     `yaml:"place_guard_millis"`

	Thief ThiefConfig `yaml:"thief"`

	ShelfAnchors []Vec3           `yaml:"shelf_anchors"`
	Catalog      []ItemDefinition `yaml:"catalog"`
}

// ThiefConfig tunes the autonomous thief agent.
type ThiefConfig struct {
	WaitSeconds     float64 `yaml:"wait_seconds"`
	CooldownSeconds float64 `yaml:"cooldown_seconds"`
	Speed           float64 `yaml:"speed"`
	FleeSpeed       float64 `yaml:"flee_speed"`
	CaptureRadius   float64 `yaml:"capture_radius"`
	StealRadius     float64 `yaml:"steal_radius"`
	ArriveRadius    float64 `yaml:"arrive_radius"`
	Door            Vec3    `yaml:"door"`
	Entry           Vec3    `yaml:"entry"`
}

// DefaultConfig returns the stock tuning: 8 shelf anchors in two aisles, six
// catalog entries, and the radii the interaction rules are balanced around.
func DefaultConfig() Config {
	return Config{
		TickRate:         30,
		Seed:             0,
		SeedItemCount:    5,
		WorldBound:       4.5,
		SpawnBound:       4.0,
		PlayerSpeed:      3.0,
		TurnRate:         0.15,
		PickupRadius:     0.5,
		PlaceRadius:      0.8,
		ShelfHalfWidth:   0.35,
		CharacterRadius:  0.2,
		EffectTTLSeconds: 1.0,
		PlaceGuardMillis: 100,
		Thief: ThiefConfig{
			WaitSeconds:     10,
			CooldownSeconds: 5,
			Speed:           1.6,
			FleeSpeed:       3.2,
			CaptureRadius:   0.7,
			StealRadius:     0.5,
			ArriveRadius:    0.1,
			Door:            Vec3{X: 0, Z: 5.2},
			Entry:           Vec3{X: 0, Z: 3.6},
		},
		ShelfAnchors: defaultShelfAnchors(),
		Catalog:      defaultItemCatalog(),
	}
}

// LoadConfig reads a YAML tuning file over the defaults. Fields absent from
// the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("simulation config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("simulation config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate_hz must be positive, got %d", c.TickRate)
	}
	if c.WorldBound <= 0 || c.SpawnBound <= 0 {
		return fmt.Errorf("world_bound and spawn_bound must be positive")
	}
	if c.SpawnBound > c.WorldBound {
		return fmt.Errorf("spawn_bound %.2f exceeds world_bound %.2f", c.SpawnBound, c.WorldBound)
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"player_speed", c.PlayerSpeed},
		{"turn_rate", c.TurnRate},
		{"pickup_radius", c.PickupRadius},
		{"place_radius", c.PlaceRadius},
		{"shelf_half_width", c.ShelfHalfWidth},
		{"character_radius", c.CharacterRadius},
		{"effect_ttl_seconds", c.EffectTTLSeconds},
		{"thief.speed", c.Thief.Speed},
		{"thief.flee_speed", c.Thief.FleeSpeed},
		{"thief.capture_radius", c.Thief.CaptureRadius},
		{"thief.steal_radius", c.Thief.StealRadius},
		{"thief.arrive_radius", c.Thief.ArriveRadius},
		{"thief.wait_seconds", c.Thief.WaitSeconds},
		{"thief.cooldown_seconds", c.Thief.CooldownSeconds},
	} {
		if v.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", v.name, v.value)
		}
	}
	if len(c.ShelfAnchors) == 0 {
		return fmt.Errorf("shelf_anchors must not be empty")
	}
	if len(c.Catalog) == 0 {
		return fmt.Errorf("catalog must not be empty")
	}
	for i, def := range c.Catalog {
		if def.Name == "" {
			return fmt.Errorf("catalog[%d]: name must not be empty", i)
		}
		if def.Scale <= 0 {
			return fmt.Errorf("catalog[%d] %s: scale must be positive", i, def.Name)
		}
	}
	return nil
}

// placeGuardTicks converts the wall-clock guard window into whole ticks of
// the simulation clock, never fewer than one.
func (c Config) placeGuardTicks() int {
	ticks := int(math.Ceil(float64(c.PlaceGuardMillis) / 1000.0 * float64(c.TickRate)))
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// secondsToTicks converts a duration in seconds to whole simulation ticks.
func (c Config) secondsToTicks(seconds float64) int {
	ticks := int(math.Round(seconds * float64(c.TickRate)))
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}
