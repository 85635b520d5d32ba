package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadSpec reads and decodes a yaml prefab into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// WeaponSpec is the weapon's data-driven base state. Upgrades mutate the
// live weapon; this is only where a run starts.
type WeaponSpec struct {
	FireRate         float64 `yaml:"fire_rate"`
	Damage           float64 `yaml:"damage"`
	MultiShot        int     `yaml:"multi_shot"`
	SpreadAngleDeg   float64 `yaml:"spread_angle_deg"`
	Piercing         bool    `yaml:"piercing"`
	HomingStrength   float64 `yaml:"homing_strength"`
	AutoTargetRange  float64 `yaml:"auto_target_range"`
	Pattern          string  `yaml:"pattern"`
	ProjectileSpeed  float64 `yaml:"projectile_speed"`
	ProjectileRange  float64 `yaml:"projectile_range"`
	ProjectileRadius float64 `yaml:"projectile_radius"`
}

func LoadWeaponSpec() (*WeaponSpec, error) {
	spec, err := LoadSpec[WeaponSpec]("weapon.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// EnemyKindSpec is one roster entry.
type EnemyKindSpec struct {
	Name          string  `yaml:"name"`
	Speed         float64 `yaml:"speed"`
	Health        float64 `yaml:"health"`
	HalfExtent    float64 `yaml:"half_extent"`
	Weight        int     `yaml:"weight"`
	ContactDamage float64 `yaml:"contact_damage"`
	Color         string  `yaml:"color"`
}

// EnemyRosterSpec is the spawnable enemy set plus spawn pacing.
type EnemyRosterSpec struct {
	SpawnRate  float64         `yaml:"spawn_rate"`
	MaxEnemies int             `yaml:"max_enemies"`
	Enemies    []EnemyKindSpec `yaml:"enemies"`
}

func LoadEnemyRosterSpec() (*EnemyRosterSpec, error) {
	spec, err := LoadSpec[EnemyRosterSpec]("enemies.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ArenaSpec parameterizes procedural arena generation.
type ArenaSpec struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	ObstacleDensity float64 `yaml:"obstacle_density"`
	WaterPools      int     `yaml:"water_pools"`
	ClearRadius     float64 `yaml:"clear_radius"`
}

func LoadArenaSpec() (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec]("arena.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// PlayerSpec holds player movement, survivability, and progression tuning.
type PlayerSpec struct {
	MoveSpeed  float64 `yaml:"move_speed"`
	Health     float64 `yaml:"health"`
	HalfExtent float64 `yaml:"half_extent"`
	// IFrameMs is the invulnerability window after taking contact damage.
	IFrameMs float64 `yaml:"iframe_ms"`
	// XPPerKill, XPBase, XPPerLevel define the linear level curve:
	// next level at XPBase + XPPerLevel*(level-1).
	XPPerKill  int `yaml:"xp_per_kill"`
	XPBase     int `yaml:"xp_base"`
	XPPerLevel int `yaml:"xp_per_level"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
