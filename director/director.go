// Package director drives the difficulty ramp from an embedded tengo script,
// so pacing can be retuned without recompiling the game.
package director

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/avaret/nightswarm/prefabs"
)

// Scaling is the multiplier set the script produces for a point in run time.
type Scaling struct {
	SpawnRate float64
	Health    float64
	Speed     float64
}

// Identity applies no scaling. It is the fallback whenever the script
// misbehaves.
var Identity = Scaling{SpawnRate: 1, Health: 1, Speed: 1}

// Director owns one compiled difficulty script. The script reads
// elapsed_seconds and leaves spawn_rate_mult, health_mult, and speed_mult as
// globals; anything it doesn't set stays at 1.
type Director struct {
	compiled *tengo.Compiled
	warned   bool
}

// New compiles a difficulty script from source.
func New(src []byte) (*Director, error) {
	script := tengo.NewScript(src)
	if err := script.Add("elapsed_seconds", 0.0); err != nil {
		return nil, fmt.Errorf("director: add elapsed_seconds: %w", err)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("director: compile: %w", err)
	}
	return &Director{compiled: compiled}, nil
}

// FromPrefab compiles the named embedded script.
func FromPrefab(name string) (*Director, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("director: load script %s: %w", name, err)
	}
	return New(src)
}

// Scale runs the script for the given run time. Script failures are logged
// once and neutralized to Identity; difficulty is tuning, never a crash.
func (d *Director) Scale(elapsedSeconds float64) Scaling {
	if d == nil || d.compiled == nil {
		return Identity
	}

	if err := d.compiled.Set("elapsed_seconds", elapsedSeconds); err != nil {
		d.warn(err)
		return Identity
	}
	if err := d.compiled.Run(); err != nil {
		d.warn(err)
		return Identity
	}

	return Scaling{
		SpawnRate: d.floatGlobal("spawn_rate_mult"),
		Health:    d.floatGlobal("health_mult"),
		Speed:     d.floatGlobal("speed_mult"),
	}
}

func (d *Director) floatGlobal(name string) float64 {
	if !d.compiled.IsDefined(name) {
		return 1
	}
	v := d.compiled.Get(name).Float()
	if v <= 0 {
		return 1
	}
	return v
}

func (d *Director) warn(err error) {
	if d.warned {
		return
	}
	d.warned = true
	log.Printf("director: script error, difficulty frozen at identity: %v", err)
}
