// Package config holds the user configuration of vein generation, stored as a TOML file.
package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/df-mc/oreveins/server/vein"
	"github.com/df-mc/oreveins/server/world"
	"github.com/pelletier/go-toml"
)

// Config is the user configuration of vein generation. It is read from and written to a TOML file using Load and
// Save.
type Config struct {
	// DisabledBlockStates lists the block states whose vanilla ore features are removed from all biomes, so that
	// veins can replace them.
	DisabledBlockStates []string `toml:"disabled_block_states" comment:"Block states whose vanilla ore generation is disabled."`
	// NoOres disables all vanilla ore features, regardless of DisabledBlockStates.
	NoOres bool `toml:"no_ores" comment:"Disable every vanilla ore feature."`
	// AvoidVeinCutoffs keeps veins away from the minimum and maximum Y of their definition, so that they are not cut
	// off at those heights.
	AvoidVeinCutoffs bool `toml:"avoid_vein_cutoffs" comment:"Keep veins within the Y bounds of their definition."`
	// Flags are the flags vein definitions may refer to in their conditions.
	Flags []string `toml:"flags" comment:"Flags that vein definition conditions may test for."`

	Veins struct {
		// Folder is the directory vein definitions are loaded from.
		Folder string `toml:"folder"`
		// Database is the path of a LevelDB database vein definitions are loaded from instead of Folder, if not
		// empty.
		Database string `toml:"database"`
		// Watch reloads definitions when files in Folder change.
		Watch bool `toml:"watch"`
	} `toml:"veins"`
	World struct {
		// Seed is the seed of generated worlds.
		Seed int64 `toml:"seed"`
	} `toml:"world"`
	Metrics struct {
		// Address is the address Prometheus metrics are served on. Metrics are not served if empty.
		Address string `toml:"address"`
	} `toml:"metrics"`
}

// Default returns a Config with the default values filled out. All vanilla ores are disabled by default.
func Default() Config {
	c := Config{AvoidVeinCutoffs: true}
	for _, s := range []world.BlockState{
		world.CoalOre, world.IronOre, world.GoldOre, world.LapisOre,
		world.DiamondOre, world.RedstoneOre, world.EmeraldOre,
	} {
		c.DisabledBlockStates = append(c.DisabledBlockStates, s.String())
	}
	c.Veins.Folder = "veins"
	return c
}

// Load reads a Config from the TOML file at the path passed. Fields absent from the file keep their default value.
// If the file does not exist, it is created with the default configuration.
func Load(path string) (Config, error) {
	c := Default()
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, Save(path, c)
		}
		return c, errors.Wrap(err, "read config")
	}
	if len(contents) != 0 {
		if err := toml.Unmarshal(contents, &c); err != nil {
			return c, errors.Wrap(err, "decode config")
		}
	}
	c = c.withDefaults()
	if _, err := c.DisabledStates(); err != nil {
		return c, err
	}
	return c, nil
}

// Save writes a Config to the TOML file at the path passed, creating its directory if needed.
func Save(path string, c Config) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return errors.Wrap(err, "create config directory")
		}
	}
	encoded, err := toml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}

func (c Config) withDefaults() Config {
	c.DisabledBlockStates = normalise(c.DisabledBlockStates)
	c.Flags = normalise(c.Flags)
	if strings.TrimSpace(c.Veins.Folder) == "" {
		c.Veins.Folder = "veins"
	}
	return c
}

// DisabledStates parses DisabledBlockStates into a set.
func (c Config) DisabledStates() (*world.StateSet, error) {
	set := world.NewStateSet()
	for _, s := range c.DisabledBlockStates {
		st, err := world.ParseBlockState(s)
		if err != nil {
			return nil, errors.Wrapf(err, "disabled_block_states: %q", s)
		}
		set.Add(st)
	}
	return set, nil
}

// FlagSet returns Flags as vein.Flags with each flag set.
func (c Config) FlagSet() vein.Flags {
	f := make(vein.Flags, len(c.Flags))
	for _, name := range c.Flags {
		f[name] = true
	}
	return f
}

// normalise trims the values passed and removes empty values and duplicates, keeping the first occurrence.
func normalise(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
