package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/df-mc/oreveins/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ironVein = `{
	"type": "cone",
	"count": 5,
	"rarity": 1,
	"min_y": 10,
	"max_y": 50,
	"density": 50,
	"ore": "minecraft:iron_ore"
}`

// setupDir creates a config and a vein folder holding a single iron vein, and returns the config path.
func setupDir(t *testing.T, database bool) string {
	t.Helper()
	dir := t.TempDir()
	veins := filepath.Join(dir, "veins")
	require.NoError(t, os.MkdirAll(veins, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(veins, "iron.json"), []byte(ironVein), 0o644))

	c := config.Default()
	c.Veins.Folder = veins
	c.World.Seed = 42
	if database {
		c.Veins.Database = filepath.Join(dir, "db")
	}
	path := filepath.Join(dir, "oreveins.toml")
	require.NoError(t, config.Save(path, c))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	path := setupDir(t, false)
	out, err := execute(t, "list", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "oreveins:iron")
	assert.Contains(t, out, "Cone")
	assert.Contains(t, out, "10-50")
}

func TestInfoCommand(t *testing.T) {
	path := setupDir(t, false)
	out, err := execute(t, "info", "oreveins:iron", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ore: minecraft:iron_ore")
	assert.Contains(t, out, "chunk radius: 1")

	_, err = execute(t, "info", "oreveins:gold", "--config", path)
	assert.Error(t, err)
}

func TestGenerateCommand(t *testing.T) {
	path := setupDir(t, false)
	out, err := execute(t, "generate", "--config", path, "--radius", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "minecraft:iron_ore")
	// Coal ore is disabled by the default config.
	assert.NotContains(t, out, "minecraft:coal_ore")

	stripped, err := execute(t, "generate", "--config", path, "--radius", "1", "--strip")
	require.NoError(t, err)
	assert.Contains(t, stripped, "minecraft:iron_ore")
	assert.NotContains(t, stripped, "minecraft:dirt")
}

func TestImportCommand(t *testing.T) {
	path := setupDir(t, true)
	out, err := execute(t, "list", "--config", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "oreveins:iron")

	c, err := config.Load(path)
	require.NoError(t, err)
	_, err = execute(t, "import", c.Veins.Folder, "--config", path)
	require.NoError(t, err)

	out, err = execute(t, "list", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "oreveins:iron")
}
