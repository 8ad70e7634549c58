package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/df-mc/oreveins/server/vein/doc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, p, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0777))
	require.NoError(t, os.WriteFile(p, []byte(contents), 0644))
}

func TestDirectoryDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "iron.json"), `{"type": "cone", "ore": "minecraft:iron_ore", "count": 2}`)
	writeFile(t, filepath.Join(dir, "deep", "diamond.yaml"), "type: curve\nore:\n  - minecraft:diamond_ore\nradius: 3\n")
	writeFile(t, filepath.Join(dir, "README.md"), "not a definition")

	docs, err := NewDirectory(dir, "").Documents()
	require.NoError(t, err)
	require.Len(t, docs, 2)

	iron := docs["oreveins:iron"]
	n, err := iron.Int("count", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	diamond := docs["oreveins:deep/diamond"]
	assert.Equal(t, "curve", diamond["type"])
	r, err := diamond.Float("radius", 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, r)
	assert.Len(t, diamond.List("ore"), 1)
}

func TestDirectoryReportsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.json"), `{"type": "cone", "ore": "minecraft:coal_ore"}`)
	writeFile(t, filepath.Join(dir, "bad.json"), `{"type": "cone",`)
	writeFile(t, filepath.Join(dir, "list.yml"), "- a\n- b\n")

	docs, err := NewDirectory(dir, "custom").Documents()
	require.Error(t, err)
	assert.Contains(t, docs, "custom:good")
	assert.Len(t, docs, 1)

	var fileErr *FileError
	assert.ErrorAs(t, err, &fileErr)
}

func TestDirectoryMissing(t *testing.T) {
	docs, err := NewDirectory(filepath.Join(t.TempDir(), "missing"), "").Documents()
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLevelDB(t *testing.T) {
	db, err := OpenLevelDB(filepath.Join(t.TempDir(), "veins"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Import(map[string]doc.Document{
		"oreveins:iron": {"type": "cone", "ore": "minecraft:iron_ore"},
		"oreveins:gold": {"type": "sphere", "ore": "minecraft:gold_ore", "uniform": true},
	}))
	require.NoError(t, db.Put("oreveins:coal", doc.Document{"type": "cone", "ore": "minecraft:coal_ore", "count": 3}))

	docs, err := db.Documents()
	require.NoError(t, err)
	assert.Len(t, docs, 3)
	assert.Equal(t, true, docs["oreveins:gold"]["uniform"])

	coal, ok, err := db.Get("oreveins:coal")
	require.NoError(t, err)
	require.True(t, ok)
	n, err := coal.Int("count", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, db.Delete("oreveins:coal"))
	_, ok, err = db.Get("oreveins:coal")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(WatcherConfig{Dir: dir, Debounce: 20 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	changes := make(chan struct{}, 16)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = w.Run(ctx, func() { changes <- struct{}{} }) }()

	writeFile(t, filepath.Join(dir, "iron.json"), `{"type": "cone"}`)
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
