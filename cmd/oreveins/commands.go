package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"slices"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/df-mc/oreveins/server/vein"
	"github.com/df-mc/oreveins/server/vein/source"
	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
	"github.com/df-mc/oreveins/server/world/generator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var title = cases.Title(language.English)

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the vein types registered from the configured source",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, res, err := a.registry()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSHAPE\tY\tCOUNT\tRARITY\tORES")
			for _, e := range reg.Types() {
				t := e.Type
				fmt.Fprintf(tw, "%v\t%v\t%d-%d\t%d\t%d\t%v\n", e.ID, title.String(t.Shape.Name()), t.MinY, t.MaxY, t.Count, t.Rarity, t.Ores)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			printFailures(a, res)
			return nil
		},
	}
}

func infoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <id>",
		Short: "Describe a single vein type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, res, err := a.registry()
			if err != nil {
				return err
			}
			if err, ok := res.Failed[args[0]]; ok {
				return err
			}
			t, ok := reg.Type(args[0])
			if !ok {
				return errors.WithHintf(errors.Newf("vein %v is not registered", args[0]), "registered veins: %v", reg.IDs())
			}
			fmt.Fprintf(a.out, "%v (%v)\n", args[0], title.String(t.Shape.Name()))
			fmt.Fprintf(a.out, "  %v\n", t)
			fmt.Fprintf(a.out, "  biomes: %v\n  dimensions: %v\n  origin distance: %v\n", t.Biomes, t.Dimensions, t.OriginDistance)
			for _, r := range t.Rules {
				fmt.Fprintf(a.out, "  rule: %v\n", r)
			}
			for _, s := range t.OreStates().States() {
				fmt.Fprintf(a.out, "  ore: %v\n", s)
			}
			for _, ind := range t.Indicators.Values() {
				fmt.Fprintf(a.out, "  indicator: %v (1/%d, depth %d)\n", ind.Blocks, ind.Rarity, ind.MaxDepth)
			}
			fmt.Fprintf(a.out, "  chunk radius: %d\n", t.ChunkRadius())
			return nil
		},
	}
}

// area is a square of chunks generated by the generate and watch commands.
type area struct {
	x, z, radius int
	surface      int
	strip        bool
}

func (ar *area) flags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&ar.x, "chunk-x", "x", 0, "X coordinate of the centre chunk")
	cmd.Flags().IntVarP(&ar.z, "chunk-z", "z", 0, "Z coordinate of the centre chunk")
	cmd.Flags().IntVarP(&ar.radius, "radius", "r", 2, "Radius in chunks of the area generated")
	cmd.Flags().IntVar(&ar.surface, "surface", 64, "Surface height of the generated terrain")
	cmd.Flags().BoolVar(&ar.strip, "strip", false, "Replace everything but vein ores with air after generating")
}

// generate generates the area in a new Memory world and returns it.
func (ar *area) generate(g *generator.Generator, reg *vein.Registry) *world.Memory {
	w := world.NewMemory(world.MemoryConfig{
		Terrain: world.LayeredTerrain(ar.surface),
		Biomes:  g.Biomes().At(),
	})
	for cx := ar.x - ar.radius; cx <= ar.x+ar.radius; cx++ {
		for cz := ar.z - ar.radius; cz <= ar.z+ar.radius; cz++ {
			g.GenerateChunk(w, world.ChunkPos{int32(cx), int32(cz)})
		}
	}
	if ar.strip {
		centre := cube.Pos{ar.x<<4 + 8, 0, ar.z<<4 + 8}
		generator.Strip(w, centre, (ar.radius+1)<<4, reg.OreStates())
	}
	return w
}

// report writes the number of blocks of each state set in w.
func report(a *app, w *world.Memory) error {
	counts := map[string]int{}
	for _, s := range w.Changes() {
		if s != world.Air {
			counts[s.String()]++
		}
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATE\tBLOCKS")
	names := maps.Keys(counts)
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(tw, "%v\t%d\n", name, counts[name])
	}
	return tw.Flush()
}

func generateCmd(a *app) *cobra.Command {
	ar := &area{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an area of chunks in memory and count the blocks placed",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, res, err := a.registry()
			if err != nil {
				return err
			}
			printFailures(a, res)
			g := generator.New(generator.Config{Seed: a.conf.World.Seed, Registry: reg, Log: a.log})
			if err := g.Reconfigure(a.conf); err != nil {
				return err
			}
			return report(a, ar.generate(g, reg))
		},
	}
	ar.flags(cmd)
	return cmd
}

func importCmd(a *app) *cobra.Command {
	var (
		database  string
		namespace string
	)
	cmd := &cobra.Command{
		Use:   "import <folder>",
		Short: "Import the definitions of a folder into a LevelDB database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if database == "" {
				database = a.conf.Veins.Database
			}
			if database == "" {
				return errors.WithHint(errors.New("no database to import into"), "pass --database or set veins.database in the config")
			}
			docs, err := source.NewDirectory(args[0], namespace).Documents()
			if err != nil {
				a.log.Warn("Some definitions could not be read.", "error", err)
			}
			db, err := source.OpenLevelDB(database)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			if err := db.Import(docs); err != nil {
				return errors.Wrapf(err, "import into %v", database)
			}
			a.log.Info("Imported vein definitions.", "count", len(docs), "database", database)
			return nil
		},
	}
	cmd.Flags().StringVar(&database, "database", "", "Database path, defaults to veins.database of the config")
	cmd.Flags().StringVar(&namespace, "namespace", "", "Namespace of the imported ids")
	return cmd
}

func watchCmd(a *app) *cobra.Command {
	ar := &area{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload definitions when the vein folder changes and regenerate an area after every reload",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			promReg := prometheus.NewRegistry()
			metrics := generator.NewMetrics(promReg)
			if addr := a.conf.Metrics.Address; addr != "" {
				srv := &http.Server{Addr: addr, Handler: promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}), ReadHeaderTimeout: 5 * time.Second}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						a.log.Error("Metrics server stopped.", "error", err)
					}
				}()
				defer func() {
					sctx, cancel := context.WithTimeout(context.Background(), time.Second)
					defer cancel()
					_ = srv.Shutdown(sctx)
				}()
				a.log.Info("Serving metrics.", "address", addr)
			}

			src := source.NewDirectory(a.conf.Veins.Folder, "")
			reg := vein.NewRegistry(vein.RegistryConfig{Log: a.log, Flags: a.conf.FlagSet()})
			g := generator.New(generator.Config{Seed: a.conf.World.Seed, Registry: reg, Log: a.log, Metrics: metrics})
			if err := g.Reconfigure(a.conf); err != nil {
				return err
			}
			run := func() {
				res, err := reload(reg, src)
				if err != nil {
					a.log.Warn("Some definitions could not be read.", "error", err)
				}
				printFailures(a, res)
				if err := report(a, ar.generate(g, reg)); err != nil {
					a.log.Error("Report failed.", "error", err)
				}
			}
			run()

			w, err := source.NewWatcher(source.WatcherConfig{Dir: src.Root(), Log: a.log})
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()
			if err := w.Run(ctx, run); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	ar.flags(cmd)
	return cmd
}

func printFailures(a *app, res vein.ReloadResult) {
	failed := maps.Keys(res.Failed)
	slices.Sort(failed)
	for _, id := range failed {
		fmt.Fprintf(a.out, "failed: %v\n", res.Failed[id])
	}
	for _, id := range res.Skipped {
		fmt.Fprintf(a.out, "skipped: %v\n", id)
	}
}
