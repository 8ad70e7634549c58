// Command oreveins loads vein definitions and generates chunks with them outside a server, to inspect and tune
// vein definitions.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/df-mc/oreveins/server/config"
	"github.com/df-mc/oreveins/server/vein"
	"github.com/df-mc/oreveins/server/vein/source"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %v\n", hint)
		}
		os.Exit(1)
	}
}

// app holds the state shared by all commands. It is filled out before any command runs.
type app struct {
	configPath string
	logLevel   string

	conf config.Config
	log  *slog.Logger
	out  io.Writer
}

func rootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "oreveins",
		Short: "Ore vein generation tool",
		Long: `oreveins loads vein definitions from a folder or a LevelDB database and generates chunks with them
in memory, so that definitions can be checked and tuned without running a server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.out = cmd.OutOrStdout()
			return a.setup(cmd.ErrOrStderr())
		},
	}
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "oreveins.toml", "Config file path (TOML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(listCmd(a), infoCmd(a), generateCmd(a), importCmd(a), watchCmd(a))
	return cmd
}

func (a *app) setup(logOut io.Writer) error {
	level := slog.LevelInfo
	switch strings.ToLower(a.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	a.log = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	conf, err := config.Load(a.configPath)
	if err != nil {
		return errors.Wrapf(err, "load config %v", a.configPath)
	}
	a.conf = conf
	return nil
}

// source opens the definition source of the config. The function returned releases it.
func (a *app) source() (source.Source, func() error, error) {
	if a.conf.Veins.Database != "" {
		db, err := source.OpenLevelDB(a.conf.Veins.Database)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	}
	return source.NewDirectory(a.conf.Veins.Folder, ""), func() error { return nil }, nil
}

// registry loads all definitions of the configured source into a new Registry.
func (a *app) registry() (*vein.Registry, vein.ReloadResult, error) {
	src, closeFn, err := a.source()
	if err != nil {
		return nil, vein.ReloadResult{}, err
	}
	defer func() { _ = closeFn() }()

	reg := vein.NewRegistry(vein.RegistryConfig{Log: a.log, Flags: a.conf.FlagSet()})
	res, err := reload(reg, src)
	if err != nil {
		a.log.Warn("Some definitions could not be read.", "error", err)
	}
	return reg, res, nil
}

// reload reads the documents of src and reloads reg with them. Definitions that could be read are registered even
// if an error is returned, unless none could be read at all, in which case reg is left as is.
func reload(reg *vein.Registry, src source.Source) (vein.ReloadResult, error) {
	docs, err := src.Documents()
	if docs == nil && err != nil {
		return vein.ReloadResult{}, errors.Wrap(err, "read definitions")
	}
	res := reg.Reload(docs)
	if err != nil {
		return res, errors.Wrap(err, "read definitions")
	}
	return res, nil
}
