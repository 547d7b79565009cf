package main

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"union-generator/internal/cache"
	"union-generator/internal/config"
	"union-generator/internal/gen"
	"union-generator/internal/logging"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	v       *viper.Viper
	cfgFile string

	cfg   *config.Config
	log   *zap.Logger
	gen   *gen.Generator
	cache *cache.RenderCache
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, v: config.New()}

	root := &cobra.Command{
		Use:   gen.Tool,
		Short: "Generate exhaustive helpers for sealed Go interfaces",
		Long: `union-generator finds interfaces marked with //uniongen:union or
//uniongen:errorunion, validates them and writes predicates, safe downcasts,
factories, Match, Switch, Map and Tap next to the declaring package.

Settings come from flags, UNIONGEN_* environment variables and an optional
.union-generator.yaml, in that order of precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./.union-generator.yaml)")
	flags.StringP("dir", "C", "", "run as if started in `dir`")
	flags.String("log-format", "console", "log encoding: console or json")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.Int("workers", 0, "concurrent unions, 0 for one per CPU")
	flags.String("tags", gen.DefaultBuildTag, "build tag set while loading and negated in artifacts")
	flags.Bool("tests", false, "include _test.go files")
	flags.Bool("debug", false, "write an unformatted sidecar when an artifact fails to format")

	for key, name := range map[string]string{
		"dir":        "dir",
		"log.format": "log-format",
		"log.level":  "log-level",
		"workers":    "workers",
		"tags":       "tags",
		"tests":      "tests",
		"debug":      "debug",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(newGenCommand(a), newCheckCommand(a), newWatchCommand(a))

	return root
}

// setup loads the configuration and builds the logger, generator and
// render cache.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile, a.v.GetString("dir"))
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Options{
		Format: cfg.Log.Format,
		Level:  cfg.Log.Level,
		Output: a.stderr,
	})
	if err != nil {
		return err
	}

	rc, err := cache.NewRenderCache(cfg.CacheSize, cfg.BuildTag)
	if err != nil {
		return errors.Wrap(err, "failed to create render cache")
	}

	a.cfg = cfg
	a.log = log.With(zap.String("command", cmd.Name()))
	a.gen = gen.NewGenerator(gen.Config{BuildTag: cfg.BuildTag, Debug: cfg.Debug})
	a.cache = rc

	return nil
}
