// Package cmd implements the CLI command.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dps-tool/dps/internal/columns"
	"github.com/dps-tool/dps/internal/config"
	"github.com/dps-tool/dps/internal/dockercli"
	apperrors "github.com/dps-tool/dps/internal/errors"
	"github.com/dps-tool/dps/internal/fields"
	"github.com/dps-tool/dps/internal/filters"
	"github.com/dps-tool/dps/internal/records"
	"github.com/dps-tool/dps/internal/render"
	"github.com/dps-tool/dps/internal/version"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

// newRunner builds the runtime invoker; swapped out in tests.
var newRunner = func(binary string) dockercli.Runner {
	return dockercli.NewRunner(binary)
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dps",
		Short: "A docker ps wrapper with selectable columns, custom filtering, and styled tables",
		Long: `dps wraps 'docker ps', reshapes its JSON output into a customizable table,
and applies client-side filtering on top of docker's own filters.

It features:
  - Selectable columns via per-column flags, --columns and --hide-column
  - Post-fetch filtering with glob or substring patterns (--find)
  - Styled table output with several border styles (--style)
  - Quiet mode printing bare container IDs (-q)`,
		Example: `  # Default table of running containers
  dps

  # All containers, only ID and Names columns
  dps -a --id --name

  # Exact column list, hiding one of them again
  dps --columns ID,Image,Status,Ports --hide-column ports

  # Post-fetch filtering: running web containers built from ubuntu
  dps --find "status=up names=web-* image=ubuntu"

  # Bare IDs of all containers
  dps -aq`,
		Version:       version.GetFullVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configureLogging(cmd)

			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				// An explicitly requested config file must load; the implicit
				// search paths may simply have nothing.
				if cfgFile != "" {
					return err
				}
				logrus.WithError(err).Warn("Could not load config, using defaults")
				cfg = config.Default()
			}

			if cfg.ConfigFilePath != "" {
				logrus.WithField("path", cfg.ConfigFilePath).Debug("Loaded configuration")
			}
			return nil
		},
		RunE: runList,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml, ~/.config/dps, /etc/dps)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	fs := cmd.Flags()
	fs.BoolP("all", "a", false, "show all containers (default shows just running)")
	fs.IntP("last", "n", -1, "show n last created containers (includes all states)")
	fs.BoolP("latest", "l", false, "show the latest created container (includes all states)")
	fs.Bool("no-trunc", false, "don't truncate output")
	fs.String("style", string(render.StyleRounded), "table style: ascii, minimal, rounded, simple, square")
	fs.Bool("show-lines", false, "draw separator lines between table rows")
	fs.StringSlice("filter", nil, "filter pushed down to docker (key=value, repeatable or comma-separated)")
	fs.StringP("find", "f", "", "filter results after fetching, using key=pattern pairs (glob or case-insensitive substring; comma or space separated)")
	fs.StringSlice("columns", nil, "exact columns to display, comma-separated; replaces the default set")
	fs.StringSlice("hide-column", nil, "hide specific columns (repeatable or comma-separated)")
	fs.BoolP("quiet", "q", false, "only display container IDs (ignores column selection and --find)")

	registerColumnFlags(fs)

	cmd.MarkFlagsMutuallyExclusive("last", "latest")

	return cmd
}

// Execute runs the root command and translates errors into exit codes:
// 0 = success, 1 = validation/config/decode error, and a failed runtime
// invocation exits with the runtime's own exit code, its stderr passed
// through verbatim.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var fetchErr *apperrors.FetchError
		if errors.As(err, &fetchErr) {
			if fetchErr.Stderr != "" {
				fmt.Fprintln(os.Stderr, fetchErr.Stderr)
			} else {
				fmt.Fprintln(os.Stderr, "Error:", err)
			}
			code := fetchErr.ExitCode
			if code <= 0 {
				code = 1
			}
			os.Exit(code)
		}

		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func configureLogging(cmd *cobra.Command) {
	logrus.SetOutput(cmd.ErrOrStderr())
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	fs := cmd.Flags()

	quiet, _ := fs.GetBool("quiet")
	noTrunc := boolSetting(fs, "no-trunc", cfg.Output.NoTrunc)
	showLines := boolSetting(fs, "show-lines", cfg.Output.ShowLines)

	styleName := cfg.Output.Style
	if fs.Changed("style") {
		styleName, _ = fs.GetString("style")
	}
	style, err := render.ParseStyle(styleName)
	if err != nil {
		return err
	}

	explicitShow, explicitHide := collectColumnFlags(fs)

	// Column resolution happens before the fetch so hard errors never print
	// a partial table. Quiet mode skips it: column selection has no effect
	// on the ID list.
	var cols []fields.Name
	if !quiet {
		columnsList, _ := fs.GetStringSlice("columns")
		hideCols, _ := fs.GetStringSlice("hide-column")
		hideCols = append(hideCols, cfg.Output.HideColumns...)

		cols, err = columns.Resolve(columns.Options{
			Show:        explicitShow,
			Hide:        explicitHide,
			Columns:     columnsList,
			HideColumns: hideCols,
		})
		if err != nil {
			return err
		}
	}

	findSpec, _ := fs.GetString("find")
	var preds []filters.Predicate
	if findSpec != "" {
		if quiet {
			logrus.Warn("Ignoring --find filter in quiet mode")
		} else {
			preds = filters.Parse(findSpec)
		}
	}

	all, _ := fs.GetBool("all")
	last, _ := fs.GetInt("last")
	latest, _ := fs.GetBool("latest")
	pushdown, _ := fs.GetStringSlice("filter")

	out, err := newRunner(cfg.Docker.Binary).ListJSON(cmd.Context(), dockercli.ListOptions{
		All:     all,
		Last:    last,
		Latest:  latest,
		NoTrunc: noTrunc,
		Size:    wantsSize(quiet, cols, explicitShow),
		Filters: pushdown,
	})
	if err != nil {
		return err
	}

	raws, err := records.DecodeList(out)
	if err != nil {
		return err
	}

	recs := make([]records.Normalized, 0, len(raws))
	for _, raw := range raws {
		recs = append(recs, records.Normalize(raw))
	}
	logrus.WithField("count", len(recs)).Debug("Fetched containers")

	if !quiet {
		recs = filters.Apply(recs, preds)
	}

	r := render.New(cmd.OutOrStdout(), render.Options{
		Columns:   cols,
		Style:     style,
		NoTrunc:   noTrunc,
		ShowLines: showLines,
		Quiet:     quiet,
	})
	return r.Render(recs)
}

// wantsSize decides whether the runtime is asked for container sizes. In
// table mode the resolved columns decide; in quiet mode only an explicit
// --size flag does, since no table is built.
func wantsSize(quiet bool, cols []fields.Name, explicitShow []fields.Name) bool {
	if quiet {
		return containsField(explicitShow, fields.Size)
	}
	return containsField(cols, fields.Size)
}

func containsField(names []fields.Name, want fields.Name) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

// boolSetting resolves a boolean flag against its config default: an
// explicitly set flag wins, otherwise the config value stands.
func boolSetting(fs *pflag.FlagSet, name string, configDefault bool) bool {
	if fs.Changed(name) {
		v, _ := fs.GetBool(name)
		return v
	}
	return configDefault
}
