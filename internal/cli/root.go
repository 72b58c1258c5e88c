package cli

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/templatekit/versionsync/internal/branding"
	"github.com/templatekit/versionsync/internal/config"
	"github.com/templatekit/versionsync/internal/runner"
)

// BuildInfo is injected via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Dependencies are the collaborators shared by every command.
type Dependencies struct {
	Build  BuildInfo
	Logger *log.Logger
	Runner runner.Runner
	Stdout io.Writer
}

type app struct {
	Dependencies
	cfg *config.Config

	configFile string
	verbose    bool
}

// NewRootCmd builds the command tree. Zero-valued dependencies fall back to
// the process defaults.
func NewRootCmd(deps Dependencies) *cobra.Command {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Logger == nil {
		deps.Logger = newLogger(os.Stderr)
	}
	if deps.Runner == nil {
		deps.Runner = &runner.ExecRunner{Stdout: os.Stderr, Stderr: os.Stderr}
	}
	a := &app{Dependencies: deps, cfg: config.New()}

	rootCmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` keeps version pins in a project template consistent: the Node.js
engine in package.json follows .nvmrc, and the linter pin in pyproject.toml
follows the generated requirements listing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.verbose {
				a.Logger.SetLevel(log.DebugLevel)
			}
			return a.cfg.Load(a.configFile)
		},
	}
	rootCmd.SetOut(deps.Stdout)

	flags := rootCmd.PersistentFlags()
	flags.String("root", ".", "Project root that relative paths resolve against (env "+branding.EnvVar(config.KeyRoot)+")")
	flags.StringVar(&a.configFile, "config", "", "Config file (default <root>/"+branding.ConfigName()+".yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	mustBind(a.cfg, config.KeyRoot, flags.Lookup("root"))

	rootCmd.AddCommand(
		newNodeCmd(a),
		newRuffCmd(a),
		newAllCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	logger := newLogger(os.Stderr)
	rootCmd := NewRootCmd(Dependencies{
		Build:  BuildInfo{Version: version, Commit: commit, Date: date},
		Logger: logger,
	})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(err.Error())
		return err
	}
	return nil
}

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: branding.CLIName(),
		Level:  log.InfoLevel,
	})
}

// mustBind panics on programmer error: binding a flag that was never defined.
func mustBind(cfg *config.Config, key string, flag *pflag.Flag) {
	if err := cfg.BindFlag(key, flag); err != nil {
		panic(err)
	}
}
