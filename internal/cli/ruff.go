package cli

import (
	"github.com/spf13/cobra"

	"github.com/templatekit/versionsync/internal/config"
	"github.com/templatekit/versionsync/internal/linterversion"
)

func newRuffCmd(a *app) *cobra.Command {
	var (
		check    bool
		skipLock bool
	)

	cmd := &cobra.Command{
		Use:   "ruff",
		Short: "Sync the linter pin in pyproject.toml with requirements",
		Long: `Reads the linter version resolved in the generated requirements listing and
rewrites the <package>==<version> pin in pyproject.toml when they differ.
After a rewrite the lock command (default "uv lock --no-upgrade") is run from
the project root; its failure is reported but never fails the command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := linterversion.Sync(cmd.Context(), a.ruffOptions(check, skipLock))
			if err != nil {
				return err
			}
			return checkResult(a.cfg.Get(config.KeyRuffPackage), result, check)
		},
	}

	cmd.Flags().String("listing", "", "Requirements listing (default template/requirements/local.txt)")
	cmd.Flags().String("manifest", "", "pyproject.toml to update (default pyproject.toml)")
	cmd.Flags().String("package", "", "Dependency name to sync (default ruff)")
	cmd.Flags().BoolVar(&check, "check", false, "Report drift and exit non-zero instead of writing")
	cmd.Flags().BoolVar(&skipLock, "skip-lock", false, "Do not regenerate the lock file after updating")
	mustBind(a.cfg, config.KeyRuffListing, cmd.Flags().Lookup("listing"))
	mustBind(a.cfg, config.KeyRuffManifest, cmd.Flags().Lookup("manifest"))
	mustBind(a.cfg, config.KeyRuffPackage, cmd.Flags().Lookup("package"))

	return cmd
}

func (a *app) ruffOptions(dryRun, skipLock bool) linterversion.Options {
	return linterversion.Options{
		ListingPath:  a.cfg.Path(config.KeyRuffListing),
		ManifestPath: a.cfg.Path(config.KeyRuffManifest),
		Package:      a.cfg.Get(config.KeyRuffPackage),
		ProjectRoot:  a.cfg.Root(),
		LockCommand:  a.cfg.Strings(config.KeyRuffLockCommand),
		SkipLock:     skipLock,
		Runner:       a.Runner,
		DryRun:       dryRun,
		Logger:       a.Logger,
	}
}
