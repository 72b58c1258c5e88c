package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/templatekit/versionsync/internal/config"
	"github.com/templatekit/versionsync/internal/nodeversion"
	"github.com/templatekit/versionsync/internal/versionfile"
)

func newNodeCmd(a *app) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "node",
		Short: "Sync engines.node in package.json with .nvmrc",
		Long: `Reads the Node.js version from the .nvmrc marker and rewrites the
"node": "<version>" entry under engines in package.json when they differ.
The rest of package.json is left byte-for-byte unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := nodeversion.Sync(cmd.Context(), a.nodeOptions(check))
			if err != nil {
				return err
			}
			return checkResult("node", result, check)
		},
	}

	cmd.Flags().String("marker", "", "Version marker file (default template/.nvmrc)")
	cmd.Flags().String("manifest", "", "package.json to update (default template/package.json)")
	cmd.Flags().BoolVar(&check, "check", false, "Report drift and exit non-zero instead of writing")
	mustBind(a.cfg, config.KeyNodeMarker, cmd.Flags().Lookup("marker"))
	mustBind(a.cfg, config.KeyNodeManifest, cmd.Flags().Lookup("manifest"))

	return cmd
}

func (a *app) nodeOptions(dryRun bool) nodeversion.Options {
	return nodeversion.Options{
		MarkerPath:   a.cfg.Path(config.KeyNodeMarker),
		ManifestPath: a.cfg.Path(config.KeyNodeManifest),
		DryRun:       dryRun,
		Logger:       a.Logger,
	}
}

// checkResult turns drift found in check mode into an error.
func checkResult(name string, result *versionfile.Result, check bool) error {
	if check && !result.InSync() {
		return fmt.Errorf("%w: %s declared %s, expected %s", versionfile.ErrOutOfSync, name, result.Declared, result.Source)
	}
	return nil
}
