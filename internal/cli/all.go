package cli

import (
	"github.com/spf13/cobra"

	"github.com/templatekit/versionsync/internal/config"
	"github.com/templatekit/versionsync/internal/linterversion"
	"github.com/templatekit/versionsync/internal/nodeversion"
)

func newAllCmd(a *app) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Run the node and ruff syncs in order",
		Long:  `Runs "node" and then "ruff" using configured paths. The first fatal error stops the run.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nodeResult, err := nodeversion.Sync(cmd.Context(), a.nodeOptions(check))
			if err != nil {
				return err
			}
			ruffResult, err := linterversion.Sync(cmd.Context(), a.ruffOptions(check, false))
			if err != nil {
				return err
			}

			if err := checkResult("node", nodeResult, check); err != nil {
				return err
			}
			return checkResult(a.cfg.Get(config.KeyRuffPackage), ruffResult, check)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Report drift and exit non-zero instead of writing")
	return cmd
}
