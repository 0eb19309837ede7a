package cmd

import (
	"github.com/spf13/cobra"

	"avrsync.dev/pkg/avrsync/internal/domain"
)

var pushDryRunFlag bool

const pushLongDescription = `Upload local edits back to Avrae: modified alias and snippet code becomes a
new active code version (or re-activates an identical older version), docs
changes are patched in place, and modified gvars are overwritten.

Nothing is created on the Avrae side: files Avrae does not already know
about are reported and skipped.`

// pushCmd represents the push command.
var pushCmd = newPushCmd()

func newPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload local edits to Avrae",
		Long:  pushLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, collectionsConfig, gvarsConfig := repoArgs()

			return workflow.Push(cmd.Context(), domain.PushArgs{
				Root:              root,
				CollectionsConfig: collectionsConfig,
				GvarsConfig:       gvarsConfig,
				DryRun:            pushDryRunFlag,
			})
		},
	}

	configurePushFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(pushCmd)
}

func configurePushFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&pushDryRunFlag, "dry-run", "n", false, "report what would be uploaded without changing anything")
}
