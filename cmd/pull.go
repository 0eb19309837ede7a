package cmd

import (
	"github.com/spf13/cobra"

	"avrsync.dev/pkg/avrsync/internal/domain"
)

const pullLongDescription = `Fetch the active code and docs of every configured collection and gvar and
write into the repository whatever is missing or out of date there.

Files that only exist locally are reported but never deleted.`

// pullCmd represents the pull command.
var pullCmd = newPullCmd()

func newPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Write remote Avrae content into the repository",
		Long:  pullLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, collectionsConfig, gvarsConfig := repoArgs()

			return workflow.Pull(cmd.Context(), domain.PullArgs{
				Root:              root,
				CollectionsConfig: collectionsConfig,
				GvarsConfig:       gvarsConfig,
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(pullCmd)
}
