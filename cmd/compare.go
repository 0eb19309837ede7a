package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"avrsync.dev/pkg/avrsync/internal/domain"
)

var compareDiffFlag bool
var compareFailOnDriftFlag bool

const compareLongDescription = `Compare every configured collection and gvar with the repository and report
the state of each expected file: in sync, modified, missing locally, or
present locally but unknown to Avrae.

No file or remote state is changed.`

// compareCmd represents the compare command.
var compareCmd = newCompareCmd()

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Report drift between the repository and Avrae",
		Long:  compareLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, collectionsConfig, gvarsConfig := repoArgs()

			comparison, err := workflow.Compare(cmd.Context(), domain.CompareArgs{
				Root:              root,
				CollectionsConfig: collectionsConfig,
				GvarsConfig:       gvarsConfig,
				ShowDiffs:         compareDiffFlag,
			})
			if err != nil {
				return err
			}

			if compareFailOnDriftFlag {
				for _, result := range comparison.All() {
					if result.UpdatesRepository() || result.UpdatesAvrae() {
						return fmt.Errorf("repository and avrae have drifted")
					}
				}
			}

			return nil
		},
	}

	configureCompareFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func configureCompareFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&compareDiffFlag, "diff", "d", false, "show unified diffs for modified files")
	cmd.Flags().BoolVar(&compareFailOnDriftFlag, "fail-on-drift", false, "exit non-zero when any drift is found (for CI)")
}
