// Package cmd provides the root command and CLI setup for avrsync.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"avrsync.dev/pkg/avrsync/internal/adapter"
	"avrsync.dev/pkg/avrsync/internal/controller"
	"avrsync.dev/pkg/avrsync/internal/domain"
	m "avrsync.dev/pkg/avrsync/internal/model"
)

var repoFS adapter.RepoFS
var ui controller.UI
var workflow domain.Workflow

// repoPathFlag is a root-level flag naming the repository checkout.
var repoPathFlag string

// collectionsConfigFlag names the collections mapping file.
var collectionsConfigFlag string

// gvarsConfigFlag names the gvars mapping file.
var gvarsConfigFlag string

// tokenFlag carries the Avrae API key; prefer the AVRSYNC_API_TOKEN
// environment variable so the key stays out of shell history.
var tokenFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	repoFS = adapter.NewLocalRepoFS()
	workflow = domain.NewWorkflow(newAvraeClient, repoFS, ui)
}

// newAvraeClient builds the API client once the collections config has been
// read. Base URL and token come from config/env at call time.
func newAvraeClient(collectionIDs []string) adapter.AvraeClient {
	return adapter.NewHTTPAvraeClient(
		viper.GetString(apiBaseURLKey),
		viper.GetString(apiTokenKey),
		collectionIDs,
	)
}

const rootLongDescription = `Avrsync keeps a git repository of Avrae workshop content (aliases, snippets
and gvars) in sync with the Avrae API.

It compares every configured collection and gvar against the files in the
repository, reports drift in both directions, and can pull remote content
into the repository or push local edits back to Avrae.

Expected repository layout:
  <collection name>/<alias>/<alias>.alias
  <collection name>/<alias>/<subalias>/<subalias>.alias
  <collection name>/snippets/<snippet>.snippet
  gvar files at the paths named by the gvars config`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "avrsync",
		Short: "Sync Avrae workshop content with a git repository",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&repoPathFlag, repoFlagName, "r",
			viper.GetString(repoPathKey),
			"path of the repository checkout",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(repoFlagName), repoPathKey)

	cmd.PersistentFlags().
		StringVarP(
			&collectionsConfigFlag, collectionsFlagName, "c",
			viper.GetString(collectionsConfigKey),
			"collections mapping file (collection id to label)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(collectionsFlagName), collectionsConfigKey)

	cmd.PersistentFlags().
		StringVarP(
			&gvarsConfigFlag, gvarsFlagName, "g",
			viper.GetString(gvarsConfigKey),
			"gvars mapping file (gvar key to repo-relative path)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(gvarsFlagName), gvarsConfigKey)

	cmd.PersistentFlags().
		StringVar(
			&tokenFlag, tokenFlagName,
			viper.GetString(apiTokenKey),
			"Avrae API key (prefer the AVRSYNC_API_TOKEN environment variable)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(tokenFlagName), apiTokenKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// repoArgs collects the paths shared by every sync command.
func repoArgs() (root, collectionsConfig, gvarsConfig m.Path) {
	return m.Path(viper.GetString(repoPathKey)),
		m.Path(viper.GetString(collectionsConfigKey)),
		m.Path(viper.GetString(gvarsConfigKey))
}
