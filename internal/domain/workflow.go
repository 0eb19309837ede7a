package domain

import (
	"context"
	"fmt"
	"log/slog"

	"avrsync.dev/pkg/avrsync/internal/adapter"
	"avrsync.dev/pkg/avrsync/internal/controller"
	m "avrsync.dev/pkg/avrsync/internal/model"
)

// ClientFactory builds an AvraeClient for the collection ids named by the
// collections config. The factory runs once per workflow invocation, after
// the config has been read.
type ClientFactory func(collectionIDs []string) adapter.AvraeClient

// CompareArgs parametrizes a comparison run.
type CompareArgs struct {
	// Root is the repository checkout path.
	Root m.Path
	// CollectionsConfig is the path of the collections mapping file.
	CollectionsConfig m.Path
	// GvarsConfig is the path of the gvars mapping file.
	GvarsConfig m.Path
	// ShowDiffs renders unified diffs for content mismatches.
	ShowDiffs bool
}

// PullArgs parametrizes applying remote content to the repository.
type PullArgs struct {
	Root              m.Path
	CollectionsConfig m.Path
	GvarsConfig       m.Path
}

// PushArgs parametrizes pushing local content to avrae.
type PushArgs struct {
	Root              m.Path
	CollectionsConfig m.Path
	GvarsConfig       m.Path
	// DryRun reports what would be pushed without calling any write
	// endpoint.
	DryRun bool
}

// Workflow ties the comparison engine to the API client, the repository
// filesystem and the UI.
type Workflow interface {
	// Compare runs a full comparison pass and displays the results. It
	// returns the comparison so callers can inspect drift programmatically.
	Compare(ctx context.Context, args CompareArgs) (*RepositoryComparison, error)

	// Pull applies every result for which the repository is behind avrae,
	// writing remote content to the expected local paths.
	Pull(ctx context.Context, args PullArgs) error

	// Push uploads local content to avrae for every content mismatch.
	// Results with no matching remote entity are reported but never pushed:
	// creating new remote entities needs decisions outside this workflow.
	Push(ctx context.Context, args PushArgs) error
}

type workflow struct {
	newClient ClientFactory
	fs        adapter.RepoFS
	ui        controller.UI
}

// NewWorkflow creates a Workflow using the provided dependencies.
func NewWorkflow(newClient ClientFactory, fs adapter.RepoFS, ui controller.UI) Workflow {
	return &workflow{
		newClient: newClient,
		fs:        fs,
		ui:        ui,
	}
}

// compareOnce loads both mapping configs, fetches the remote snapshot and
// runs one comparison pass over it.
func (w *workflow) compareOnce(ctx context.Context, root, collectionsConfig, gvarsConfig m.Path) (*RepositoryComparison, adapter.AvraeClient, error) {
	collectionMappings, err := w.fs.LoadCollectionsConfig(collectionsConfig)
	if err != nil {
		return nil, nil, err
	}

	gvarMappings, err := w.fs.LoadGvarsConfig(gvarsConfig)
	if err != nil {
		return nil, nil, err
	}

	collectionIDs := make([]string, 0, len(collectionMappings))
	for _, mapping := range collectionMappings {
		collectionIDs = append(collectionIDs, mapping.ID)
	}

	client := w.newClient(collectionIDs)

	collections, err := client.GetCollections(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch collections: %w", err)
	}

	gvars, err := client.GetGvars(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch gvars: %w", err)
	}

	comparison, err := CompareRepository(collections, gvars, gvarMappings, root, w.fs)
	if err != nil {
		return nil, nil, err
	}

	return comparison, client, nil
}

func (w *workflow) Compare(ctx context.Context, args CompareArgs) (*RepositoryComparison, error) {
	comparison, _, err := w.compareOnce(ctx, args.Root, args.CollectionsConfig, args.GvarsConfig)
	if err != nil {
		return nil, err
	}

	results := comparison.All()

	var diffs map[m.Path]string

	if args.ShowDiffs {
		diffs = make(map[m.Path]string)

		for _, result := range results {
			diff, err := RenderDiff(result, w.fs)
			if err != nil {
				return nil, err
			}

			if diff != "" {
				diffs[result.Path] = diff
			}
		}
	}

	if err := w.ui.DisplayComparison(ctx, results, diffs); err != nil {
		return nil, err
	}

	return comparison, nil
}

func (w *workflow) Pull(ctx context.Context, args PullArgs) error {
	comparison, _, err := w.compareOnce(ctx, args.Root, args.CollectionsConfig, args.GvarsConfig)
	if err != nil {
		return err
	}

	for _, result := range comparison.All() {
		if !result.UpdatesRepository() {
			continue
		}

		w.ui.DisplayApplied(ctx, result)

		if err := result.Apply(w.fs); err != nil {
			return err
		}

		slog.Info("applied remote content", "path", result.Path, "kind", result.Kind.String())
	}

	return nil
}

func (w *workflow) Push(ctx context.Context, args PushArgs) error {
	comparison, client, err := w.compareOnce(ctx, args.Root, args.CollectionsConfig, args.GvarsConfig)
	if err != nil {
		return err
	}

	for _, result := range comparison.All() {
		if !result.UpdatesAvrae() {
			continue
		}

		if err := w.pushResult(ctx, client, result, args.DryRun); err != nil {
			return err
		}
	}

	return nil
}

// pushResult uploads the local content behind one result. Code mismatches
// reuse an existing remote version when one already holds the local code
// (edits uploaded directly to avrae), otherwise a new version is created;
// either way the version is then activated.
func (w *workflow) pushResult(ctx context.Context, client adapter.AvraeClient, result m.ComparisonResult, dryRun bool) error {
	switch result.Kind {
	case m.LocalAliasNotFoundInAvrae, m.LocalSnippetNotFoundInAvrae:
		w.ui.DisplayPush(ctx, result, "skipped: creating new workshop entries must be done on avrae first")
		return nil
	case m.LocalGvarNotFoundInAvrae:
		w.ui.DisplayPush(ctx, result, "skipped: gvar key is unknown to avrae")
		return nil
	}

	local, err := w.fs.ReadFile(result.Path)
	if err != nil {
		return fmt.Errorf("read %s for push: %w", result.Path, err)
	}

	switch result.Kind {
	case m.LocalAliasDoesNotMatchAvrae, m.LocalSnippetDoesNotMatchAvrae:
		return w.pushCode(ctx, client, result, workshopItem(result), string(local), dryRun)

	case m.LocalAliasDocsDoNotMatchAvrae, m.LocalSnippetDocsDoNotMatchAvrae:
		if dryRun {
			w.ui.DisplayPush(ctx, result, "would update docs")
			return nil
		}

		if err := client.UpdateDocs(ctx, workshopItem(result), string(local)); err != nil {
			return err
		}

		w.ui.DisplayPush(ctx, result, "updated docs")

		slog.Info("pushed docs", "path", result.Path)

		return nil

	case m.LocalGvarDoesNotMatchAvrae:
		if dryRun {
			w.ui.DisplayPush(ctx, result, "would update gvar")
			return nil
		}

		if err := client.UpdateGvar(ctx, result.Gvar.Key, string(local)); err != nil {
			return err
		}

		w.ui.DisplayPush(ctx, result, "updated gvar")

		slog.Info("pushed gvar", "key", result.Gvar.Key)

		return nil
	}

	return nil
}

func (w *workflow) pushCode(ctx context.Context, client adapter.AvraeClient, result m.ComparisonResult, item m.WorkshopItem, code string, dryRun bool) error {
	if dryRun {
		w.ui.DisplayPush(ctx, result, "would upload code and activate it")
		return nil
	}

	version, err := client.RecentMatchingVersion(ctx, item, code)
	if err != nil {
		return err
	}

	action := "activated existing version"

	if version == nil {
		if version, err = client.CreateCodeVersion(ctx, item, code); err != nil {
			return err
		}

		action = "uploaded and activated new version"
	}

	if err := client.SetActiveCodeVersion(ctx, item, version.Version); err != nil {
		return err
	}

	w.ui.DisplayPush(ctx, result, fmt.Sprintf("%s %d", action, version.Version))

	slog.Info("pushed code", "path", result.Path, "version", version.Version)

	return nil
}

// workshopItem returns the alias or snippet behind an alias/snippet result.
func workshopItem(result m.ComparisonResult) m.WorkshopItem {
	if result.Alias != nil {
		return result.Alias
	}

	return result.Snippet
}
