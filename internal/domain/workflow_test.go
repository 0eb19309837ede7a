package domain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avrsync.dev/pkg/avrsync/internal/adapter"
	m "avrsync.dev/pkg/avrsync/internal/model"
)

// fakeClient is an in-memory AvraeClient recording every write call.
type fakeClient struct {
	collections []m.Collection
	gvars       []m.Gvar

	// remoteVersions maps code content to an existing remote version.
	remoteVersions map[string]m.CodeVersion

	created   []string
	activated []int
	docs      map[string]string
	gvarSets  map[string]string
}

func newFakeClient(collections []m.Collection, gvars []m.Gvar) *fakeClient {
	return &fakeClient{
		collections:    collections,
		gvars:          gvars,
		remoteVersions: map[string]m.CodeVersion{},
		docs:           map[string]string{},
		gvarSets:       map[string]string{},
	}
}

func (f *fakeClient) GetCollections(_ context.Context) ([]m.Collection, error) {
	return f.collections, nil
}

func (f *fakeClient) GetCollection(_ context.Context, collectionID string) (*m.Collection, error) {
	for i := range f.collections {
		if f.collections[i].ID == collectionID {
			return &f.collections[i], nil
		}
	}

	return nil, nil
}

func (f *fakeClient) GetGvars(_ context.Context) ([]m.Gvar, error) {
	return f.gvars, nil
}

func (f *fakeClient) RecentMatchingVersion(_ context.Context, _ m.WorkshopItem, code string) (*m.CodeVersion, error) {
	if version, ok := f.remoteVersions[code]; ok {
		return &version, nil
	}

	return nil, nil
}

func (f *fakeClient) CreateCodeVersion(_ context.Context, _ m.WorkshopItem, code string) (*m.CodeVersion, error) {
	f.created = append(f.created, code)

	return &m.CodeVersion{Version: 100 + len(f.created), Content: code}, nil
}

func (f *fakeClient) SetActiveCodeVersion(_ context.Context, _ m.WorkshopItem, version int) error {
	f.activated = append(f.activated, version)

	return nil
}

func (f *fakeClient) UpdateDocs(_ context.Context, item m.WorkshopItem, docs string) error {
	f.docs[item.ItemID()] = docs

	return nil
}

func (f *fakeClient) UpdateGvar(_ context.Context, key, value string) error {
	f.gvarSets[key] = value

	return nil
}

// fakeUI records display calls.
type fakeUI struct {
	displayed []m.ComparisonResult
	diffs     map[m.Path]string
	applied   []m.ComparisonResult
	pushes    []string
}

func (f *fakeUI) DisplayComparison(_ context.Context, results []m.ComparisonResult, diffs map[m.Path]string) error {
	f.displayed = results
	f.diffs = diffs

	return nil
}

func (f *fakeUI) DisplayApplied(_ context.Context, result m.ComparisonResult) {
	f.applied = append(f.applied, result)
}

func (f *fakeUI) DisplayPush(_ context.Context, result m.ComparisonResult, action string) {
	f.pushes = append(f.pushes, fmt.Sprintf("%s: %s", result.Path, action))
}

// workflowFixture wires a workflow over a temp repository with one
// collection (one alias, one snippet) and one gvar.
type workflowFixture struct {
	root      string
	client    *fakeClient
	ui        *fakeUI
	flow      Workflow
	factoryID []string
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	root := t.TempDir()

	collections := []m.Collection{
		{
			Name:     "col",
			ID:       "col-1",
			Aliases:  []m.Alias{{Name: "attack", Code: "!attack", Docs: "attack docs", CollectionID: "col-1", ID: "alias-1"}},
			Snippets: []m.Snippet{{Name: "sneak", Code: "-d", Docs: "sneak docs", CollectionID: "col-1", ID: "snip-1"}},
		},
	}

	gvars := []m.Gvar{{Key: "key-a", Value: "alpha"}}

	fixture := &workflowFixture{
		root:   root,
		client: newFakeClient(collections, gvars),
		ui:     &fakeUI{},
	}

	writeRepoFile(t, root, []string{"collections.yaml"}, "col-1: My Collection\n")
	writeRepoFile(t, root, []string{"gvars.yaml"}, "key-a: vars/a.gvar\n")

	factory := func(collectionIDs []string) adapter.AvraeClient {
		fixture.factoryID = collectionIDs

		return fixture.client
	}

	fixture.flow = NewWorkflow(factory, adapter.NewLocalRepoFS(), fixture.ui)

	return fixture
}

func (f *workflowFixture) compareArgs() CompareArgs {
	return CompareArgs{
		Root:              m.Path(f.root),
		CollectionsConfig: m.Path(filepath.Join(f.root, "collections.yaml")),
		GvarsConfig:       m.Path(filepath.Join(f.root, "gvars.yaml")),
	}
}

func (f *workflowFixture) pullArgs() PullArgs {
	args := f.compareArgs()

	return PullArgs{Root: args.Root, CollectionsConfig: args.CollectionsConfig, GvarsConfig: args.GvarsConfig}
}

func (f *workflowFixture) pushArgs(dryRun bool) PushArgs {
	args := f.compareArgs()

	return PushArgs{Root: args.Root, CollectionsConfig: args.CollectionsConfig, GvarsConfig: args.GvarsConfig, DryRun: dryRun}
}

func TestWorkflowCompare(t *testing.T) {
	fixture := newWorkflowFixture(t)

	comparison, err := fixture.flow.Compare(context.Background(), fixture.compareArgs())
	require.NoError(t, err)

	assert.Equal(t, []string{"col-1"}, fixture.factoryID)

	// Empty repository: alias code+docs, snippet code+docs, gvar.
	require.Len(t, comparison.All(), 5)
	assert.Len(t, fixture.ui.displayed, 5)
	assert.Nil(t, fixture.ui.diffs)
}

func TestWorkflowCompare_WithDiffs(t *testing.T) {
	fixture := newWorkflowFixture(t)

	writeRepoFile(t, fixture.root, []string{"col", "attack", "attack.alias"}, "!attack edited\n")

	args := fixture.compareArgs()
	args.ShowDiffs = true

	_, err := fixture.flow.Compare(context.Background(), args)
	require.NoError(t, err)

	aliasPath := m.Path(filepath.Join(fixture.root, "col", "attack", "attack.alias"))
	require.Contains(t, fixture.ui.diffs, aliasPath)
	assert.Contains(t, fixture.ui.diffs[aliasPath], "+!attack edited")
}

func TestWorkflowCompare_MissingConfig(t *testing.T) {
	fixture := newWorkflowFixture(t)

	args := fixture.compareArgs()
	args.CollectionsConfig = m.Path(filepath.Join(fixture.root, "absent.yaml"))

	_, err := fixture.flow.Compare(context.Background(), args)
	require.Error(t, err)
}

func TestWorkflowPull_WritesEverythingMissing(t *testing.T) {
	fixture := newWorkflowFixture(t)

	require.NoError(t, fixture.flow.Pull(context.Background(), fixture.pullArgs()))

	assert.Len(t, fixture.ui.applied, 5)

	content, err := os.ReadFile(filepath.Join(fixture.root, "col", "attack", "attack.alias"))
	require.NoError(t, err)
	assert.Equal(t, "!attack", string(content))

	content, err = os.ReadFile(filepath.Join(fixture.root, "col", "attack", "attack.md"))
	require.NoError(t, err)
	assert.Equal(t, "attack docs", string(content))

	content, err = os.ReadFile(filepath.Join(fixture.root, "col", "snippets", "sneak.snippet"))
	require.NoError(t, err)
	assert.Equal(t, "-d", string(content))

	content, err = os.ReadFile(filepath.Join(fixture.root, "vars", "a.gvar"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(content))
}

func TestWorkflowPull_LeavesOrphansAlone(t *testing.T) {
	fixture := newWorkflowFixture(t)

	orphan := writeRepoFile(t, fixture.root, []string{"col", "stray", "stray.alias"}, "!stray")

	require.NoError(t, fixture.flow.Pull(context.Background(), fixture.pullArgs()))

	content, err := os.ReadFile(orphan)
	require.NoError(t, err)
	assert.Equal(t, "!stray", string(content))
}

// seedSyncedRepo writes every file so it matches the remote state.
func seedSyncedRepo(t *testing.T, fixture *workflowFixture) {
	t.Helper()

	writeRepoFile(t, fixture.root, []string{"col", "attack", "attack.alias"}, "!attack")
	writeRepoFile(t, fixture.root, []string{"col", "attack", "attack.md"}, "attack docs")
	writeRepoFile(t, fixture.root, []string{"col", "snippets", "sneak.snippet"}, "-d")
	writeRepoFile(t, fixture.root, []string{"col", "snippets", "sneak.md"}, "sneak docs")
	writeRepoFile(t, fixture.root, []string{"vars", "a.gvar"}, "alpha")
}

func TestWorkflowPush_NothingToDoWhenSynced(t *testing.T) {
	fixture := newWorkflowFixture(t)
	seedSyncedRepo(t, fixture)

	require.NoError(t, fixture.flow.Push(context.Background(), fixture.pushArgs(false)))

	assert.Empty(t, fixture.client.created)
	assert.Empty(t, fixture.client.activated)
	assert.Empty(t, fixture.client.docs)
	assert.Empty(t, fixture.client.gvarSets)
}

func TestWorkflowPush_UploadsNewCodeVersion(t *testing.T) {
	fixture := newWorkflowFixture(t)
	seedSyncedRepo(t, fixture)

	writeRepoFile(t, fixture.root, []string{"col", "attack", "attack.alias"}, "!attack edited")

	require.NoError(t, fixture.flow.Push(context.Background(), fixture.pushArgs(false)))

	require.Equal(t, []string{"!attack edited"}, fixture.client.created)
	require.Len(t, fixture.client.activated, 1)
	assert.Equal(t, 101, fixture.client.activated[0])

	require.Len(t, fixture.ui.pushes, 1)
	assert.Contains(t, fixture.ui.pushes[0], "uploaded and activated new version 101")
}

func TestWorkflowPush_ReusesMatchingRemoteVersion(t *testing.T) {
	fixture := newWorkflowFixture(t)
	seedSyncedRepo(t, fixture)

	writeRepoFile(t, fixture.root, []string{"col", "attack", "attack.alias"}, "!attack edited")
	fixture.client.remoteVersions["!attack edited"] = m.CodeVersion{Version: 7, Content: "!attack edited"}

	require.NoError(t, fixture.flow.Push(context.Background(), fixture.pushArgs(false)))

	assert.Empty(t, fixture.client.created)
	require.Len(t, fixture.client.activated, 1)
	assert.Equal(t, 7, fixture.client.activated[0])

	require.Len(t, fixture.ui.pushes, 1)
	assert.Contains(t, fixture.ui.pushes[0], "activated existing version 7")
}

func TestWorkflowPush_UpdatesDocsAndGvars(t *testing.T) {
	fixture := newWorkflowFixture(t)
	seedSyncedRepo(t, fixture)

	writeRepoFile(t, fixture.root, []string{"col", "attack", "attack.md"}, "local docs")
	writeRepoFile(t, fixture.root, []string{"vars", "a.gvar"}, "local value")

	require.NoError(t, fixture.flow.Push(context.Background(), fixture.pushArgs(false)))

	assert.Equal(t, "local docs", fixture.client.docs["alias-1"])
	assert.Equal(t, "local value", fixture.client.gvarSets["key-a"])
	assert.Empty(t, fixture.client.created)
	assert.Empty(t, fixture.client.activated)
}

func TestWorkflowPush_SkipsEntitiesUnknownToAvrae(t *testing.T) {
	fixture := newWorkflowFixture(t)
	seedSyncedRepo(t, fixture)

	writeRepoFile(t, fixture.root, []string{"col", "stray", "stray.alias"}, "!stray")

	require.NoError(t, fixture.flow.Push(context.Background(), fixture.pushArgs(false)))

	assert.Empty(t, fixture.client.created)
	assert.Empty(t, fixture.client.activated)

	require.Len(t, fixture.ui.pushes, 1)
	assert.Contains(t, fixture.ui.pushes[0], "skipped")
}

func TestWorkflowPush_DryRunTouchesNothing(t *testing.T) {
	fixture := newWorkflowFixture(t)
	seedSyncedRepo(t, fixture)

	writeRepoFile(t, fixture.root, []string{"col", "attack", "attack.alias"}, "!attack edited")
	writeRepoFile(t, fixture.root, []string{"col", "attack", "attack.md"}, "local docs")
	writeRepoFile(t, fixture.root, []string{"vars", "a.gvar"}, "local value")

	require.NoError(t, fixture.flow.Push(context.Background(), fixture.pushArgs(true)))

	assert.Empty(t, fixture.client.created)
	assert.Empty(t, fixture.client.activated)
	assert.Empty(t, fixture.client.docs)
	assert.Empty(t, fixture.client.gvarSets)

	require.Len(t, fixture.ui.pushes, 3)
	for _, push := range fixture.ui.pushes {
		assert.True(t, strings.Contains(push, "would "), push)
	}
}
