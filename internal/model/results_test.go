package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingWriter captures Apply's filesystem calls.
type recordingWriter struct {
	dirs    []Path
	files   map[Path]string
	dirErr  error
	fileErr error
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{files: map[Path]string{}}
}

func (w *recordingWriter) MkdirAll(path Path, _ os.FileMode) error {
	if w.dirErr != nil {
		return w.dirErr
	}

	w.dirs = append(w.dirs, path)

	return nil
}

func (w *recordingWriter) WriteFile(path Path, content []byte, _ os.FileMode) error {
	if w.fileErr != nil {
		return w.fileErr
	}

	w.files[path] = string(content)

	return nil
}

func TestResultKindString(t *testing.T) {
	assert.Equal(t, "LocalAliasMatchesAvrae", LocalAliasMatchesAvrae.String())
	assert.Equal(t, "LocalGvarNotFoundInAvrae", LocalGvarNotFoundInAvrae.String())
	assert.Equal(t, "ResultKind(99)", ResultKind(99).String())
}

func TestEntity(t *testing.T) {
	assert.Equal(t, "alias", ComparisonResult{Kind: LocalAliasDocsMissing}.Entity())
	assert.Equal(t, "alias", ComparisonResult{Kind: LocalAliasNotFoundInAvrae}.Entity())
	assert.Equal(t, "snippet", ComparisonResult{Kind: LocalSnippetMatchesAvrae}.Entity())
	assert.Equal(t, "snippet", ComparisonResult{Kind: LocalSnippetNotFoundInAvrae}.Entity())
	assert.Equal(t, "gvar", ComparisonResult{Kind: LocalGvarMatchesAvrae}.Entity())
	assert.Equal(t, "gvar", ComparisonResult{Kind: LocalGvarNotFoundInAvrae}.Entity())
}

func TestUpdatesRepository(t *testing.T) {
	updating := []ResultKind{
		LocalAliasDoesNotMatchAvrae, LocalAliasDocsDoNotMatchAvrae,
		LocalAliasMissing, LocalAliasDocsMissing,
		LocalSnippetDoesNotMatchAvrae, LocalSnippetDocsDoNotMatchAvrae,
		LocalSnippetMissing, LocalSnippetDocsMissing,
		LocalGvarDoesNotMatchAvrae, LocalGvarMissing,
	}

	for _, kind := range updating {
		assert.True(t, ComparisonResult{Kind: kind}.UpdatesRepository(), kind.String())
	}

	inert := []ResultKind{
		LocalAliasMatchesAvrae, LocalAliasDocsMatchAvrae, LocalAliasNotFoundInAvrae,
		LocalSnippetMatchesAvrae, LocalSnippetDocsMatchAvrae, LocalSnippetNotFoundInAvrae,
		LocalGvarMatchesAvrae, LocalGvarNotFoundInAvrae,
	}

	for _, kind := range inert {
		assert.False(t, ComparisonResult{Kind: kind}.UpdatesRepository(), kind.String())
	}
}

func TestUpdatesAvrae(t *testing.T) {
	updating := []ResultKind{
		LocalAliasDoesNotMatchAvrae, LocalAliasDocsDoNotMatchAvrae, LocalAliasNotFoundInAvrae,
		LocalSnippetDoesNotMatchAvrae, LocalSnippetDocsDoNotMatchAvrae, LocalSnippetNotFoundInAvrae,
		LocalGvarDoesNotMatchAvrae, LocalGvarNotFoundInAvrae,
	}

	for _, kind := range updating {
		assert.True(t, ComparisonResult{Kind: kind}.UpdatesAvrae(), kind.String())
	}

	inert := []ResultKind{
		LocalAliasMatchesAvrae, LocalAliasDocsMatchAvrae, LocalAliasMissing, LocalAliasDocsMissing,
		LocalSnippetMatchesAvrae, LocalSnippetDocsMatchAvrae, LocalSnippetMissing, LocalSnippetDocsMissing,
		LocalGvarMatchesAvrae, LocalGvarMissing,
	}

	for _, kind := range inert {
		assert.False(t, ComparisonResult{Kind: kind}.UpdatesAvrae(), kind.String())
	}
}

func TestSummary_IsTotalOverKinds(t *testing.T) {
	alias := &Alias{Name: "attack"}
	snippet := &Snippet{Name: "sneak"}
	gvar := &Gvar{Key: "key-1"}

	for kind := LocalAliasMatchesAvrae; kind <= LocalGvarNotFoundInAvrae; kind++ {
		result := ComparisonResult{Kind: kind, Path: "some/path"}

		switch result.Entity() {
		case "alias":
			result.Alias = alias
		case "snippet":
			result.Snippet = snippet
		default:
			result.Gvar = gvar
		}

		summary := result.Summary()
		assert.NotEmpty(t, summary, kind.String())
		assert.Contains(t, summary, "some/path", kind.String())
		assert.NotContains(t, summary, "unknown comparison result", kind.String())
	}
}

func TestApply_WritesRemoteCode(t *testing.T) {
	writer := newRecordingWriter()
	result := ComparisonResult{
		Kind:  LocalAliasMissing,
		Path:  Path(filepath.Join("repo", "col", "attack", "attack.alias")),
		Alias: &Alias{Name: "attack", Code: "!attack roll"},
	}

	require.NoError(t, result.Apply(writer))

	require.Len(t, writer.dirs, 1)
	assert.Equal(t, Path(filepath.Join("repo", "col", "attack")), writer.dirs[0])
	assert.Equal(t, "!attack roll", writer.files[result.Path])
}

func TestApply_WritesDocsAndGvarValues(t *testing.T) {
	writer := newRecordingWriter()

	docsResult := ComparisonResult{
		Kind:  LocalAliasDocsDoNotMatchAvrae,
		Path:  Path(filepath.Join("repo", "col", "attack", "attack.md")),
		Alias: &Alias{Name: "attack", Code: "!attack", Docs: "remote docs"},
	}
	require.NoError(t, docsResult.Apply(writer))
	assert.Equal(t, "remote docs", writer.files[docsResult.Path])

	gvarResult := ComparisonResult{
		Kind: LocalGvarMissing,
		Path: Path(filepath.Join("repo", "vars", "table.gvar")),
		Gvar: &Gvar{Key: "key-1", Value: "remote value"},
	}
	require.NoError(t, gvarResult.Apply(writer))
	assert.Equal(t, "remote value", writer.files[gvarResult.Path])
}

func TestApply_NoOpForInertKinds(t *testing.T) {
	writer := newRecordingWriter()

	for _, kind := range []ResultKind{LocalAliasMatchesAvrae, LocalAliasNotFoundInAvrae, LocalGvarNotFoundInAvrae} {
		result := ComparisonResult{Kind: kind, Path: "repo/whatever"}
		require.NoError(t, result.Apply(writer))
	}

	assert.Empty(t, writer.dirs)
	assert.Empty(t, writer.files)
}

func TestApply_PropagatesWriteErrors(t *testing.T) {
	boom := errors.New("disk full")

	result := ComparisonResult{
		Kind:  LocalAliasMissing,
		Path:  "repo/col/attack/attack.alias",
		Alias: &Alias{Name: "attack", Code: "!attack"},
	}

	writer := newRecordingWriter()
	writer.dirErr = boom
	require.ErrorIs(t, result.Apply(writer), boom)

	writer = newRecordingWriter()
	writer.fileErr = boom
	require.ErrorIs(t, result.Apply(writer), boom)
}

func TestRemoteContent(t *testing.T) {
	alias := &Alias{Code: "code", Docs: "docs"}

	assert.Equal(t, "code", ComparisonResult{Kind: LocalAliasMissing, Alias: alias}.RemoteContent())
	assert.Equal(t, "docs", ComparisonResult{Kind: LocalAliasDocsMissing, Alias: alias}.RemoteContent())
	assert.Empty(t, ComparisonResult{Kind: LocalAliasMatchesAvrae, Alias: alias}.RemoteContent())
	assert.Empty(t, ComparisonResult{Kind: LocalAliasNotFoundInAvrae}.RemoteContent())
}
