// Package domain implements the comparison engine that reconciles the local
// repository with the remote avrae state, and the workflow built on top of it.
package domain

import (
	"fmt"
	"path/filepath"

	"avrsync.dev/pkg/avrsync/internal/adapter"
	m "avrsync.dev/pkg/avrsync/internal/model"
)

const (
	// AliasExtension is the file extension of alias code files.
	AliasExtension = ".alias"
	// SnippetExtension is the file extension of snippet code files.
	SnippetExtension = ".snippet"
	// SnippetsDirName is the fixed subdirectory holding a collection's
	// snippets. Snippets never nest below it.
	SnippetsDirName = "snippets"
)

// DocExtensions is the ordered list of recognized documentation extensions.
// The order is part of the comparison contract: the first existing candidate
// is the one read and compared, and the first candidate names the expected
// location when none exist.
var DocExtensions = []string{".md", ".markdown", ".MARKDOWN"}

// CollectionComparison groups the results of comparing one collection.
type CollectionComparison struct {
	Collection *m.Collection
	Aliases    []m.ComparisonResult
	Snippets   []m.ComparisonResult
}

// RepositoryComparison is the outcome of one full comparison pass over every
// configured collection and gvar.
type RepositoryComparison struct {
	Collections []CollectionComparison
	Gvars       []m.ComparisonResult
}

// All returns every result of the pass: per collection first aliases then
// snippets, gvars last.
func (rc *RepositoryComparison) All() []m.ComparisonResult {
	var results []m.ComparisonResult

	for _, collection := range rc.Collections {
		results = append(results, collection.Aliases...)
		results = append(results, collection.Snippets...)
	}

	return append(results, rc.Gvars...)
}

// pathEntry associates one derived base path (extension-less) with the
// remote alias or snippet owning it. Entries keep the flattening order so
// results come out in a stable, tree-derived order.
type pathEntry struct {
	basePath string
	alias    *m.Alias
	snippet  *m.Snippet
}

// flattenAlias derives the expected base path of an alias and, recursively,
// of each of its subcommands. Every nesting level extends the directory
// prefix by the parent's name, and the leaf directory is named after the
// alias itself.
func flattenAlias(segments []string, alias *m.Alias) []pathEntry {
	base := filepath.Join(append(append([]string{}, segments...), alias.Name, alias.Name)...)
	entries := []pathEntry{{basePath: base, alias: alias}}

	childSegments := append(append([]string{}, segments...), alias.Name)

	for i := range alias.Subcommands {
		entries = append(entries, flattenAlias(childSegments, &alias.Subcommands[i])...)
	}

	return entries
}

// CompareAliases compares every alias of the collection, including nested
// subcommands, against the local repository rooted at basePath.
//
// The result order is: per alias in tree order a code result then a docs
// result, followed by one result per orphaned local .alias file in walk
// order. Classification never fails; only filesystem read errors abort the
// comparison.
func CompareAliases(collection *m.Collection, basePath m.Path, fs adapter.RepoFS) ([]m.ComparisonResult, error) {
	segments := []string{string(basePath), collection.Name}

	var entries []pathEntry
	for i := range collection.Aliases {
		entries = append(entries, flattenAlias(segments, &collection.Aliases[i])...)
	}

	results := make([]m.ComparisonResult, 0, 2*len(entries))
	expected := make(map[string]struct{}, len(entries))

	for _, entry := range entries {
		codePath := m.Path(entry.basePath + AliasExtension)
		expected[string(codePath)] = struct{}{}

		codeState, err := classifyFile(codePath, entry.alias.Code, fs)
		if err != nil {
			return nil, err
		}

		results = append(results, m.ComparisonResult{
			Kind:  codeState.pick(LocalAliasKinds),
			Path:  codePath,
			Alias: entry.alias,
		})

		docPath, found := probeDocPath(entry.basePath, fs)

		docState := fileMissing
		if found {
			if docState, err = classifyFile(docPath, entry.alias.Docs, fs); err != nil {
				return nil, err
			}
		}

		results = append(results, m.ComparisonResult{
			Kind:  docState.pick(LocalAliasDocKinds),
			Path:  docPath,
			Alias: entry.alias,
		})
	}

	// Sweep the collection's own directory for .alias files avrae does not
	// know about. The walk is scoped to this collection so files belonging
	// to other collections (or stray files at the repository root) never
	// leak into its results.
	localFiles, err := fs.FindFiles(m.Path(filepath.Join(segments...)), AliasExtension)
	if err != nil {
		return nil, fmt.Errorf("scan %s for alias files: %w", collection.Name, err)
	}

	for _, localFile := range localFiles {
		if _, ok := expected[string(localFile)]; !ok {
			results = append(results, m.ComparisonResult{
				Kind: m.LocalAliasNotFoundInAvrae,
				Path: localFile,
			})
		}
	}

	return results, nil
}

// CompareSnippets compares every snippet of the collection against the
// fixed snippets subdirectory. Structurally the same as CompareAliases but
// without recursion.
func CompareSnippets(collection *m.Collection, basePath m.Path, fs adapter.RepoFS) ([]m.ComparisonResult, error) {
	snippetsDir := filepath.Join(string(basePath), collection.Name, SnippetsDirName)

	results := make([]m.ComparisonResult, 0, 2*len(collection.Snippets))
	expected := make(map[string]struct{}, len(collection.Snippets))

	for i := range collection.Snippets {
		snippet := &collection.Snippets[i]
		base := filepath.Join(snippetsDir, snippet.Name)

		codePath := m.Path(base + SnippetExtension)
		expected[string(codePath)] = struct{}{}

		codeState, err := classifyFile(codePath, snippet.Code, fs)
		if err != nil {
			return nil, err
		}

		results = append(results, m.ComparisonResult{
			Kind:    codeState.pick(LocalSnippetKinds),
			Path:    codePath,
			Snippet: snippet,
		})

		docPath, found := probeDocPath(base, fs)

		docState := fileMissing
		if found {
			if docState, err = classifyFile(docPath, snippet.Docs, fs); err != nil {
				return nil, err
			}
		}

		results = append(results, m.ComparisonResult{
			Kind:    docState.pick(LocalSnippetDocKinds),
			Path:    docPath,
			Snippet: snippet,
		})
	}

	localFiles, err := fs.FindFiles(m.Path(snippetsDir), SnippetExtension)
	if err != nil {
		return nil, fmt.Errorf("scan %s for snippet files: %w", collection.Name, err)
	}

	for _, localFile := range localFiles {
		if _, ok := expected[string(localFile)]; !ok {
			results = append(results, m.ComparisonResult{
				Kind: m.LocalSnippetNotFoundInAvrae,
				Path: localFile,
			})
		}
	}

	return results, nil
}

// CompareGvars compares every gvar named by the mapping config, in mapping
// order.
//
// The comparison is deliberately asymmetric: remote gvars absent from the
// mapping are never reported, because multiple repositories may feed a
// single avrae account and the mapping is a deliberate, partial subset.
func CompareGvars(gvars []m.Gvar, mappings []adapter.GvarMapping, basePath m.Path, fs adapter.RepoFS) ([]m.ComparisonResult, error) {
	results := make([]m.ComparisonResult, 0, len(mappings))

	for _, mapping := range mappings {
		path := m.Path(filepath.Join(string(basePath), mapping.Path))

		gvar := findGvar(gvars, mapping.Key)
		if gvar == nil {
			results = append(results, m.ComparisonResult{
				Kind: m.LocalGvarNotFoundInAvrae,
				Path: path,
			})

			continue
		}

		state, err := classifyFile(path, gvar.Value, fs)
		if err != nil {
			return nil, err
		}

		results = append(results, m.ComparisonResult{
			Kind: state.pick(LocalGvarKinds),
			Path: path,
			Gvar: gvar,
		})
	}

	return results, nil
}

// CompareCollection compares a single collection's aliases and snippets.
func CompareCollection(collection *m.Collection, basePath m.Path, fs adapter.RepoFS) (CollectionComparison, error) {
	aliases, err := CompareAliases(collection, basePath, fs)
	if err != nil {
		return CollectionComparison{}, err
	}

	snippets, err := CompareSnippets(collection, basePath, fs)
	if err != nil {
		return CollectionComparison{}, err
	}

	return CollectionComparison{
		Collection: collection,
		Aliases:    aliases,
		Snippets:   snippets,
	}, nil
}

// CompareRepository performs one full comparison pass: every collection,
// then the configured gvars.
func CompareRepository(
	collections []m.Collection,
	gvars []m.Gvar,
	gvarMappings []adapter.GvarMapping,
	basePath m.Path,
	fs adapter.RepoFS,
) (*RepositoryComparison, error) {
	comparison := &RepositoryComparison{}

	for i := range collections {
		collectionComparison, err := CompareCollection(&collections[i], basePath, fs)
		if err != nil {
			return nil, err
		}

		comparison.Collections = append(comparison.Collections, collectionComparison)
	}

	gvarResults, err := CompareGvars(gvars, gvarMappings, basePath, fs)
	if err != nil {
		return nil, err
	}

	comparison.Gvars = gvarResults

	return comparison, nil
}

// fileState is the three-way classification of one expected local file.
type fileState int

const (
	fileMissing fileState = iota
	fileMatches
	fileDiffers
)

// kindTriple maps the three file states onto concrete result kinds, indexed
// by fileState.
type kindTriple [3]m.ResultKind

// Kind triples for each entity/content pairing.
var (
	LocalAliasKinds      = kindTriple{m.LocalAliasMissing, m.LocalAliasMatchesAvrae, m.LocalAliasDoesNotMatchAvrae}
	LocalAliasDocKinds   = kindTriple{m.LocalAliasDocsMissing, m.LocalAliasDocsMatchAvrae, m.LocalAliasDocsDoNotMatchAvrae}
	LocalSnippetKinds    = kindTriple{m.LocalSnippetMissing, m.LocalSnippetMatchesAvrae, m.LocalSnippetDoesNotMatchAvrae}
	LocalSnippetDocKinds = kindTriple{m.LocalSnippetDocsMissing, m.LocalSnippetDocsMatchAvrae, m.LocalSnippetDocsDoNotMatchAvrae}
	LocalGvarKinds       = kindTriple{m.LocalGvarMissing, m.LocalGvarMatchesAvrae, m.LocalGvarDoesNotMatchAvrae}
)

func (s fileState) pick(kinds kindTriple) m.ResultKind {
	return kinds[s]
}

// classifyFile reads the local file at path and compares it byte-for-byte
// with the remote content. Read errors propagate: a partial comparison is
// worse than stopping.
func classifyFile(path m.Path, remote string, fs adapter.RepoFS) (fileState, error) {
	if !fs.Exists(path) {
		return fileMissing, nil
	}

	content, err := fs.ReadFile(path)
	if err != nil {
		return fileMissing, fmt.Errorf("read %s: %w", path, err)
	}

	if string(content) == remote {
		return fileMatches, nil
	}

	return fileDiffers, nil
}

// probeDocPath returns the first existing doc file for the base path, in
// DocExtensions order. When none exists it returns the first candidate as
// the expected location and false.
func probeDocPath(basePath string, fs adapter.RepoFS) (m.Path, bool) {
	for _, ext := range DocExtensions {
		candidate := m.Path(basePath + ext)
		if fs.Exists(candidate) {
			return candidate, true
		}
	}

	return m.Path(basePath + DocExtensions[0]), false
}

func findGvar(gvars []m.Gvar, key string) *m.Gvar {
	for i := range gvars {
		if gvars[i].Key == key {
			return &gvars[i]
		}
	}

	return nil
}
