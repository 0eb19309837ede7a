package model

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResultKind classifies the outcome of comparing one local path against its
// remote counterpart. The set is closed: Summary and Apply are total over it.
type ResultKind int

const (
	// LocalAliasMatchesAvrae: the local .alias file matches the active code
	// version in the avrae collection.
	LocalAliasMatchesAvrae ResultKind = iota
	// LocalAliasDocsMatchAvrae: the local doc file matches the alias docs.
	LocalAliasDocsMatchAvrae
	// LocalAliasDoesNotMatchAvrae: the local .alias file differs from the
	// active code version on avrae.
	LocalAliasDoesNotMatchAvrae
	// LocalAliasDocsDoNotMatchAvrae: the local doc file differs from the
	// alias docs on avrae.
	LocalAliasDocsDoNotMatchAvrae
	// LocalAliasMissing: an avrae alias has no .alias file at its expected
	// location in the repository.
	LocalAliasMissing
	// LocalAliasDocsMissing: no doc file exists for the alias.
	LocalAliasDocsMissing
	// LocalAliasNotFoundInAvrae: a .alias file exists in the collection
	// directory but no avrae alias maps to it.
	LocalAliasNotFoundInAvrae

	// LocalSnippetMatchesAvrae: the local .snippet file matches the active
	// code version in the avrae collection.
	LocalSnippetMatchesAvrae
	// LocalSnippetDocsMatchAvrae: the local doc file matches the snippet docs.
	LocalSnippetDocsMatchAvrae
	// LocalSnippetDoesNotMatchAvrae: the local .snippet file differs from
	// the active code version on avrae.
	LocalSnippetDoesNotMatchAvrae
	// LocalSnippetDocsDoNotMatchAvrae: the local doc file differs from the
	// snippet docs on avrae.
	LocalSnippetDocsDoNotMatchAvrae
	// LocalSnippetMissing: an avrae snippet has no .snippet file at its
	// expected location in the repository.
	LocalSnippetMissing
	// LocalSnippetDocsMissing: no doc file exists for the snippet.
	LocalSnippetDocsMissing
	// LocalSnippetNotFoundInAvrae: a .snippet file exists in the snippets
	// directory but no avrae snippet maps to it.
	LocalSnippetNotFoundInAvrae

	// LocalGvarMatchesAvrae: the local .gvar file matches the remote value.
	LocalGvarMatchesAvrae
	// LocalGvarDoesNotMatchAvrae: the local .gvar file differs from the
	// remote value.
	LocalGvarDoesNotMatchAvrae
	// LocalGvarMissing: a configured gvar exists on avrae but its file is
	// missing from the repository.
	LocalGvarMissing
	// LocalGvarNotFoundInAvrae: a configured gvar key is unknown to avrae.
	LocalGvarNotFoundInAvrae
)

var resultKindNames = map[ResultKind]string{
	LocalAliasMatchesAvrae:          "LocalAliasMatchesAvrae",
	LocalAliasDocsMatchAvrae:        "LocalAliasDocsMatchAvrae",
	LocalAliasDoesNotMatchAvrae:     "LocalAliasDoesNotMatchAvrae",
	LocalAliasDocsDoNotMatchAvrae:   "LocalAliasDocsDoNotMatchAvrae",
	LocalAliasMissing:               "LocalAliasMissing",
	LocalAliasDocsMissing:           "LocalAliasDocsMissing",
	LocalAliasNotFoundInAvrae:       "LocalAliasNotFoundInAvrae",
	LocalSnippetMatchesAvrae:        "LocalSnippetMatchesAvrae",
	LocalSnippetDocsMatchAvrae:      "LocalSnippetDocsMatchAvrae",
	LocalSnippetDoesNotMatchAvrae:   "LocalSnippetDoesNotMatchAvrae",
	LocalSnippetDocsDoNotMatchAvrae: "LocalSnippetDocsDoNotMatchAvrae",
	LocalSnippetMissing:             "LocalSnippetMissing",
	LocalSnippetDocsMissing:         "LocalSnippetDocsMissing",
	LocalSnippetNotFoundInAvrae:     "LocalSnippetNotFoundInAvrae",
	LocalGvarMatchesAvrae:           "LocalGvarMatchesAvrae",
	LocalGvarDoesNotMatchAvrae:      "LocalGvarDoesNotMatchAvrae",
	LocalGvarMissing:                "LocalGvarMissing",
	LocalGvarNotFoundInAvrae:        "LocalGvarNotFoundInAvrae",
}

func (k ResultKind) String() string {
	if name, ok := resultKindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("ResultKind(%d)", int(k))
}

// FileWriter is the narrow filesystem surface Apply needs. The repo
// filesystem adapter satisfies it.
type FileWriter interface {
	MkdirAll(path Path, perm os.FileMode) error
	WriteFile(path Path, content []byte, perm os.FileMode) error
}

// ComparisonResult is the outcome of comparing a single expected local path
// with its corresponding remote entity, or an orphaned local file.
//
// Results are immutable value records created during a single comparison
// pass; equality is structural. Exactly one of Alias/Snippet/Gvar is set,
// except for the *NotFoundInAvrae kinds where there is no remote entity.
type ComparisonResult struct {
	Kind    ResultKind
	Path    Path
	Alias   *Alias
	Snippet *Snippet
	Gvar    *Gvar
}

// Entity returns the entity category of the result: "alias", "snippet" or
// "gvar".
func (r ComparisonResult) Entity() string {
	switch {
	case r.Kind <= LocalAliasNotFoundInAvrae:
		return "alias"
	case r.Kind <= LocalSnippetNotFoundInAvrae:
		return "snippet"
	default:
		return "gvar"
	}
}

// UpdatesRepository reports whether applying this result writes remote
// content into the local repository, i.e. the repository is behind avrae.
func (r ComparisonResult) UpdatesRepository() bool {
	switch r.Kind {
	case LocalAliasDoesNotMatchAvrae, LocalAliasDocsDoNotMatchAvrae,
		LocalAliasMissing, LocalAliasDocsMissing,
		LocalSnippetDoesNotMatchAvrae, LocalSnippetDocsDoNotMatchAvrae,
		LocalSnippetMissing, LocalSnippetDocsMissing,
		LocalGvarDoesNotMatchAvrae, LocalGvarMissing:
		return true
	default:
		return false
	}
}

// UpdatesAvrae reports whether this result describes local content avrae
// does not have. These results are surfaced for a separate push decision,
// never applied by Apply: creating or overwriting remote entities needs
// choices (naming, parenting, version handling) outside this engine.
func (r ComparisonResult) UpdatesAvrae() bool {
	switch r.Kind {
	case LocalAliasDoesNotMatchAvrae, LocalAliasDocsDoNotMatchAvrae,
		LocalAliasNotFoundInAvrae,
		LocalSnippetDoesNotMatchAvrae, LocalSnippetDocsDoNotMatchAvrae,
		LocalSnippetNotFoundInAvrae,
		LocalGvarDoesNotMatchAvrae, LocalGvarNotFoundInAvrae:
		return true
	default:
		return false
	}
}

// Summary returns a one-line description of the difference between the
// local repository and avrae.
func (r ComparisonResult) Summary() string {
	switch r.Kind {
	case LocalAliasMatchesAvrae:
		return fmt.Sprintf("%s matches the active code of alias %q", r.Path, r.Alias.Name)
	case LocalAliasDocsMatchAvrae:
		return fmt.Sprintf("%s matches the docs of alias %q", r.Path, r.Alias.Name)
	case LocalAliasDoesNotMatchAvrae:
		return fmt.Sprintf("%s does not match the active code of alias %q", r.Path, r.Alias.Name)
	case LocalAliasDocsDoNotMatchAvrae:
		return fmt.Sprintf("%s does not match the docs of alias %q", r.Path, r.Alias.Name)
	case LocalAliasMissing:
		return fmt.Sprintf("%s is missing but alias %q exists on avrae", r.Path, r.Alias.Name)
	case LocalAliasDocsMissing:
		return fmt.Sprintf("%s is missing but alias %q has docs on avrae", r.Path, r.Alias.Name)
	case LocalAliasNotFoundInAvrae:
		return fmt.Sprintf("%s was not found in the matching avrae collection", r.Path)
	case LocalSnippetMatchesAvrae:
		return fmt.Sprintf("%s matches the active code of snippet %q", r.Path, r.Snippet.Name)
	case LocalSnippetDocsMatchAvrae:
		return fmt.Sprintf("%s matches the docs of snippet %q", r.Path, r.Snippet.Name)
	case LocalSnippetDoesNotMatchAvrae:
		return fmt.Sprintf("%s does not match the active code of snippet %q", r.Path, r.Snippet.Name)
	case LocalSnippetDocsDoNotMatchAvrae:
		return fmt.Sprintf("%s does not match the docs of snippet %q", r.Path, r.Snippet.Name)
	case LocalSnippetMissing:
		return fmt.Sprintf("%s is missing but snippet %q exists on avrae", r.Path, r.Snippet.Name)
	case LocalSnippetDocsMissing:
		return fmt.Sprintf("%s is missing but snippet %q has docs on avrae", r.Path, r.Snippet.Name)
	case LocalSnippetNotFoundInAvrae:
		return fmt.Sprintf("%s was not found in the matching avrae collection", r.Path)
	case LocalGvarMatchesAvrae:
		return fmt.Sprintf("%s matches gvar %s", r.Path, r.Gvar.Key)
	case LocalGvarDoesNotMatchAvrae:
		return fmt.Sprintf("%s does not match gvar %s", r.Path, r.Gvar.Key)
	case LocalGvarMissing:
		return fmt.Sprintf("%s is missing but gvar %s exists on avrae", r.Path, r.Gvar.Key)
	case LocalGvarNotFoundInAvrae:
		return fmt.Sprintf("%s is configured but its gvar key is unknown to avrae", r.Path)
	}

	return fmt.Sprintf("%s: unknown comparison result", r.Path)
}

// Apply synchronizes the local repository with avrae for this result by
// writing the remote content to the expected path, creating parent
// directories as needed. Results which do not update the repository
// (matches and *NotFoundInAvrae) apply as no-ops.
func (r ComparisonResult) Apply(fs FileWriter) error {
	if !r.UpdatesRepository() {
		return nil
	}

	content := r.RemoteContent()

	if err := fs.MkdirAll(Path(filepath.Dir(string(r.Path))), 0o755); err != nil {
		return fmt.Errorf("create directories for %s: %w", r.Path, err)
	}

	if err := fs.WriteFile(r.Path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", r.Path, err)
	}

	return nil
}

// RemoteContent returns the avrae-side content this result was compared
// against: code, docs or gvar value depending on the kind.
func (r ComparisonResult) RemoteContent() string {
	switch r.Kind {
	case LocalAliasDoesNotMatchAvrae, LocalAliasMissing:
		return r.Alias.Code
	case LocalAliasDocsDoNotMatchAvrae, LocalAliasDocsMissing:
		return r.Alias.Docs
	case LocalSnippetDoesNotMatchAvrae, LocalSnippetMissing:
		return r.Snippet.Code
	case LocalSnippetDocsDoNotMatchAvrae, LocalSnippetDocsMissing:
		return r.Snippet.Docs
	case LocalGvarDoesNotMatchAvrae, LocalGvarMissing:
		return r.Gvar.Value
	default:
		return ""
	}
}
