package domain

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"avrsync.dev/pkg/avrsync/internal/adapter"
	m "avrsync.dev/pkg/avrsync/internal/model"
)

const diffContextLines = 3

// RenderDiff produces a unified diff between the remote content of a
// mismatch result and the local file it was compared against. Results that
// are not content mismatches render as an empty string.
func RenderDiff(result m.ComparisonResult, fs adapter.RepoFS) (string, error) {
	switch result.Kind {
	case m.LocalAliasDoesNotMatchAvrae, m.LocalAliasDocsDoNotMatchAvrae,
		m.LocalSnippetDoesNotMatchAvrae, m.LocalSnippetDocsDoNotMatchAvrae,
		m.LocalGvarDoesNotMatchAvrae:
	default:
		return "", nil
	}

	local, err := fs.ReadFile(result.Path)
	if err != nil {
		return "", fmt.Errorf("read %s for diff: %w", result.Path, err)
	}

	unified := difflib.UnifiedDiff{
		A:        difflib.SplitLines(result.RemoteContent()),
		B:        difflib.SplitLines(string(local)),
		FromFile: "avrae",
		ToFile:   string(result.Path),
		Context:  diffContextLines,
	}

	body, err := difflib.GetUnifiedDiffString(unified)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", result.Path, err)
	}

	return body, nil
}
