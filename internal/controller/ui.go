// Package controller provides output implementations for displaying
// comparison results.
package controller

import (
	"context"
	"os"

	"golang.org/x/term"

	m "avrsync.dev/pkg/avrsync/internal/model"
)

// UI defines the interface for presenting comparison results and sync
// progress. Implementations can use different output methods (plain text,
// paged TTY output).
type UI interface {
	// DisplayComparison renders a full comparison pass: a per-kind summary
	// table followed by one line per result, with optional unified diffs
	// keyed by result path.
	DisplayComparison(ctx context.Context, results []m.ComparisonResult, diffs map[m.Path]string) error

	// DisplayApplied reports one result being applied to the repository.
	DisplayApplied(ctx context.Context, result m.ComparisonResult)

	// DisplayPush reports the push action taken (or skipped) for one result.
	DisplayPush(ctx context.Context, result m.ComparisonResult, action string)
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
