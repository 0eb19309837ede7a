package controller

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "avrsync.dev/pkg/avrsync/internal/model"
)

// Styles for the four result categories.
var (
	matchStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	driftStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	orphanStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// SimpleUI implements UI on the cobra command's output writer. On a
// terminal, result lists too long for the screen open in a scrollable pager.
type SimpleUI struct {
	cmd *cobra.Command
	tty bool
}

// NewUI creates the UI for the given command. tty selects paged display for
// long result lists.
func NewUI(cmd *cobra.Command, tty bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, tty: tty}
}

// DisplayComparison renders the per-kind summary table followed by one
// styled line per result and any diff bodies.
func (s *SimpleUI) DisplayComparison(ctx context.Context, results []m.ComparisonResult, diffs map[m.Path]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lines := make([]string, 0, len(results))
	counts := make(map[m.ResultKind]int)

	for _, result := range results {
		counts[result.Kind]++

		lines = append(lines, styleFor(result.Kind).Render(result.Summary()))

		if diff, ok := diffs[result.Path]; ok {
			lines = append(lines, strings.Split(strings.TrimRight(diff, "\n"), "\n")...)
		}
	}

	header := renderSummaryTable(counts, len(results))

	if s.tty {
		if width, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			model := newResultsModel(header, lines, width, height)
			if model.needsPagination() {
				return runPager(s.cmd.OutOrStdout(), model)
			}
		}
	}

	s.printf("\n%s\n", header)

	for _, line := range lines {
		s.printf("%s\n", line)
	}

	return nil
}

// DisplayApplied reports one result being applied to the repository.
func (s *SimpleUI) DisplayApplied(ctx context.Context, result m.ComparisonResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("pulling: %s\n", result.Summary())
}

// DisplayPush reports the push action taken for one result.
func (s *SimpleUI) DisplayPush(ctx context.Context, result m.ComparisonResult, action string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s: %s\n", result.Path, action)
}

func renderSummaryTable(counts map[m.ResultKind]int, total int) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Result", "Count"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for kind := m.LocalAliasMatchesAvrae; kind <= m.LocalGvarNotFoundInAvrae; kind++ {
		if counts[kind] == 0 {
			continue
		}

		table.Append([]string{kind.String(), fmt.Sprintf("%d", counts[kind])})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", total)})
	table.Render()

	return tableBuffer.String()
}

func styleFor(kind m.ResultKind) lipgloss.Style {
	switch kind {
	case m.LocalAliasMatchesAvrae, m.LocalAliasDocsMatchAvrae,
		m.LocalSnippetMatchesAvrae, m.LocalSnippetDocsMatchAvrae,
		m.LocalGvarMatchesAvrae:
		return matchStyle
	case m.LocalAliasDoesNotMatchAvrae, m.LocalAliasDocsDoNotMatchAvrae,
		m.LocalSnippetDoesNotMatchAvrae, m.LocalSnippetDocsDoNotMatchAvrae,
		m.LocalGvarDoesNotMatchAvrae:
		return driftStyle
	case m.LocalAliasMissing, m.LocalAliasDocsMissing,
		m.LocalSnippetMissing, m.LocalSnippetDocsMissing,
		m.LocalGvarMissing:
		return missingStyle
	default:
		return orphanStyle
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
