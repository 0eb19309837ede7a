package controller

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// resultsModel is the Bubble Tea model paging through comparison result
// lines when they do not fit on screen.
type resultsModel struct {
	header   string
	lines    []string
	height   int
	width    int
	offset   int
	quitting bool
}

func newResultsModel(header string, lines []string, width, height int) resultsModel {
	return resultsModel{
		header: header,
		lines:  lines,
		width:  width,
		height: height,
	}
}

func runPager(output io.Writer, model resultsModel) error {
	program := tea.NewProgram(model, tea.WithOutput(output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func (rm resultsModel) Init() tea.Cmd {
	return nil
}

func (rm resultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.height = msg.Height
		rm.width = msg.Width

		return rm, nil

	case tea.KeyMsg:
		return rm.handleKeyPress(msg)
	}

	return rm, nil
}

//nolint:exhaustive // Key handling requires multiple cases for UI navigation
func (rm resultsModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		rm.quitting = true
		return rm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		rm.quitting = true
		return rm, tea.Quit

	case "down", "j":
		rm.offset = min(rm.offset+1, rm.maxOffset())
		return rm, nil

	case "up", "k":
		rm.offset = max(rm.offset-1, 0)
		return rm, nil

	case "g", "home":
		rm.offset = 0
		return rm, nil

	case "G", "end":
		rm.offset = rm.maxOffset()
		return rm, nil

	case "d", "pgdown":
		rm.offset = min(rm.offset+rm.linesPerPage(), rm.maxOffset())
		return rm, nil

	case "u", "pgup":
		rm.offset = max(rm.offset-rm.linesPerPage(), 0)
		return rm, nil
	}

	return rm, nil
}

// linesPerPage calculates how many result lines fit on screen beside the
// header and footer.
func (rm resultsModel) linesPerPage() int {
	if rm.height == 0 {
		return 10
	}

	reserved := strings.Count(rm.header, "\n") + 4

	available := rm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

func (rm resultsModel) maxOffset() int {
	maxOff := len(rm.lines) - rm.linesPerPage()
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

// needsPagination reports whether the list is too large to print directly.
func (rm resultsModel) needsPagination() bool {
	return rm.height > 0 && len(rm.lines) > rm.linesPerPage()
}

func (rm resultsModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(rm.header)
	b.WriteString("\n")

	perPage := rm.linesPerPage()

	start := rm.offset
	if start > len(rm.lines) {
		start = len(rm.lines)
	}

	end := start + perPage
	if end > len(rm.lines) {
		end = len(rm.lines)
	}

	for _, line := range rm.lines[start:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if rm.needsPagination() {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  Showing %d-%d of %d\n", start+1, end, len(rm.lines))
		b.WriteString("  ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit\n")
	}

	return b.String()
}
