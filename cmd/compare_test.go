package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"avrsync.dev/pkg/avrsync/internal/domain"
	domainmocks "avrsync.dev/pkg/avrsync/internal/domain/mocks"
	m "avrsync.dev/pkg/avrsync/internal/model"
)

func swapWorkflow(t *testing.T) *domainmocks.MockWorkflow {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow
	t.Cleanup(func() { workflow = originalWorkflow })

	return mockWorkflow
}

func newTestRoot(children ...*cobra.Command) *cobra.Command {
	cmd := baseRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	for _, child := range children {
		cmd.AddCommand(child)
	}

	return cmd
}

func TestCompareCmd_PassesRepoArgs(t *testing.T) {
	mockWorkflow := swapWorkflow(t)

	root, collectionsConfig, gvarsConfig := repoArgs()

	mockWorkflow.On("Compare", mock.Anything, mock.MatchedBy(func(args domain.CompareArgs) bool {
		return args.Root == root &&
			args.CollectionsConfig == collectionsConfig &&
			args.GvarsConfig == gvarsConfig &&
			!args.ShowDiffs
	})).Return(&domain.RepositoryComparison{}, nil)

	cmd := newTestRoot(newCompareCmd())
	cmd.SetArgs([]string{"compare"})

	require.NoError(t, cmd.Execute())
}

func TestCompareCmd_DiffFlag(t *testing.T) {
	mockWorkflow := swapWorkflow(t)
	t.Cleanup(func() { compareDiffFlag = false })

	mockWorkflow.On("Compare", mock.Anything, mock.MatchedBy(func(args domain.CompareArgs) bool {
		return args.ShowDiffs
	})).Return(&domain.RepositoryComparison{}, nil)

	cmd := newTestRoot(newCompareCmd())
	cmd.SetArgs([]string{"compare", "--diff"})

	require.NoError(t, cmd.Execute())
}

func TestCompareCmd_FailOnDrift(t *testing.T) {
	mockWorkflow := swapWorkflow(t)
	t.Cleanup(func() { compareFailOnDriftFlag = false })

	drifted := &domain.RepositoryComparison{
		Gvars: []m.ComparisonResult{
			{Kind: m.LocalGvarDoesNotMatchAvrae, Path: "vars/a.gvar", Gvar: &m.Gvar{Key: "key-a"}},
		},
	}

	mockWorkflow.On("Compare", mock.Anything, mock.Anything).Return(drifted, nil)

	cmd := newTestRoot(newCompareCmd())
	cmd.SetArgs([]string{"compare", "--fail-on-drift"})

	require.Error(t, cmd.Execute())
}

func TestCompareCmd_FailOnDriftPassesWhenInSync(t *testing.T) {
	mockWorkflow := swapWorkflow(t)
	t.Cleanup(func() { compareFailOnDriftFlag = false })

	synced := &domain.RepositoryComparison{
		Gvars: []m.ComparisonResult{
			{Kind: m.LocalGvarMatchesAvrae, Path: "vars/a.gvar", Gvar: &m.Gvar{Key: "key-a"}},
		},
	}

	mockWorkflow.On("Compare", mock.Anything, mock.Anything).Return(synced, nil)

	cmd := newTestRoot(newCompareCmd())
	cmd.SetArgs([]string{"compare", "--fail-on-drift"})

	require.NoError(t, cmd.Execute())
}
