package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"avrsync.dev/pkg/avrsync/internal/domain"
)

func TestPullCmd_PassesRepoArgs(t *testing.T) {
	mockWorkflow := swapWorkflow(t)

	root, collectionsConfig, gvarsConfig := repoArgs()

	mockWorkflow.On("Pull", mock.Anything, mock.MatchedBy(func(args domain.PullArgs) bool {
		return args.Root == root &&
			args.CollectionsConfig == collectionsConfig &&
			args.GvarsConfig == gvarsConfig
	})).Return(nil)

	cmd := newTestRoot(newPullCmd())
	cmd.SetArgs([]string{"pull"})

	require.NoError(t, cmd.Execute())
}

func TestPullCmd_PropagatesErrors(t *testing.T) {
	mockWorkflow := swapWorkflow(t)

	boom := errors.New("network down")
	mockWorkflow.On("Pull", mock.Anything, mock.Anything).Return(boom)

	cmd := newTestRoot(newPullCmd())
	cmd.SetArgs([]string{"pull"})

	require.ErrorIs(t, cmd.Execute(), boom)
}
