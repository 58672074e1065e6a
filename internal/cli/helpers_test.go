package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/enscope/internal/ports/primary"
	"github.com/example/enscope/internal/wire"
)

type testProject struct {
	id        string
	workflows []string
}

func mustCreateProject(t *testing.T, a *wire.App) testProject {
	t.Helper()
	p, err := a.Services.Projects.CreateProject(context.Background(), primary.CreateProjectRequest{
		Name:               "Alpha",
		ClientName:         "Acme",
		Passphrase:         "secret",
		ObservabilityTools: []string{"Splunk"},
	})
	require.NoError(t, err)

	tp := testProject{id: p.ID}
	for _, wf := range p.Workflows {
		tp.workflows = append(tp.workflows, wf.ID)
	}
	return tp
}

func joinRequest(name, passphrase string) primary.JoinProjectRequest {
	return primary.JoinProjectRequest{Name: name, Passphrase: passphrase}
}
