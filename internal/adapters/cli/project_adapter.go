package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/example/enscope/internal/ports/primary"
)

// ProjectAdapter is a thin adapter that translates CLI operations to ProjectService calls.
type ProjectAdapter struct {
	service primary.ProjectService
	out     io.Writer
}

// NewProjectAdapter creates a new ProjectAdapter with the given service.
func NewProjectAdapter(service primary.ProjectService, out io.Writer) *ProjectAdapter {
	return &ProjectAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a project and prints its workflows.
func (a *ProjectAdapter) Create(ctx context.Context, req primary.CreateProjectRequest) (*primary.ProjectDetail, error) {
	p, err := a.service.CreateProject(ctx, req)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Created project %s: %s\n", p.ID, p.Name)
	a.printWorkflows(p.Workflows)
	return p, nil
}

// Join verifies the passphrase and prints the project id for later commands.
func (a *ProjectAdapter) Join(ctx context.Context, name, passphrase string) (*primary.ProjectDetail, error) {
	p, err := a.service.JoinProject(ctx, primary.JoinProjectRequest{Name: name, Passphrase: passphrase})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Joined project %s\n", p.Name)
	fmt.Fprintf(a.out, "  id: %s\n", p.ID)
	return p, nil
}

// List lists all projects, newest first.
func (a *ProjectAdapter) List(ctx context.Context) ([]*primary.Project, error) {
	projects, err := a.service.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Fprintln(a.out, "No projects found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first project:")
		fmt.Fprintln(a.out, `  enscope project create "Acme Event Mgmt" --client Acme --passphrase ...`)
		return projects, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCLIENT\tCREATED")
	fmt.Fprintln(w, "--\t----\t------\t-------")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.ClientName, p.CreatedAt)
	}
	w.Flush()
	return projects, nil
}

// Show prints the project dashboard.
func (a *ProjectAdapter) Show(ctx context.Context, projectID string) (*primary.Dashboard, error) {
	d, err := a.service.GetDashboard(ctx, projectID)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(a.out)
	heading.Fprintf(a.out, "Project: %s\n", d.Project.Name)
	fmt.Fprintf(a.out, "ID:         %s\n", d.Project.ID)
	fmt.Fprintf(a.out, "Client:     %s\n", d.Project.ClientName)
	fmt.Fprintf(a.out, "Engagement: %s\n", d.Project.EngagementType)
	if len(d.Project.TeamMembers) > 0 {
		fmt.Fprintf(a.out, "Team:       %s\n", strings.Join(d.Project.TeamMembers, ", "))
	}
	if len(d.ObservabilityTools) > 0 {
		fmt.Fprintf(a.out, "Tools:      %s\n", strings.Join(d.ObservabilityTools, ", "))
	}
	fmt.Fprintln(a.out)

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "#\tWORKFLOW\tSTATUS\tSTEPS\tID")
	for _, wf := range d.Workflows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", wf.WorkflowIndex, wf.WorkflowName, statusText(wf.Status), wf.StepCount, wf.ID)
	}
	w.Flush()

	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Completion: %d%% (%d of %d workflows)\n",
		d.Completion.Percentage, d.Completion.CompleteWorkflows, d.Completion.TotalWorkflows)
	fmt.Fprintf(a.out, "Average score: %s across %d scored steps\n",
		scoreText(d.Scores.AverageComposite, d.Scores.TotalScoredSteps), d.Scores.TotalScoredSteps)
	fmt.Fprintln(a.out)
	return d, nil
}

// Delete removes a project after the passphrase check.
func (a *ProjectAdapter) Delete(ctx context.Context, projectID, passphrase string) error {
	p, err := a.service.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if err := a.service.DeleteProject(ctx, projectID, passphrase); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Deleted project %s: %s\n", p.ID, p.Name)
	return nil
}

func (a *ProjectAdapter) printWorkflows(workflows []*primary.Workflow) {
	for _, wf := range workflows {
		fmt.Fprintf(a.out, "  %d. %s  %s\n", wf.WorkflowIndex, wf.WorkflowName, faint.Sprint(wf.ID))
	}
}
