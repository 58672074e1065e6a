package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/enscope/internal/ports/primary"
)

// AssistAdapter prints field guidance and the prompts behind it.
type AssistAdapter struct {
	service primary.AssistService
	out     io.Writer
}

// NewAssistAdapter creates a new AssistAdapter with the given service.
func NewAssistAdapter(service primary.AssistService, out io.Writer) *AssistAdapter {
	return &AssistAdapter{service: service, out: out}
}

// Assist prints guidance for one field along with flagged red gaps.
func (a *AssistAdapter) Assist(ctx context.Context, req primary.AssistRequest) (*primary.AssistResponse, error) {
	resp, err := a.service.Assist(ctx, req)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(a.out, resp.Guidance)
	if len(resp.GapFlags) > 0 {
		fmt.Fprintln(a.out)
		for _, f := range resp.GapFlags {
			fmt.Fprintf(a.out, "%s %s gap: %s\n", red.Sprint("!"), f.Type, f.Description)
		}
	}
	return resp, nil
}

// Prompt prints the system prompt an assist request would send.
func (a *AssistAdapter) Prompt(ctx context.Context, req primary.AssistRequest) (string, error) {
	system, err := a.service.BuildPrompt(ctx, req)
	if err != nil {
		return "", err
	}
	fmt.Fprintln(a.out, system)
	return system, nil
}
