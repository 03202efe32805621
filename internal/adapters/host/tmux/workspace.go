package tmux

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
	"github.com/carlstedt1/auto-close-tabs/internal/ports"
)

const (
	pinnedOption  = "@pinned"
	sidebarOption = "@sidebar"
	// Sessions named with this prefix host side panels (pickers,
	// scratch popups) and are never swept.
	sidePanelSessionPrefix = "_"
)

// Runner executes one tmux command and returns its trimmed stdout.
// Tests inject a fake; production uses Run.
type Runner func(ctx context.Context, args ...string) (string, error)

// Run invokes the tmux binary.
func Run(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "tmux", args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("tmux %s: %w (output: %s)", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}

	return strings.TrimRight(string(out), "\n"), nil
}

// IsAvailable reports whether the tmux binary is installed and working.
func IsAvailable() error {
	out, err := exec.Command("tmux", "-V").CombinedOutput()
	if err != nil {
		return fmt.Errorf("tmux not found or not working: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}

	return nil
}

// Workspace adapts a running tmux server to the Workspace port. Panes
// map one-to-one onto tmux panes; the pinned flag is the @pinned pane
// option; the focused pane is the active pane of the attached client.
type Workspace struct {
	run    Runner
	logger *slog.Logger
}

var _ ports.Workspace = (*Workspace)(nil)

func NewWorkspace(run Runner, logger *slog.Logger) *Workspace {
	if run == nil {
		run = Run
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Workspace{run: run, logger: logger}
}

const paneFormat = "#{pane_id}\t#{session_name}\t#{pane_title}\t#{pane_current_path}\t#{pane_current_command}\t#{@pinned}"

func (w *Workspace) Panes(ctx context.Context) ([]domain.Pane, error) {
	out, err := w.run(ctx, "list-panes", "-a", "-F", paneFormat)
	if err != nil {
		return nil, fmt.Errorf("list panes: %w", err)
	}

	var panes []domain.Pane
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, "\t", 6)
		if len(fields) < 6 {
			w.logger.Warn("skipping malformed pane line", "line", line)
			continue
		}

		panes = append(panes, domain.Pane{
			ID:       domain.PaneID(fields[0]),
			Title:    paneTitle(fields[2], fields[4]),
			FilePath: fields[3],
			Kind:     fields[4],
			Pinned:   optionSet(fields[5]),
		})
	}

	return panes, nil
}

func (w *Workspace) FocusedPane(ctx context.Context) (domain.PaneID, bool, error) {
	out, err := w.run(ctx, "display-message", "-p", "#{pane_id}")
	if err != nil {
		// No attached client means nothing is focused, not a failure.
		if strings.Contains(err.Error(), "no current client") || strings.Contains(err.Error(), "no clients") {
			return "", false, nil
		}
		return "", false, fmt.Errorf("resolve active pane: %w", err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", false, nil
	}

	return domain.PaneID(out), true, nil
}

func (w *Workspace) ResolveRoot(ctx context.Context, id domain.PaneID) (domain.RootKind, error) {
	out, err := w.run(ctx, "display-message", "-p", "-t", string(id), "#{session_name}\t#{@sidebar}")
	if err != nil {
		return "", fmt.Errorf("resolve root of pane %s: %w", id, err)
	}

	fields := strings.SplitN(out, "\t", 2)
	session := fields[0]
	sidebar := ""
	if len(fields) > 1 {
		sidebar = fields[1]
	}

	if strings.HasPrefix(session, sidePanelSessionPrefix) || optionSet(sidebar) {
		return domain.RootSidePanel, nil
	}

	return domain.RootMain, nil
}

func (w *Workspace) ClosePane(ctx context.Context, id domain.PaneID) error {
	if _, err := w.run(ctx, "kill-pane", "-t", string(id)); err != nil {
		if strings.Contains(err.Error(), "can't find pane") {
			return domain.ErrPaneNotFound
		}
		return fmt.Errorf("kill pane %s: %w", id, err)
	}

	return nil
}

func paneTitle(title, command string) string {
	title = strings.TrimSpace(title)
	if title != "" {
		return title
	}

	return command
}

func optionSet(value string) bool {
	switch strings.TrimSpace(value) {
	case "", "0", "off":
		return false
	default:
		return true
	}
}
