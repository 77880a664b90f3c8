package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/calvinalkan/mdplan/internal/config"
	"github.com/calvinalkan/mdplan/internal/plan"
)

var (
	errNoEditorFound = errors.New("no editor found (set config.editor, $EDITOR, or install vi/nano)")
	errEditorFailed  = errors.New("editor failed")
)

// resolveEditor checks for an available editor using the env map.
// Priority: config.Editor -> $EDITOR -> zed -> vi -> nano -> error.
func resolveEditor(cfg *config.Config, env map[string]string) (string, error) {
	candidates := []string{cfg.Editor, env["EDITOR"], "zed", "vi", "nano"}

	for _, editor := range candidates {
		if editor == "" {
			continue
		}

		if _, lookErr := exec.LookPath(editor); lookErr == nil {
			return editor, nil
		}
	}

	return "", errNoEditorFound
}

// editorArgs returns the arguments opening path at pos (0-based).
func editorArgs(editor, path string, pos plan.Position) []string {
	switch filepath.Base(editor) {
	case "zed":
		return []string{"-n", fmt.Sprintf("%s:%d:%d", path, pos.Line+1, pos.Col+1)}
	case "code", "cursor":
		return []string{"-g", fmt.Sprintf("%s:%d:%d", path, pos.Line+1, pos.Col+1)}
	default:
		return []string{fmt.Sprintf("+%d", pos.Line+1), path}
	}
}

func runEditor(ctx context.Context, editor, path string, pos plan.Position) error {
	cmd := exec.CommandContext(ctx, editor, editorArgs(editor, path, pos)...)

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	runErr := cmd.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return fmt.Errorf("%w: exit code %d", errEditorFailed, exitErr.ExitCode())
		}

		return fmt.Errorf("%w: %w", errEditorFailed, runErr)
	}

	return nil
}
