package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/calvinalkan/mdplan/internal/config"
	"github.com/calvinalkan/mdplan/internal/plan"

	flag "github.com/spf13/pflag"
)

const newFilePerms = 0o644

// InitCmd returns the init command.
func InitCmd(cfg *config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("init", flag.ContinueOnError),
		Usage: "init <file>",
		Short: "Write the plan template",
		Long: `Write the MDPlan starter template into <file>.

The file is created if missing. Files with content are left alone.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execInit(io, cfg, args)
		},
	}
}

func execInit(io *IO, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return errFileRequired
	}

	if len(args) > 1 {
		return fmt.Errorf("%w: %v", errTooManyArgs, args[1:])
	}

	path := cfg.Resolve(args[0])
	if !cfg.IsMarkdown(path) {
		return fmt.Errorf("%w: %s", errNotMarkdown, args[0])
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, newFilePerms)
	if err == nil {
		_ = f.Close()
	} else if !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("creating %s: %w", args[0], err)
	}

	buf, err := openBuffer(cfg, args[0])
	if err != nil {
		return err
	}

	if err := buf.Init(plan.Template("\n")); err != nil {
		return err
	}

	io.Println("Initialized", args[0])

	return nil
}
