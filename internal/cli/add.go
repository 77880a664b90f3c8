package cli

import (
	"context"

	"github.com/calvinalkan/mdplan/internal/actions"
	"github.com/calvinalkan/mdplan/internal/config"

	flag "github.com/spf13/pflag"
)

// AddCmd returns the add command.
func AddCmd(cfg *config.Config, svc *actions.Service) *Command {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.StringP("text", "t", "", "Task text (asked for when omitted)")

	return &Command{
		Flags: fs,
		Usage: "add <file> <section-line> [--text T]",
		Short: "Add a task to a section",
		Long: `Add a planned task at the top of the section whose header is on <section-line>.

The task goes below the section's description comment, if any.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			path, line, err := fileAndLine(args, "section line")
			if err != nil {
				return err
			}

			buf, err := openBuffer(cfg, path)
			if err != nil {
				return err
			}

			text, _ := fs.GetString("text")
			res, err := svc.AddTask(buf, line, text)

			return finishAction(io, res, err, "Added task")
		},
	}
}
