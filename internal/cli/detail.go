package cli

import (
	"context"
	"strings"

	"github.com/calvinalkan/mdplan/internal/actions"
	"github.com/calvinalkan/mdplan/internal/config"
	"github.com/calvinalkan/mdplan/internal/plan"

	flag "github.com/spf13/pflag"
)

// DetailCmd returns the detail command.
func DetailCmd(cfg *config.Config, svc *actions.Service, env map[string]string) *Command {
	names := make([]string, 0, len(plan.DetailKinds))
	for _, k := range plan.DetailKinds {
		names = append(names, k.String())
	}

	fs := flag.NewFlagSet("detail", flag.ContinueOnError)
	fs.StringP("type", "t", "", "Detail type: "+strings.Join(names, "|")+" (asked for when omitted)")
	fs.BoolP("edit", "e", false, "Open the file in your editor at the inserted detail")

	return &Command{
		Flags: fs,
		Usage: "detail <file> <task-line> [--type T] [--edit]",
		Short: "Add a detail below a task",
		Long: `Insert a detail template right below the task on <task-line>, one level
deeper than the task: a subtask, a code block, a comment (plain, with
today's date, or with date and user), or a bullet point.

The user in comment-user comes from the "user" config key.`,
		Exec: func(ctx context.Context, io *IO, args []string) error {
			path, line, err := fileAndLine(args, "task line")
			if err != nil {
				return err
			}

			buf, err := openBuffer(cfg, path)
			if err != nil {
				return err
			}

			kind, _ := fs.GetString("type")
			res, err := svc.AddTaskDetails(buf, line, kind)

			if finishErr := finishAction(io, res, err, "Added detail"); finishErr != nil || err != nil {
				return finishErr
			}

			if edit, _ := fs.GetBool("edit"); !edit || res.Change.Caret == nil {
				return nil
			}

			editor, err := resolveEditor(cfg, env)
			if err != nil {
				return err
			}

			return runEditor(ctx, editor, buf.Path(), *res.Change.Caret)
		},
	}
}
