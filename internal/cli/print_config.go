package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/calvinalkan/mdplan/internal/config"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg *config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execPrintConfig(io, cfg)
		},
	}
}

func execPrintConfig(io *IO, cfg *config.Config) error {
	io.Println("effective_cwd=" + cfg.EffectiveCwd)
	io.Println("spaces_per_level=" + strconv.Itoa(cfg.SpacesPerLevel))
	io.Println("max_nesting_level=" + strconv.Itoa(cfg.MaxNestingLevel))
	io.Println("markdown_extensions=" + strings.Join(cfg.MarkdownExtensions, ","))

	if cfg.Editor != "" {
		io.Println("editor=" + cfg.Editor)
	}

	if cfg.User != "" {
		io.Println("user=" + cfg.User)
	}

	io.Println("")
	io.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		io.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			io.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			io.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}
