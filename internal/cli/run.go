package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/calvinalkan/mdplan/internal/actions"
	"github.com/calvinalkan/mdplan/internal/config"
	"github.com/calvinalkan/mdplan/internal/host"

	flag "github.com/spf13/pflag"
)

var errNoCommand = errors.New("no command given")

// Run is the main entry point. Returns exit code.
//
// in supplies answers to interactive questions; when it is the process
// stdin and a terminal, questions use line editing. sigCh cancels
// long-running commands such as watch.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	globalFlags := flag.NewFlagSet("mdplan", flag.ContinueOnError)
	globalFlags.SetInterspersed(false)
	globalFlags.SetOutput(&strings.Builder{})
	globalFlags.BoolP("help", "h", false, "Show help")
	globalFlags.StringP("cwd", "C", "", "Run as if started in `dir`")
	globalFlags.StringP("config", "c", "", "Use specified config `file`")
	globalFlags.BoolP("verbose", "v", false, "Log debug details to stderr")

	if len(args) < 2 {
		printUsage(out, nil)

		return 0
	}

	if err := globalFlags.Parse(args[1:]); err != nil {
		fprintln(errOut, "error:", err)
		printGlobalOptions(errOut)

		return 1
	}

	if help, _ := globalFlags.GetBool("help"); help {
		printUsage(out, nil)

		return 0
	}

	logger := log.NewWithOptions(errOut, log.Options{Prefix: "mdplan", Level: log.WarnLevel})
	if verbose, _ := globalFlags.GetBool("verbose"); verbose {
		logger.SetLevel(log.DebugLevel)
	}

	workDir, _ := globalFlags.GetString("cwd")
	configPath, _ := globalFlags.GetString("config")

	cfg, err := config.LoadConfig(config.LoadConfigInput{
		WorkDirOverride: workDir,
		ConfigPath:      configPath,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)
		printGlobalOptions(errOut)

		return 1
	}

	logger.Debug("config loaded", "global", cfg.Sources.Global, "project", cfg.Sources.Project)

	prompter := newPrompter(in, errOut)
	defer prompter.close()

	svc := &actions.Service{
		Prompter: prompter,
		Options:  cfg.PlanOptions(),
		Now:      time.Now,
		Logger:   logger,
	}

	commands := []*Command{
		CheckCmd(&cfg),
		FixCmd(&cfg, svc),
		OutlineCmd(&cfg),
		AddCmd(&cfg, svc),
		MoveCmd(&cfg, svc),
		StatusCmd(&cfg, svc),
		DoneCmd(&cfg, svc),
		DetailCmd(&cfg, svc, env),
		DeleteCmd(&cfg, svc),
		ActCmd(&cfg, svc),
		InitCmd(&cfg),
		WatchCmd(&cfg, logger),
		PrintConfigCmd(&cfg),
	}

	rest := globalFlags.Args()
	if len(rest) == 0 {
		fprintln(errOut, "error:", errNoCommand)
		printUsage(errOut, commands)

		return 1
	}

	name := rest[0]

	var cmd *Command

	for _, c := range commands {
		if c.Name() == name {
			cmd = c

			break
		}
	}

	if cmd == nil {
		fprintln(errOut, "error: unknown command:", name)
		printUsage(errOut, commands)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				logger.Debug("interrupted")
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	o := NewIO(out, errOut)

	code := cmd.Run(ctx, o, rest[1:])

	// Finish handles warnings and exit code
	if warnCode := o.Finish(); code == 0 {
		code = warnCode
	}

	return code
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printGlobalOptions(w io.Writer) {
	fprintln(w, `
Global flags:
  -C, --cwd <dir>       Run as if started in <dir>
  -c, --config <file>   Use specified config file
  -v, --verbose         Log debug details to stderr
  -h, --help            Show help`)
}

func printUsage(w io.Writer, commands []*Command) {
	fprintln(w, `mdplan - structural linter and editor for markdown plans

Usage: mdplan [flags] <command> [args]`)
	printGlobalOptions(w)

	if commands == nil {
		commands = []*Command{
			CheckCmd(nil), FixCmd(nil, nil), OutlineCmd(nil), AddCmd(nil, nil), MoveCmd(nil, nil),
			StatusCmd(nil, nil), DoneCmd(nil, nil), DetailCmd(nil, nil, nil), DeleteCmd(nil, nil),
			ActCmd(nil, nil), InitCmd(nil), WatchCmd(nil, nil), PrintConfigCmd(nil),
		}
	}

	fprintln(w)
	fprintln(w, "Commands:")

	for _, c := range commands {
		fprintln(w, c.HelpLine())
	}
}

// prompter picks the terminal prompter lazily, so commands that never ask
// leave the terminal alone.
type prompter struct {
	in     io.Reader
	out    io.Writer
	impl   host.Prompter
	closer func() error
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	if in == nil {
		in = strings.NewReader("")
	}

	return &prompter{in: in, out: out}
}

func (p *prompter) get() host.Prompter {
	if p.impl != nil {
		return p.impl
	}

	if f, ok := p.in.(*os.File); ok && f == os.Stdin && host.TerminalSupported() {
		lp := host.NewLinerPrompter(p.out)
		p.impl, p.closer = lp, lp.Close
	} else {
		p.impl = host.NewLinePrompter(p.in, p.out)
	}

	return p.impl
}

func (p *prompter) close() {
	if p.closer != nil {
		_ = p.closer()
	}
}

func (p *prompter) Input(prompt, placeholder string) (string, bool, error) {
	return p.get().Input(prompt, placeholder)
}

func (p *prompter) Select(title string, choices []host.Choice) (int, bool, error) {
	return p.get().Select(title, choices)
}

func (p *prompter) Confirm(question string) (bool, error) {
	return p.get().Confirm(question)
}
