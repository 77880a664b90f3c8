package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/calvinalkan/mdplan/internal/config"
	"github.com/calvinalkan/mdplan/internal/plan"

	flag "github.com/spf13/pflag"
)

// report is one issue as printed by check.
type report struct {
	Path      string `json:"path"                yaml:"path"`
	Line      int    `json:"line"                yaml:"line"`
	Column    int    `json:"column"              yaml:"column"`
	EndColumn int    `json:"end_column"          yaml:"end_column"`
	Severity  string `json:"severity"            yaml:"severity"`
	Kind      string `json:"kind"                yaml:"kind"`
	Message   string `json:"message"             yaml:"message"`
	Fix       string `json:"fix,omitempty"       yaml:"fix,omitempty"`
}

func newReport(path string, issue plan.Issue) report {
	return report{
		Path:      path,
		Line:      issue.Line + 1,
		Column:    issue.StartCol + 1,
		EndColumn: issue.EndCol + 1,
		Severity:  issue.Severity.String(),
		Kind:      issue.Kind.String(),
		Message:   issue.Message,
		Fix:       issue.SuggestedFix,
	}
}

// String renders the report as "path:line:col: severity: message".
func (r report) String() string {
	s := fmt.Sprintf("%s:%d:%d: %s: %s", r.Path, r.Line, r.Column, r.Severity, r.Message)
	if r.Fix != "" {
		s += " (fix: " + r.Fix + ")"
	}

	return s
}

// CheckCmd returns the check command.
func CheckCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.StringP("format", "f", "text", "Output format: text|json|yaml")

	return &Command{
		Flags: fs,
		Usage: "check [--format F] <file>...",
		Short: "Validate plan structure",
		Long: `Validate MDPlan documents and print every structural issue.

Files without the ` + plan.Marker + ` marker are skipped with a warning.
Exits 1 when any issue is found.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			format, _ := fs.GetString("format")

			return execCheck(io, cfg, format, args)
		},
	}
}

func execCheck(io *IO, cfg *config.Config, format string, args []string) error {
	if format != "text" && format != "json" && format != "yaml" {
		return fmt.Errorf("%w: %s", errUnknownFormat, format)
	}

	if len(args) == 0 {
		return errFileRequired
	}

	reports := []report{}

	for _, path := range args {
		buf, err := openBuffer(cfg, path)
		if err != nil {
			return err
		}

		doc, err := buf.Snapshot()
		if err != nil {
			return err
		}

		if !plan.IsMDPlanDocument(doc) {
			io.Warn(path+": not an MDPlan document", "add "+plan.Marker+" to check it")

			continue
		}

		for _, issue := range plan.Diagnose(doc, cfg.PlanOptions()) {
			reports = append(reports, newReport(path, issue))
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(io.Out())
		enc.SetIndent("", "  ")

		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(io.Out())
		enc.SetIndent(2)

		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}

		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
	default:
		for _, r := range reports {
			io.Println(r.String())
		}
	}

	if len(reports) > 0 {
		return fmt.Errorf("%w: %d", errIssuesFound, len(reports))
	}

	return nil
}
