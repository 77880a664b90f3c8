package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/calvinalkan/mdplan/internal/cli"
)

const marker = "<!-- mdplan -->"

const cleanPlan = "# P\n\n## Todo\n- [wip] task\n\n## Done\n" + marker + "\n"

const brokenPlan = "# P\n" + // 1
	"- [ ] orphan\n" + // 2
	"## Todo\n" + // 3
	"- [doing] a\n" + // 4
	marker + "\n"

func Test_Check_Passes_When_Plan_Clean(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("plan.md", cleanPlan)

	if got := c.MustRun("check", "plan.md"); got != "" {
		t.Errorf("stdout=%q, want empty", got)
	}
}

func Test_Check_Reports_Issues_When_Plan_Broken(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("plan.md", brokenPlan)

	stdout, stderr, exitCode := c.Run("check", "plan.md")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	want := "plan.md:2:1: error: Tasks must be under a section (## Section Name)\n" +
		"plan.md:4:3: error: Invalid task status: [doing]. Valid statuses: [ ], [wip], [x], [blocked] (fix: [wip])\n"
	if stdout != want {
		t.Errorf("stdout:\n%s\nwant:\n%s", stdout, want)
	}

	cli.AssertContains(t, stderr, "issues found: 2")
}

func Test_Check_Prints_JSON_When_Format_Json(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("plan.md", brokenPlan)

	stdout, _, exitCode := c.Run("check", "--format", "json", "plan.md")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	var got []map[string]any
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, stdout)
	}

	want := []map[string]any{
		{
			"path": "plan.md", "line": 2.0, "column": 1.0, "end_column": 13.0,
			"severity": "error", "kind": "task-outside-section",
			"message": "Tasks must be under a section (## Section Name)",
		},
		{
			"path": "plan.md", "line": 4.0, "column": 3.0, "end_column": 10.0,
			"severity": "error", "kind": "invalid-status",
			"message": "Invalid task status: [doing]. Valid statuses: [ ], [wip], [x], [blocked]",
			"fix":     "[wip]",
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}
}

func Test_Check_Prints_YAML_When_Format_Yaml(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("plan.md", brokenPlan)

	stdout, _, _ := c.Run("check", "-f", "yaml", "plan.md")

	var got []struct {
		Line int    `yaml:"line"`
		Kind string `yaml:"kind"`
		Fix  string `yaml:"fix"`
	}
	if err := yaml.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid yaml: %v\n%s", err, stdout)
	}

	if len(got) != 2 || got[1].Kind != "invalid-status" || got[1].Fix != "[wip]" || got[1].Line != 4 {
		t.Errorf("yaml=%+v", got)
	}
}

func Test_Check_Warns_When_Marker_Missing(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("notes.md", "- [doing] not a plan\n")

	stdout, stderr, exitCode := c.Run("check", "notes.md")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if stdout != "" {
		t.Errorf("stdout=%q, want empty", stdout)
	}

	cli.AssertContains(t, stderr, "warning: notes.md: not an MDPlan document")
}

func Test_Check_Reports_Missing_Title_When_First_Line_Not_Title(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("plan.md", "no title here\n"+marker)

	stdout, _, _ := c.Run("check", "plan.md")
	cli.AssertContains(t, stdout, "plan.md:1:1: warning: MDPlan files should start with a title (# Title)")
}

func Test_Check_Fails_When_Format_Unknown(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("plan.md", cleanPlan)

	stderr := c.MustFail("check", "--format", "xml", "plan.md")
	cli.AssertContains(t, stderr, "unknown format")
}

func Test_Check_Uses_Config_When_Nesting_Raised(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".mdplan.json", `{"max_nesting_level": 2}`)
	c.WriteFile("plan.md", "# P\n## S\n- [ ] a\n  - [ ] b\n    - [ ] c\n"+marker)

	c.MustRun("check", "plan.md")
}
