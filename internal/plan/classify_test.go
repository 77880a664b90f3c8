package plan_test

import (
	"testing"

	"github.com/calvinalkan/mdplan/internal/plan"
)

func Test_Classify_Returns_Kind_When_Line_Matches(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		raw  string
		want plan.Line
	}{
		{
			name: "title",
			raw:  "# Project",
			want: plan.Line{Raw: "# Project", Kind: plan.KindTitle},
		},
		{
			name: "section keeps name verbatim",
			raw:  "##  Todo ",
			want: plan.Line{Raw: "##  Todo ", Kind: plan.KindSection, Text: "Todo "},
		},
		{
			name: "planned task",
			raw:  "- [ ] write docs",
			want: plan.Line{Raw: "- [ ] write docs", Kind: plan.KindTask, StatusRaw: " ", Status: plan.StatusPlanned, Text: "write docs"},
		},
		{
			name: "nested task with invalid status",
			raw:  "  - [Done] ship",
			want: plan.Line{Raw: "  - [Done] ship", Kind: plan.KindTask, Indent: "  ", StatusRaw: "Done", Status: plan.StatusInvalid, Text: "ship"},
		},
		{
			name: "task without text",
			raw:  "- [x]",
			want: plan.Line{Raw: "- [x]", Kind: plan.KindTask, StatusRaw: "x", Status: plan.StatusDone},
		},
		{
			name: "comment",
			raw:  "  > blocked on review",
			want: plan.Line{Raw: "  > blocked on review", Kind: plan.KindComment, Indent: "  ", Text: "blocked on review"},
		},
		{
			name: "heading without space is plain",
			raw:  "#hashtag",
			want: plan.Line{Raw: "#hashtag", Kind: plan.KindPlain},
		},
		{
			name: "third level heading is plain",
			raw:  "### deeper",
			want: plan.Line{Raw: "### deeper", Kind: plan.KindPlain},
		},
		{
			name: "empty comment is plain",
			raw:  "> ",
			want: plan.Line{Raw: "> ", Kind: plan.KindPlain},
		},
		{
			name: "bullet is plain",
			raw:  "- just a bullet",
			want: plan.Line{Raw: "- just a bullet", Kind: plan.KindPlain},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := plan.Classify(0, tt.raw)
			if got != tt.want {
				t.Errorf("Classify(%q)=%+v, want=%+v", tt.raw, got, tt.want)
			}
		})
	}
}

func Test_ParseStatus_Is_Exact_When_Bracket_Text_Varies(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]plan.Status{
		" ":       plan.StatusPlanned,
		"wip":     plan.StatusInProgress,
		"x":       plan.StatusDone,
		"blocked": plan.StatusBlocked,
		"":        plan.StatusInvalid,
		"X":       plan.StatusInvalid,
		"WIP":     plan.StatusInvalid,
		" x":      plan.StatusInvalid,
		"done":    plan.StatusInvalid,
	} {
		if got := plan.ParseStatus(raw); got != want {
			t.Errorf("ParseStatus(%q)=%v, want=%v", raw, got, want)
		}
	}
}

func Test_GuessStatus_Matches_Exact_Words_When_Status_Invalid(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]string{
		"Done":         "[x]",
		"done":         "[x]",
		"Complete":     "[x]",
		" completed ":  "[x]",
		"in progress":  "[wip]",
		"Doing":        "[wip]",
		"WIP":          "[wip]",
		"waiting":      "[blocked]",
		"BLOCK":        "[blocked]",
		"todo":         "[ ]",
		"":             "[ ]",
		"xyz":          "[ ]",
		"almost done":  "[ ]",
		"in  progress": "[ ]",
	} {
		if got := plan.GuessStatus(raw).Literal(); got != want {
			t.Errorf("GuessStatus(%q)=%q, want=%q", raw, got, want)
		}
	}
}

func Test_Level_Rounds_Down_When_Indent_Is_Partial(t *testing.T) {
	t.Parallel()

	opts := plan.DefaultOptions()

	for indent, want := range map[string]int{
		"":       0,
		" ":      0,
		"  ":     1,
		"   ":    1,
		"    ":   2,
		"     ":  2,
		"      ": 3,
	} {
		if got := opts.Level(indent); got != want {
			t.Errorf("Level(%d spaces)=%d, want=%d", len(indent), got, want)
		}
	}

	four := plan.Options{SpacesPerLevel: 4}
	if got, want := four.Level("       "), 1; got != want {
		t.Errorf("Level(7 spaces, 4 per level)=%d, want=%d", got, want)
	}
}

func Test_StatusFromName_Accepts_Names_And_Literals(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]plan.Status{
		"planned":   plan.StatusPlanned,
		"[ ]":       plan.StatusPlanned,
		"WIP":       plan.StatusInProgress,
		"done":      plan.StatusDone,
		"[x]":       plan.StatusDone,
		"blocked":   plan.StatusBlocked,
		"[blocked]": plan.StatusBlocked,
	} {
		got, err := plan.StatusFromName(name)
		if err != nil {
			t.Fatalf("StatusFromName(%q): %v", name, err)
		}

		if got != want {
			t.Errorf("StatusFromName(%q)=%v, want=%v", name, got, want)
		}
	}

	if _, err := plan.StatusFromName("finished"); err == nil {
		t.Error("StatusFromName(finished) should fail")
	}
}
