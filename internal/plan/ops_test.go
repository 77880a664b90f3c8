package plan_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/mdplan/internal/plan"
)

var testNow = time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

func apply(t *testing.T, d *plan.Document, c plan.Change) string {
	t.Helper()

	out, err := d.Apply(c)
	require.NoError(t, err)

	return out.Text()
}

func Test_AddTask_Inserts_After_Header_When_Section_Has_Description(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		text string
		line int
		want string
	}{
		{
			name: "after description",
			text: "## Todo\n> what to do\n- [ ] a\n",
			line: 0,
			want: "## Todo\n> what to do\n- [ ] new\n- [ ] a\n",
		},
		{
			name: "directly after header",
			text: "## Todo\n- [ ] a\n",
			line: 0,
			want: "## Todo\n- [ ] new\n- [ ] a\n",
		},
		{
			name: "header is the last line without newline",
			text: "# P\n## Todo",
			line: 1,
			want: "# P\n## Todo\n- [ ] new",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := plan.NewDocument(plan.LanguageMarkdown, tt.text)

			c, err := plan.AddTask(d, tt.line, "new")
			require.NoError(t, err)

			if got := apply(t, d, c); got != tt.want {
				t.Errorf("got:\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func Test_AddTask_Fails_When_Preconditions_Not_Met(t *testing.T) {
	t.Parallel()

	d := doc("## Todo", "- [ ] a")

	if _, err := plan.AddTask(d, 1, "x"); !errors.Is(err, plan.ErrNotSectionLine) {
		t.Errorf("err=%v, want=%v", err, plan.ErrNotSectionLine)
	}

	if _, err := plan.AddTask(d, 0, "  "); !errors.Is(err, plan.ErrEmptyTaskText) {
		t.Errorf("err=%v, want=%v", err, plan.ErrEmptyTaskText)
	}

	if _, err := plan.AddTask(d, 9, "x"); !errors.Is(err, plan.ErrLineOutOfRange) {
		t.Errorf("err=%v, want=%v", err, plan.ErrLineOutOfRange)
	}
}

const moveDoc = "## A\n- [ ] one\n  - [ ] sub\n- [ ] two\n## B\n- [ ] three\n"

func Test_MoveTask_Relocates_Block_When_Moving_Down(t *testing.T) {
	t.Parallel()

	d := plan.NewDocument(plan.LanguageMarkdown, moveDoc)

	c, err := plan.MoveTask(d, 1, 4)
	require.NoError(t, err)

	want := []plan.Edit{
		plan.Delete(plan.Position{Line: 1}, plan.Position{Line: 3}),
		plan.Insert(plan.Position{Line: 3}, "- [ ] one\n  - [ ] sub\n"),
	}
	if diff := cmp.Diff(want, c.Edits); diff != "" {
		t.Errorf("edits mismatch (-want +got):\n%s", diff)
	}

	if got, want := apply(t, d, c), "## A\n- [ ] two\n## B\n- [ ] one\n  - [ ] sub\n- [ ] three\n"; got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func Test_MoveTask_Relocates_Block_When_Moving_Up(t *testing.T) {
	t.Parallel()

	d := plan.NewDocument(plan.LanguageMarkdown, moveDoc)

	c, err := plan.MoveTask(d, 5, 0)
	require.NoError(t, err)

	if got, want := apply(t, d, c), "## A\n- [ ] three\n- [ ] one\n  - [ ] sub\n- [ ] two\n## B\n"; got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func Test_MoveTask_Leaves_Document_Unchanged_When_Target_Is_Own_Position(t *testing.T) {
	t.Parallel()

	d := plan.NewDocument(plan.LanguageMarkdown, moveDoc)

	c, err := plan.MoveTask(d, 1, 0)
	require.NoError(t, err)

	if got := apply(t, d, c); got != moveDoc {
		t.Errorf("got:\n%q\nwant:\n%q", got, moveDoc)
	}
}

func Test_MoveTask_Handles_Last_Line_When_No_Trailing_Newline(t *testing.T) {
	t.Parallel()

	d := plan.NewDocument(plan.LanguageMarkdown, "## A\n## B\n- [ ] last")

	c, err := plan.MoveTask(d, 2, 0)
	require.NoError(t, err)

	if got, want := apply(t, d, c), "## A\n- [ ] last\n## B\n"; got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func Test_MoveTask_Fails_When_Source_Is_Not_A_Task(t *testing.T) {
	t.Parallel()

	d := plan.NewDocument(plan.LanguageMarkdown, moveDoc)

	if _, err := plan.MoveTask(d, 0, 4); !errors.Is(err, plan.ErrNoTaskBlock) {
		t.Errorf("err=%v, want=%v", err, plan.ErrNoTaskBlock)
	}

	if _, err := plan.MoveTask(d, 1, 2); !errors.Is(err, plan.ErrNotSectionLine) {
		t.Errorf("err=%v, want=%v", err, plan.ErrNotSectionLine)
	}
}

func Test_ChangeStatus_Replaces_Only_Bracket_When_Not_Done(t *testing.T) {
	t.Parallel()

	d := doc("## A", "  - [ ] keep  spacing ", "- [Done] fix me")

	c, err := plan.ChangeStatus(d, 1, plan.StatusInProgress, testNow, plan.DefaultOptions())
	require.NoError(t, err)

	if got, want := apply(t, d, c), "## A\n  - [wip] keep  spacing \n- [Done] fix me"; got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}

	c, err = plan.ChangeStatus(d, 2, plan.StatusBlocked, testNow, plan.DefaultOptions())
	require.NoError(t, err)

	if got, want := apply(t, d, c), "## A\n  - [ ] keep  spacing \n- [blocked] fix me"; got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}

	if _, err := plan.ChangeStatus(d, 0, plan.StatusBlocked, testNow, plan.DefaultOptions()); !errors.Is(err, plan.ErrNotTaskLine) {
		t.Errorf("err=%v, want=%v", err, plan.ErrNotTaskLine)
	}
}

func Test_ChangeStatus_Fails_When_Task_Has_No_Text_After_Bracket(t *testing.T) {
	t.Parallel()

	// Still classified as a task, but status edits need text after the bracket.
	d := doc("## A", "- [wip]", "## Done")

	if _, err := plan.ChangeStatus(d, 1, plan.StatusBlocked, testNow, plan.DefaultOptions()); !errors.Is(err, plan.ErrNotTaskLine) {
		t.Errorf("ChangeStatus err=%v, want=%v", err, plan.ErrNotTaskLine)
	}

	if _, _, err := plan.MoveToDone(d, 1, testNow, plan.DefaultOptions()); !errors.Is(err, plan.ErrNotTaskLine) {
		t.Errorf("MoveToDone err=%v, want=%v", err, plan.ErrNotTaskLine)
	}
}

func Test_ChangeStatus_Moves_To_Done_When_Marked_Done(t *testing.T) {
	t.Parallel()

	d := plan.NewDocument(plan.LanguageMarkdown, "# P\n## Todo\n- [wip] a\n  > note\n- [ ] b\n## Done\n")

	c, err := plan.ChangeStatus(d, 2, plan.StatusDone, testNow, plan.DefaultOptions())
	require.NoError(t, err)

	if got, want := len(c.Edits), 2; got != want {
		t.Fatalf("len(edits)=%d, want=%d (status change must relocate, not replace)", got, want)
	}

	want := "# P\n## Todo\n- [ ] b\n## Done\n- [x] a\n  > completed @2024-03-05\n  > note\n"
	if got := apply(t, d, c); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func Test_MoveToDone_Inserts_Below_Done_Description_When_Present(t *testing.T) {
	t.Parallel()

	d := plan.NewDocument(plan.LanguageMarkdown, "## [Done]\n> finished work\n- [x] old\n## Todo\n  - [ ] nested\n")

	c, loc, err := plan.MoveToDone(d, 4, testNow, plan.DefaultOptions())
	require.NoError(t, err)

	if diff := cmp.Diff(plan.DoneLocation{InsertLine: 2, SectionLine: 0}, loc); diff != "" {
		t.Errorf("location mismatch (-want +got):\n%s", diff)
	}

	want := "## [Done]\n> finished work\n  - [x] nested\n    > completed @2024-03-05\n- [x] old\n## Todo\n"
	if got := apply(t, d, c); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

// Without a Done section the block lands after the first section header and
// no "## Done" header is created.
func Test_MoveToDone_Does_Not_Create_Section_When_Done_Missing(t *testing.T) {
	t.Parallel()

	d := plan.NewDocument(plan.LanguageMarkdown, "## Todo\n- [ ] a\n- [ ] b\n## Later\n- [ ] c\n")

	c, loc, err := plan.MoveToDone(d, 4, testNow, plan.DefaultOptions())
	require.NoError(t, err)

	if loc.Exists() {
		t.Fatalf("location=%+v, want missing Done section", loc)
	}

	if got, want := loc.InsertLine, 1; got != want {
		t.Errorf("insert line=%d, want=%d", got, want)
	}

	want := "## Todo\n- [x] c\n  > completed @2024-03-05\n- [ ] a\n- [ ] b\n## Later\n"
	if got := apply(t, d, c); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func Test_MoveToDone_Inserts_At_Start_When_No_Sections(t *testing.T) {
	t.Parallel()

	d := plan.NewDocument(plan.LanguageMarkdown, "# P\n- [ ] a\n")

	c, loc, err := plan.MoveToDone(d, 1, testNow, plan.DefaultOptions())
	require.NoError(t, err)

	if diff := cmp.Diff(plan.DoneLocation{InsertLine: 0, SectionLine: -1}, loc); diff != "" {
		t.Errorf("location mismatch (-want +got):\n%s", diff)
	}

	if got, want := apply(t, d, c), "- [x] a\n  > completed @2024-03-05\n# P\n"; got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func Test_DeleteTask_Removes_Whole_Block(t *testing.T) {
	t.Parallel()

	d := plan.NewDocument(plan.LanguageMarkdown, moveDoc)

	c, err := plan.DeleteTask(d, 1)
	require.NoError(t, err)

	if got, want := apply(t, d, c), "## A\n- [ ] two\n## B\n- [ ] three\n"; got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}

	if _, err := plan.DeleteTask(d, 0); !errors.Is(err, plan.ErrNoTaskBlock) {
		t.Errorf("err=%v, want=%v", err, plan.ErrNoTaskBlock)
	}
}

func Test_AddTaskDetail_Inserts_Template_When_Kind_Selected(t *testing.T) {
	t.Parallel()

	opts := plan.DefaultOptions()
	opts.User = "sam"

	for _, tt := range []struct {
		kind  plan.DetailKind
		want  string
		caret plan.Position
	}{
		{plan.DetailSubtask, "## A\n- [ ] a\n  - [ ] \n- [ ] b\n", plan.Position{Line: 2, Col: 8}},
		{plan.DetailCodeBlock, "## A\n- [ ] a\n  - ```md\n    \n    ```\n- [ ] b\n", plan.Position{Line: 3, Col: 4}},
		{plan.DetailComment, "## A\n- [ ] a\n  > \n- [ ] b\n", plan.Position{Line: 2, Col: 4}},
		{plan.DetailCommentDate, "## A\n- [ ] a\n  >  @2024-03-05\n- [ ] b\n", plan.Position{Line: 2, Col: 4}},
		{plan.DetailCommentUser, "## A\n- [ ] a\n  >  @2024-03-05 - @sam\n- [ ] b\n", plan.Position{Line: 2, Col: 4}},
		{plan.DetailBullet, "## A\n- [ ] a\n  - \n- [ ] b\n", plan.Position{Line: 2, Col: 4}},
	} {
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()

			d := plan.NewDocument(plan.LanguageMarkdown, "## A\n- [ ] a\n- [ ] b\n")

			c, err := plan.AddTaskDetail(d, 1, tt.kind, testNow, opts)
			require.NoError(t, err)

			if got := apply(t, d, c); got != tt.want {
				t.Errorf("got:\n%q\nwant:\n%q", got, tt.want)
			}

			require.NotNil(t, c.Caret)

			if diff := cmp.Diff(tt.caret, *c.Caret); diff != "" {
				t.Errorf("caret mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_AddTaskDetail_Indents_One_Level_Deeper_When_Task_Nested(t *testing.T) {
	t.Parallel()

	d := plan.NewDocument(plan.LanguageMarkdown, "## A\n- [ ] a\n  - [ ] s")

	c, err := plan.AddTaskDetail(d, 2, plan.DetailComment, testNow, plan.DefaultOptions())
	require.NoError(t, err)

	if got, want := apply(t, d, c), "## A\n- [ ] a\n  - [ ] s\n    > "; got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}

	if _, err := plan.AddTaskDetail(d, 0, plan.DetailComment, testNow, plan.DefaultOptions()); !errors.Is(err, plan.ErrNotTaskLine) {
		t.Errorf("err=%v, want=%v", err, plan.ErrNotTaskLine)
	}
}
