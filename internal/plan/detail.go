package plan

import (
	"fmt"
	"strings"
	"time"
)

// DetailKind selects the template inserted by [AddTaskDetail].
type DetailKind int

// Detail kinds, in the order they are offered.
const (
	DetailSubtask DetailKind = iota
	DetailCodeBlock
	DetailComment
	DetailCommentDate
	DetailCommentUser
	DetailBullet
)

// DetailKinds lists every detail kind in pick-list order.
var DetailKinds = []DetailKind{
	DetailSubtask, DetailCodeBlock, DetailComment, DetailCommentDate, DetailCommentUser, DetailBullet,
}

func (k DetailKind) String() string {
	switch k {
	case DetailSubtask:
		return "subtask"
	case DetailCodeBlock:
		return "codeblock"
	case DetailComment:
		return "comment"
	case DetailCommentDate:
		return "comment-date"
	case DetailCommentUser:
		return "comment-user"
	case DetailBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// Label is the pick-list label.
func (k DetailKind) Label() string {
	switch k {
	case DetailSubtask:
		return "Subtask"
	case DetailCodeBlock:
		return "Code Block"
	case DetailComment:
		return "Comment"
	case DetailCommentDate:
		return "Comment with Timestamp"
	case DetailCommentUser:
		return "Comment with User"
	case DetailBullet:
		return "Bullet Point"
	default:
		return "Unknown"
	}
}

// Description is the pick-list description.
func (k DetailKind) Description() string {
	switch k {
	case DetailSubtask:
		return "Add a nested checklist item"
	case DetailCodeBlock:
		return "Add a markdown code block for details"
	case DetailComment:
		return "Add a comment/note"
	case DetailCommentDate:
		return "Add a comment with today's date"
	case DetailCommentUser:
		return "Add a comment with date and username"
	case DetailBullet:
		return "Add a bullet point for context"
	default:
		return ""
	}
}

// ParseDetailKind parses a detail kind name as printed by String.
func ParseDetailKind(name string) (DetailKind, error) {
	for _, k := range DetailKinds {
		if k.String() == name {
			return k, nil
		}
	}

	// Accepted for symmetry with the "Comment with Timestamp" label.
	if name == "comment-timestamp" {
		return DetailCommentDate, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownDetail, name)
}

// DetailTemplate returns the text for a detail at indent (without the
// trailing separator) and the caret offset into that text where typing
// should continue.
func DetailTemplate(kind DetailKind, indent, eol, date, user string) (string, int, error) {
	switch kind {
	case DetailSubtask:
		text := indent + "- [ ] "

		return text, len(text), nil

	case DetailCodeBlock:
		first := indent + "- ```md"
		text := first + eol + indent + "  " + eol + indent + "  ```"

		return text, len(first) + len(eol) + len(indent) + 2, nil

	case DetailComment:
		text := indent + "> "

		return text, len(text), nil

	case DetailCommentDate:
		head := indent + "> "

		return head + " @" + date, len(head), nil

	case DetailCommentUser:
		head := indent + "> "

		return head + " @" + date + " - @" + user, len(head), nil

	case DetailBullet:
		text := indent + "- "

		return text, len(text), nil
	}

	return "", 0, fmt.Errorf("%w: %d", ErrUnknownDetail, int(kind))
}

// AddTaskDetail inserts a detail template on the line right below the task
// at taskLine, one level deeper than the task. The change's Caret is where
// typing should continue.
func AddTaskDetail(doc *Document, taskLine int, kind DetailKind, now time.Time, opts Options) (Change, error) {
	if err := checkLine(doc, taskLine); err != nil {
		return Change{}, err
	}

	m := taskOpenerPattern.FindStringSubmatch(doc.LineAt(taskLine))
	if m == nil {
		return Change{}, ErrNotTaskLine
	}

	indent := m[1] + opts.indentUnit()

	text, caret, err := DetailTemplate(kind, indent, doc.EOL(), Timestamp(now), opts.User)
	if err != nil {
		return Change{}, err
	}

	insert := taskLine + 1
	before := text[:caret]
	lineDelta := strings.Count(before, "\n")
	col := caret

	if idx := strings.LastIndexByte(before, '\n'); idx >= 0 {
		col = caret - idx - 1
	}

	return Change{
		Edits: []Edit{insertLines(doc, insert, text+doc.EOL())},
		Caret: &Position{Line: insert + lineDelta, Col: col},
	}, nil
}
