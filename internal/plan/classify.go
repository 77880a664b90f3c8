package plan

import (
	"regexp"
	"strings"
)

var (
	titlePattern   = regexp.MustCompile(`^#\s+`)
	sectionPattern = regexp.MustCompile(`^##\s+(.+)`)
	taskPattern    = regexp.MustCompile(`^(\s*)-\s+\[([^\]]*)\]\s*(.*)`)
	commentPattern = regexp.MustCompile(`^(\s*)>\s+(.+)`)

	// taskOpenerPattern is the looser test used for block boundaries: a
	// dash and an opening bracket are enough to start a task.
	taskOpenerPattern = regexp.MustCompile(`^(\s*)-\s+\[`)

	// statusLinePattern splits a task line around its bracket so the
	// status can be swapped without touching the rest. Unlike taskPattern
	// it needs whitespace after the bracket.
	statusLinePattern = regexp.MustCompile(`^(\s*-\s+)\[([^\]]*)\](\s+.*)$`)

	leadingSpacePattern = regexp.MustCompile(`^(\s*)`)
)

// Marker is the token that turns a markdown file into an MDPlan document.
const Marker = "<!-- mdplan -->"

// Kind classifies a line.
type Kind int

// Line kinds.
const (
	KindPlain Kind = iota
	KindTitle
	KindSection
	KindTask
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindSection:
		return "section"
	case KindTask:
		return "task"
	case KindComment:
		return "comment"
	default:
		return "plain"
	}
}

// Line is a classified line. Which fields are set depends on Kind:
//   - KindSection: Text is the section name
//   - KindTask: Indent, StatusRaw, Status and Text
//   - KindComment: Indent and Text
type Line struct {
	Index     int
	Raw       string
	Kind      Kind
	Indent    string
	StatusRaw string
	Status    Status
	Text      string
}

// Classify classifies a single line. It is total: anything that is not a
// title, section, task or comment is plain.
func Classify(index int, raw string) Line {
	line := Line{Index: index, Raw: raw}

	switch {
	case titlePattern.MatchString(raw):
		line.Kind = KindTitle
	case sectionPattern.MatchString(raw):
		m := sectionPattern.FindStringSubmatch(raw)
		line.Kind = KindSection
		line.Text = m[1]
	case taskPattern.MatchString(raw):
		m := taskPattern.FindStringSubmatch(raw)
		line.Kind = KindTask
		line.Indent = m[1]
		line.StatusRaw = m[2]
		line.Status = ParseStatus(m[2])
		line.Text = m[3]
	case commentPattern.MatchString(raw):
		m := commentPattern.FindStringSubmatch(raw)
		line.Kind = KindComment
		line.Indent = m[1]
		line.Text = m[2]
	default:
		line.Kind = KindPlain
	}

	return line
}

// IsTitle reports whether raw is a "# Title" heading.
func IsTitle(raw string) bool {
	return titlePattern.MatchString(raw)
}

// isBlank reports whether a line has no visible content.
func isBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}

// leadingSpace returns the length of raw's leading whitespace.
func leadingSpace(raw string) int {
	return len(leadingSpacePattern.FindString(raw))
}
