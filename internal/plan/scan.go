package plan

import "strings"

// Done section names, compared after trimming and lower-casing.
const (
	doneSectionName          = "done"
	doneSectionNameBracketed = "[done]"
)

// Section is a "## Name" heading. A section owns every line after it up to
// the next section or the end of the document.
type Section struct {
	Name string `json:"name"`
	Line int    `json:"line"`
}

// Task is a classified task line.
type Task struct {
	Line      int
	Indent    string
	Level     int
	Status    Status
	StatusRaw string
	Text      string
}

// Model is the result of a single forward scan over a document.
type Model struct {
	Lines    []Line
	Sections []Section
	Tasks    map[int]Task
}

// Scan classifies every line of doc once.
func Scan(doc *Document, opts Options) *Model {
	model := &Model{
		Lines: make([]Line, 0, doc.LineCount()),
		Tasks: make(map[int]Task),
	}

	for i := range doc.LineCount() {
		line := Classify(i, doc.LineAt(i))
		model.Lines = append(model.Lines, line)

		switch line.Kind {
		case KindSection:
			model.Sections = append(model.Sections, Section{Name: line.Text, Line: i})
		case KindTask:
			model.Tasks[i] = Task{
				Line:      i,
				Indent:    line.Indent,
				Level:     opts.Level(line.Indent),
				Status:    line.Status,
				StatusRaw: line.StatusRaw,
				Text:      line.Text,
			}
		}
	}

	return model
}

// TaskLines returns the line numbers of all tasks in document order.
func (m *Model) TaskLines() []int {
	out := make([]int, 0, len(m.Tasks))

	for _, line := range m.Lines {
		if line.Kind == KindTask {
			out = append(out, line.Index)
		}
	}

	return out
}

// SectionAt returns the section whose header is at line.
func (m *Model) SectionAt(line int) (Section, bool) {
	for _, s := range m.Sections {
		if s.Line == line {
			return s, true
		}
	}

	return Section{}, false
}

// SectionOf returns the section owning line, if any.
func (m *Model) SectionOf(line int) (Section, bool) {
	var (
		owner Section
		found bool
	)

	for _, s := range m.Sections {
		if s.Line > line {
			break
		}

		owner, found = s, true
	}

	return owner, found
}

// FindSection returns the first section whose name matches name,
// ignoring case and surrounding whitespace.
func (m *Model) FindSection(name string) (Section, bool) {
	want := strings.ToLower(strings.TrimSpace(name))

	for _, s := range m.Sections {
		if strings.ToLower(strings.TrimSpace(s.Name)) == want {
			return s, true
		}
	}

	return Section{}, false
}

// IsMDPlanDocument reports whether doc is markdown and carries the marker
// anywhere in its text.
func IsMDPlanDocument(doc *Document) bool {
	if doc.LanguageID() != LanguageMarkdown {
		return false
	}

	return strings.Contains(doc.Text(), Marker)
}

// FindSections returns all sections in document order.
func FindSections(doc *Document) []Section {
	var sections []Section

	for i := range doc.LineCount() {
		if m := sectionPattern.FindStringSubmatch(doc.LineAt(i)); m != nil {
			sections = append(sections, Section{Name: m[1], Line: i})
		}
	}

	return sections
}

// SectionInsertLine returns the line where new content for the section at
// sectionLine goes: right after the header, or after one description line
// when the header is followed by one.
func SectionInsertLine(doc *Document, sectionLine int) int {
	insert := sectionLine + 1

	if insert < doc.LineCount() && strings.HasPrefix(strings.TrimSpace(doc.LineAt(insert)), ">") {
		insert++
	}

	return insert
}

// DoneLocation is where completed tasks go.
//
// SectionLine is -1 when the document has no Done section. InsertLine then
// points after the first section header, or at line 0 without sections;
// nothing creates the missing header.
type DoneLocation struct {
	InsertLine  int
	SectionLine int
}

// Exists reports whether a Done section was found.
func (l DoneLocation) Exists() bool {
	return l.SectionLine >= 0
}

// FindDoneSection locates the Done section, matched case-insensitively as
// "done" or "[done]".
func FindDoneSection(doc *Document) DoneLocation {
	firstSection := -1

	for i := range doc.LineCount() {
		m := sectionPattern.FindStringSubmatch(doc.LineAt(i))
		if m == nil {
			continue
		}

		if firstSection == -1 {
			firstSection = i
		}

		name := strings.ToLower(strings.TrimSpace(m[1]))
		if name == doneSectionName || name == doneSectionNameBracketed {
			return DoneLocation{InsertLine: SectionInsertLine(doc, i), SectionLine: i}
		}
	}

	if firstSection != -1 {
		return DoneLocation{InsertLine: firstSection + 1, SectionLine: -1}
	}

	return DoneLocation{InsertLine: 0, SectionLine: -1}
}
