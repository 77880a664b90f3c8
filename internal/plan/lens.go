package plan

// LensKind tells what a lens anchors.
type LensKind int

// Lens kinds.
const (
	// LensAddTask sits on a section header and adds a task to it.
	LensAddTask LensKind = iota

	// LensTaskActions sits on a top-level task and offers status, move and
	// detail actions.
	LensTaskActions
)

// Lens is an actionable anchor on a line.
type Lens struct {
	Kind    LensKind
	Line    int
	Title   string
	Section string
	Status  Status
}

// Lenses returns the anchors for doc in document order: one per section and
// one per top-level task. Documents that are not MDPlan have none.
func Lenses(doc *Document, opts Options) []Lens {
	if !IsMDPlanDocument(doc) {
		return nil
	}

	var lenses []Lens

	model := Scan(doc, opts)

	for _, line := range model.Lines {
		switch line.Kind {
		case KindSection:
			lenses = append(lenses, Lens{Kind: LensAddTask, Line: line.Index, Title: "Add Task", Section: line.Text})
		case KindTask:
			if opts.Level(line.Indent) != 0 {
				continue
			}

			owner, _ := model.SectionOf(line.Index)
			lenses = append(lenses, Lens{
				Kind:    LensTaskActions,
				Line:    line.Index,
				Title:   "Status | Move | Add Details",
				Section: owner.Name,
				Status:  line.Status,
			})
		}
	}

	return lenses
}
