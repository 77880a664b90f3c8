package host

import "github.com/calvinalkan/mdplan/internal/plan"

// Diagnostics turns document change notifications into published issues.
// The core stays a pure function of the text; Diagnostics is the only
// place that subscribes it to changes.
type Diagnostics struct {
	Options plan.Options

	// Publish receives the issues for a document after every change.
	// Nil discards them.
	Publish func(doc *plan.Document, issues []plan.Issue)
}

// OnDocumentChanged re-validates doc and publishes the result.
func (d *Diagnostics) OnDocumentChanged(doc *plan.Document) []plan.Issue {
	issues := plan.Diagnose(doc, d.Options)

	if d.Publish != nil {
		d.Publish(doc, issues)
	}

	return issues
}
