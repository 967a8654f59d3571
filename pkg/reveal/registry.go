package reveal

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgreveal/pkg/dom"
	"github.com/matzehuels/svgreveal/pkg/observability"
)

// StyleElementID is the id of the shared style element holding keyframes.
const StyleElementID = "svg-animate-keyframes"

// Registry inserts keyframe rules into a document's shared style element and
// remembers every rule it accepted. Records are never pruned. Registrations
// through one registry are serialized.
type Registry struct {
	mu      sync.Mutex
	records []KeyframeRecord
	logger  *log.Logger
}

// NewRegistry creates an empty registry. A nil logger uses log.Default().
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{logger: logger}
}

// Register adds rec.Rule to doc. The rule goes through the style sheet when
// the host can parse it and is appended as raw text otherwise. It reports
// whether the document changed.
func (r *Registry) Register(doc *dom.Document, rec KeyframeRecord) bool {
	if doc == nil || doc.Root == nil {
		r.logger.Debug("no document for keyframes", "name", rec.Name)
		return false
	}
	if rec.Rule == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	el := styleElement(doc)
	fallback := false
	if sheet := el.Sheet(); sheet != nil {
		if _, err := sheet.InsertRule(rec.Rule, len(sheet.Rules())); err != nil {
			r.logger.Debug("insertRule rejected keyframes; appending text", "name", rec.Name, "error", err)
			fallback = true
		}
	} else {
		fallback = true
	}
	if fallback {
		el.AppendText(rec.Rule + "\n")
	}

	r.records = append(r.records, rec)

	observability.Reveal().OnKeyframesRegistered(rec.Name, fallback)
	return true
}

// Records returns the accepted records in insertion order.
func (r *Registry) Records() []KeyframeRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]KeyframeRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of accepted records.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// styleElement returns the shared style element, creating it as the first
// child of the root when absent.
func styleElement(doc *dom.Document) *dom.Element {
	if el := doc.ElementByID(StyleElementID); el != nil {
		return el
	}
	el := doc.CreateElement("style")
	el.SetAttr("id", StyleElementID)
	doc.Root.InsertChild(0, el)
	return el
}
