// Package deck models a slide deck as ordered slides of abstract visual
// elements, and implements the role heuristics that find and move shapes on a
// category slide. Nothing here knows about file formats; the pptx subpackage
// provides the concrete document.
package deck

// ShapeKind discriminates the element families the role heuristics care
// about. Anything that is neither a line nor an auto shape is Other.
type ShapeKind int

const (
	ShapeOther ShapeKind = iota
	ShapeLine
	ShapeAuto
)

// FillKind classifies an element's fill style.
type FillKind int

const (
	FillNone FillKind = iota
	FillSolid
	FillOther
)

// Box is an element's bounding box in the document's native unit (EMU for
// OOXML documents).
type Box struct {
	Left   int64
	Top    int64
	Width  int64
	Height int64
}

// Element is one visual element on a slide. Capability queries report absence
// through their second return: a shape without a text frame has no text, a
// shape without explicit geometry has no box. Fill may fail on exotic shapes;
// callers treat that as "not a candidate".
type Element interface {
	Text() (string, bool)
	Placeholder() bool
	Kind() ShapeKind
	Box() (Box, bool)
	Fill() (FillKind, error)

	SetText(text string) error
	Move(left, top int64) error
}

// Slide is an ordered collection of elements.
type Slide interface {
	Elements() []Element
}

// Document is a loaded template: ordered slides plus the ability to save the
// (possibly mutated) result to a new file.
type Document interface {
	Slides() []Slide
	Save(path string) error
}

// PlaceholderTexts returns the text of every placeholder element on the
// slide, in slide order. This is how category slides are recognized: callers
// match the texts against known slide titles, so a subtitle or body
// placeholder ahead of the title does not hide it. Slides without text-bearing
// placeholders return nil.
func PlaceholderTexts(s Slide) []string {
	var texts []string
	for _, el := range s.Elements() {
		if !el.Placeholder() {
			continue
		}
		if text, ok := el.Text(); ok {
			texts = append(texts, text)
		}
	}
	return texts
}
