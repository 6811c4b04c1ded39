package pptx

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/shaz1409/maturity-auto/internal/deck"
)

// Slide wraps one slide part's XML tree. Mutating any of its elements marks
// the slide dirty so Save re-serializes it.
type Slide struct {
	path     string
	doc      *etree.Document
	dirty    bool
	elements []deck.Element
}

func parseSlide(partName string, data []byte) (*Slide, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", partName, err)
	}
	tree := doc.FindElement("//p:spTree")
	if tree == nil {
		return nil, fmt.Errorf("%s has no shape tree", partName)
	}

	s := &Slide{path: partName, doc: doc}
	for _, child := range tree.ChildElements() {
		if child.Space != "p" {
			continue
		}
		// Top-level shapes and connectors only; groups, pictures and graphic
		// frames can never hold a template role.
		switch child.Tag {
		case "sp", "cxnSp":
			s.elements = append(s.elements, &element{node: child, slide: s})
		}
	}
	return s, nil
}

// Elements returns the slide's shapes in document order.
func (s *Slide) Elements() []deck.Element { return s.elements }
