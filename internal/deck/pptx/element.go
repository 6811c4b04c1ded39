package pptx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/shaz1409/maturity-auto/internal/deck"
)

// element adapts one p:sp or p:cxnSp node to deck.Element.
type element struct {
	node  *etree.Element
	slide *Slide
}

// Text joins the runs of every paragraph in the shape's text frame,
// paragraphs separated by newlines. Shapes without a text frame report none.
func (e *element) Text() (string, bool) {
	body := e.node.SelectElement("p:txBody")
	if body == nil {
		return "", false
	}
	var lines []string
	for _, p := range body.SelectElements("a:p") {
		var b strings.Builder
		for _, r := range p.SelectElements("a:r") {
			if t := r.SelectElement("a:t"); t != nil {
				b.WriteString(t.Text())
			}
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n"), true
}

func (e *element) Placeholder() bool {
	for _, tag := range []string{"p:nvSpPr", "p:nvCxnSpPr"} {
		nv := e.node.SelectElement(tag)
		if nv == nil {
			continue
		}
		if pr := nv.SelectElement("p:nvPr"); pr != nil {
			return pr.SelectElement("p:ph") != nil
		}
	}
	return false
}

func (e *element) Kind() deck.ShapeKind {
	if e.node.Tag == "cxnSp" {
		return deck.ShapeLine
	}
	props := e.node.SelectElement("p:spPr")
	if props == nil {
		return deck.ShapeOther
	}
	geom := props.SelectElement("a:prstGeom")
	if geom == nil {
		return deck.ShapeOther
	}
	if lineGeometry(geom.SelectAttrValue("prst", "")) {
		return deck.ShapeLine
	}
	return deck.ShapeAuto
}

func lineGeometry(prst string) bool {
	if prst == "line" {
		return true
	}
	for _, family := range []string{"straightConnector", "bentConnector", "curvedConnector"} {
		if strings.HasPrefix(prst, family) {
			return true
		}
	}
	return false
}

// Box reads the shape's explicit transform. Placeholders inheriting geometry
// from their layout have none and report ok=false.
func (e *element) Box() (deck.Box, bool) {
	xfrm := e.transform()
	if xfrm == nil {
		return deck.Box{}, false
	}
	off := xfrm.SelectElement("a:off")
	ext := xfrm.SelectElement("a:ext")
	if off == nil || ext == nil {
		return deck.Box{}, false
	}
	left, err1 := strconv.ParseInt(off.SelectAttrValue("x", ""), 10, 64)
	top, err2 := strconv.ParseInt(off.SelectAttrValue("y", ""), 10, 64)
	width, err3 := strconv.ParseInt(ext.SelectAttrValue("cx", ""), 10, 64)
	height, err4 := strconv.ParseInt(ext.SelectAttrValue("cy", ""), 10, 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return deck.Box{}, false
	}
	return deck.Box{Left: left, Top: top, Width: width, Height: height}, true
}

// Fill reports only explicit fills; shapes inheriting fill from their style
// reference classify as FillOther.
func (e *element) Fill() (deck.FillKind, error) {
	props := e.node.SelectElement("p:spPr")
	if props == nil {
		return deck.FillNone, fmt.Errorf("shape has no properties element")
	}
	switch {
	case props.SelectElement("a:solidFill") != nil:
		return deck.FillSolid, nil
	case props.SelectElement("a:noFill") != nil:
		return deck.FillNone, nil
	default:
		return deck.FillOther, nil
	}
}

// SetText replaces the shape's entire text with the given string. Newlines
// split into paragraphs; the first existing run's properties carry over to
// every new paragraph so the template's formatting survives.
func (e *element) SetText(text string) error {
	body := e.node.SelectElement("p:txBody")
	if body == nil {
		return fmt.Errorf("shape has no text frame")
	}
	lines := strings.Split(text, "\n")

	paragraphs := body.SelectElements("a:p")
	var first *etree.Element
	if len(paragraphs) > 0 {
		first = paragraphs[0]
		for _, p := range paragraphs[1:] {
			body.RemoveChild(p)
		}
	} else {
		first = body.CreateElement("a:p")
	}

	runProps := rewriteParagraph(first, lines[0])
	paraProps := first.SelectElement("a:pPr")
	for _, line := range lines[1:] {
		appendParagraph(body, line, paraProps, runProps)
	}
	e.slide.dirty = true
	return nil
}

// rewriteParagraph reduces the paragraph to a single run holding line and
// returns that run's properties element, if any.
func rewriteParagraph(p *etree.Element, line string) *etree.Element {
	runs := p.SelectElements("a:r")
	var keep *etree.Element
	if len(runs) > 0 {
		keep = runs[0]
		for _, r := range runs[1:] {
			p.RemoveChild(r)
		}
	}
	for _, br := range p.SelectElements("a:br") {
		p.RemoveChild(br)
	}
	if keep == nil {
		keep = p.CreateElement("a:r")
	}
	t := keep.SelectElement("a:t")
	if t == nil {
		t = keep.CreateElement("a:t")
	}
	t.SetText(line)
	return keep.SelectElement("a:rPr")
}

func appendParagraph(body *etree.Element, line string, paraProps, runProps *etree.Element) {
	p := body.CreateElement("a:p")
	if paraProps != nil {
		p.AddChild(paraProps.Copy())
	}
	r := p.CreateElement("a:r")
	if runProps != nil {
		r.AddChild(runProps.Copy())
	}
	r.CreateElement("a:t").SetText(line)
}

// Move rewrites the shape's offset. Shapes without an explicit transform
// cannot be repositioned.
func (e *element) Move(left, top int64) error {
	xfrm := e.transform()
	if xfrm == nil {
		return fmt.Errorf("shape has no explicit transform")
	}
	off := xfrm.SelectElement("a:off")
	if off == nil {
		return fmt.Errorf("shape transform has no offset")
	}
	off.CreateAttr("x", strconv.FormatInt(left, 10))
	off.CreateAttr("y", strconv.FormatInt(top, 10))
	e.slide.dirty = true
	return nil
}

func (e *element) transform() *etree.Element {
	props := e.node.SelectElement("p:spPr")
	if props == nil {
		return nil
	}
	return props.SelectElement("a:xfrm")
}
