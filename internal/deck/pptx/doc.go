// Package pptx reads and mutates PowerPoint (.pptx) documents just enough to
// serve as a report template: slides in presentation order, shape text,
// bounding boxes, fills, and targeted text/position mutations. Parts that are
// never touched round-trip byte for byte.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/beevik/etree"

	"github.com/shaz1409/maturity-auto/internal/deck"
)

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
)

// Document is a fully in-memory .pptx archive with its slide parts parsed.
type Document struct {
	names  []string
	parts  map[string][]byte
	slides []*Slide
}

// Open loads a .pptx file from disk.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", filename, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", filename, err)
	}
	return doc, nil
}

// Parse loads a .pptx archive from memory.
func Parse(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	d := &Document{parts: make(map[string][]byte)}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening part %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", f.Name, err)
		}
		d.names = append(d.names, f.Name)
		d.parts[f.Name] = content
	}

	order, err := slideOrder(d.parts)
	if err != nil {
		return nil, err
	}
	for _, partName := range order {
		content, ok := d.parts[partName]
		if !ok {
			return nil, fmt.Errorf("slide part %s missing from archive", partName)
		}
		slide, err := parseSlide(partName, content)
		if err != nil {
			return nil, err
		}
		d.slides = append(d.slides, slide)
	}
	return d, nil
}

// Slides returns the slides in presentation order.
func (d *Document) Slides() []deck.Slide {
	out := make([]deck.Slide, len(d.slides))
	for i, s := range d.slides {
		out[i] = s
	}
	return out
}

// Save writes the document to filename. Mutated slides are re-serialized;
// every other part is copied unchanged in its original order.
func (d *Document) Save(filename string) error {
	rendered := make(map[string][]byte)
	for _, s := range d.slides {
		if !s.dirty {
			continue
		}
		content, err := s.doc.WriteToBytes()
		if err != nil {
			return fmt.Errorf("serializing %s: %w", s.path, err)
		}
		rendered[s.path] = content
	}

	out, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	zw := zip.NewWriter(out)
	for _, name := range d.names {
		content := d.parts[name]
		if b, ok := rendered[name]; ok {
			content = b
		}
		w, err := zw.Create(name)
		if err != nil {
			out.Close()
			return fmt.Errorf("writing part %s: %w", name, err)
		}
		if _, err := w.Write(content); err != nil {
			out.Close()
			return fmt.Errorf("writing part %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finalizing %s: %w", filename, err)
	}
	return out.Close()
}

// slideOrder resolves the presentation's slide id list through the package
// relationships into ordered part names.
func slideOrder(parts map[string][]byte) ([]string, error) {
	rels, err := parseRelationships(parts[presentationRels])
	if err != nil {
		return nil, err
	}

	pres := etree.NewDocument()
	if err := pres.ReadFromBytes(parts[presentationPart]); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", presentationPart, err)
	}
	ids := pres.FindElements("//p:sldIdLst/p:sldId")
	if len(ids) == 0 {
		return nil, fmt.Errorf("%s has no slide list", presentationPart)
	}

	var order []string
	for _, id := range ids {
		rid := id.SelectAttrValue("r:id", "")
		target, ok := rels[rid]
		if !ok {
			return nil, fmt.Errorf("slide relationship %q not found", rid)
		}
		if strings.HasPrefix(target, "/") {
			order = append(order, strings.TrimPrefix(target, "/"))
		} else {
			order = append(order, path.Join("ppt", target))
		}
	}
	return order, nil
}

func parseRelationships(data []byte) (map[string]string, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%s missing from archive", presentationRels)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", presentationRels, err)
	}
	rels := make(map[string]string)
	for _, rel := range doc.FindElements("//Relationship") {
		rels[rel.SelectAttrValue("Id", "")] = rel.SelectAttrValue("Target", "")
	}
	return rels, nil
}
