package deck

import (
	"math"
	"strings"
)

const (
	scoreMarker          = "Your score"
	recommendationMarker = "Recommendation 1"

	// An indicator candidate's width and height may differ by at most 20% of
	// the larger dimension.
	nearSquareTolerance = 0.2
)

// Bundle holds the role elements of one category slide. Any role the
// heuristics could not find is nil; callers skip the corresponding mutation.
// A Bundle is resolved fresh for every slide and never reused.
type Bundle struct {
	ScoreLabel           Element
	RecommendationsLabel Element
	ReferenceLine        Element
	Indicator            Element
}

// Resolve classifies a slide's elements into their roles. The score and
// recommendations labels are the first elements containing their marker
// text. The reference line is the line-kind element with the largest extent
// along its primary axis. The indicator is the solid-filled near-square auto
// shape whose vertical center sits closest to the line's; without a line the
// first candidate wins.
func Resolve(elements []Element) Bundle {
	var b Bundle
	for _, el := range elements {
		text, ok := el.Text()
		if !ok {
			continue
		}
		if b.ScoreLabel == nil && strings.Contains(text, scoreMarker) {
			b.ScoreLabel = el
		}
		if b.RecommendationsLabel == nil && strings.Contains(text, recommendationMarker) {
			b.RecommendationsLabel = el
		}
	}
	b.ReferenceLine = longestLine(elements)
	b.Indicator = pickIndicator(elements, b.ReferenceLine)
	return b
}

func longestLine(elements []Element) Element {
	var best Element
	bestExtent := int64(-1)
	for _, el := range elements {
		if el.Kind() != ShapeLine {
			continue
		}
		box, ok := el.Box()
		if !ok {
			continue
		}
		extent := box.Width
		if box.Height > extent {
			extent = box.Height
		}
		if extent > bestExtent {
			best, bestExtent = el, extent
		}
	}
	return best
}

func pickIndicator(elements []Element, line Element) Element {
	lineCenter, haveLine := verticalCenter(line)

	var best Element
	bestDist := int64(math.MaxInt64)
	for _, el := range elements {
		if el.Kind() != ShapeAuto {
			continue
		}
		box, ok := el.Box()
		if !ok || !nearSquare(box) {
			continue
		}
		fill, err := el.Fill()
		if err != nil || fill != FillSolid {
			continue
		}
		if !haveLine {
			return el
		}
		dist := box.Top + box.Height/2 - lineCenter
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			best, bestDist = el, dist
		}
	}
	return best
}

func verticalCenter(el Element) (int64, bool) {
	if el == nil {
		return 0, false
	}
	box, ok := el.Box()
	if !ok {
		return 0, false
	}
	return box.Top + box.Height/2, true
}

func nearSquare(box Box) bool {
	longer := box.Width
	if box.Height > longer {
		longer = box.Height
	}
	if longer <= 0 {
		return false
	}
	diff := box.Width - box.Height
	if diff < 0 {
		diff = -diff
	}
	return float64(diff)/float64(longer) < nearSquareTolerance
}
