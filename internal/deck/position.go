package deck

import "fmt"

// scoreScale is the top of the score range; a score maps to score/scoreScale
// of the reference line's length.
const scoreScale = 4.0

// PlaceIndicator moves the indicator so its center lands on the reference
// line at the fraction of its length given by score/4. Coordinates truncate
// to the document's integral native unit. A nil line or indicator is a no-op;
// failures are returned for the caller to log, the slide stays usable either
// way.
func PlaceIndicator(line, indicator Element, score float64) error {
	if line == nil || indicator == nil {
		return nil
	}
	lineBox, ok := line.Box()
	if !ok {
		return fmt.Errorf("reference line has no bounding box")
	}
	indicatorBox, ok := indicator.Box()
	if !ok {
		return fmt.Errorf("indicator has no bounding box")
	}

	fraction := score / scoreScale
	targetX := float64(lineBox.Left) + float64(lineBox.Width)*fraction
	targetY := float64(lineBox.Top) + float64(lineBox.Height)/2

	left := int64(targetX - float64(indicatorBox.Width)/2)
	top := int64(targetY - float64(indicatorBox.Height)/2)
	if err := indicator.Move(left, top); err != nil {
		return fmt.Errorf("moving indicator to (%d, %d): %w", left, top, err)
	}
	return nil
}
