package field

import "image/color"

// Canvas is the drawable surface a Simulator renders into. Coordinates are in
// surface units with the origin at the top-left corner.
type Canvas interface {
	Clear()
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
	FillCircle(x, y, r float64, c color.NRGBA)
}
