/*
Copyright © 2025 the gefsplots authors.
This file is part of gefsplots.

gefsplots is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

gefsplots is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with gefsplots.  If not, see <http://www.gnu.org/licenses/>.
*/

package gefsplots

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// turboAnchors are evenly spaced samples of the turbo rainbow color
// scheme, interpolated to produce bin colors.
var turboAnchors = []color.NRGBA{
	{48, 18, 59, 255},
	{65, 69, 171, 255},
	{57, 118, 211, 255},
	{44, 168, 220, 255},
	{31, 206, 162, 255},
	{96, 229, 89, 255},
	{170, 240, 57, 255},
	{226, 220, 56, 255},
	{252, 165, 49, 255},
	{239, 90, 17, 255},
	{196, 37, 3, 255},
	{122, 4, 3, 255},
}

// A ContourMap colors values according to an ordered set of discrete
// contour levels: values below the lowest level take Under (white, so
// out-of-range-low areas drop out of the map), values at or above the
// highest level clamp to the last bin.
type ContourMap struct {
	Levels []float64
	Under  color.NRGBA

	FontSize vg.Length
	Font     string

	colors []color.NRGBA
}

// NewContourMap builds a ContourMap with len(levels)-1 bins sampled
// from the turbo color scheme. The levels must be strictly increasing
// and are used exactly as given.
func NewContourMap(levels []float64) (*ContourMap, error) {
	if len(levels) < 2 {
		return nil, fmt.Errorf("gefsplots: a contour map needs at least 2 levels; got %d", len(levels))
	}
	for i := 1; i < len(levels); i++ {
		if levels[i] <= levels[i-1] {
			return nil, fmt.Errorf("gefsplots: contour levels must be strictly increasing; %g follows %g",
				levels[i], levels[i-1])
		}
	}
	m := &ContourMap{
		Levels:   levels,
		Under:    color.NRGBA{255, 255, 255, 255},
		FontSize: 9,
		Font:     "Helvetica",
		colors:   make([]color.NRGBA, len(levels)-1),
	}
	for i := range m.colors {
		var t float64
		if len(m.colors) > 1 {
			t = float64(i) / float64(len(m.colors)-1)
		}
		m.colors[i] = sampleTurbo(t)
	}
	return m, nil
}

// GetColor returns the bin color for v.
func (m *ContourMap) GetColor(v float64) color.NRGBA {
	if v < m.Levels[0] {
		return m.Under
	}
	for i := 1; i < len(m.Levels); i++ {
		if v < m.Levels[i] {
			return m.colors[i-1]
		}
	}
	return m.colors[len(m.colors)-1]
}

// sampleTurbo linearly interpolates the anchor table at t in [0,1].
func sampleTurbo(t float64) color.NRGBA {
	if t <= 0 {
		return turboAnchors[0]
	}
	if t >= 1 {
		return turboAnchors[len(turboAnchors)-1]
	}
	pos := t * float64(len(turboAnchors)-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := turboAnchors[i], turboAnchors[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*frac + 0.5)
	}
	return color.NRGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), 255}
}

// Legend draws a horizontal color bar with one box per bin and the
// level values as tick labels, with label centered above.
func (m *ContourMap) Legend(canvas *draw.Canvas, label string) error {
	const (
		topPad     = vg.Length(2)
		labelPad   = vg.Length(2)
		tickPad    = vg.Length(1)
		wPad       = vg.Length(10)
		tickLength = vg.Length(3)
	)
	font, err := vg.MakeFont(m.Font, m.FontSize)
	if err != nil {
		return err
	}
	textStyle := draw.TextStyle{Color: color.NRGBA{0, 0, 0, 255}, Font: font}

	barLeft := canvas.Min.X + wPad
	barRight := canvas.Max.X - wPad
	barTop := canvas.Max.Y - topPad - textStyle.Height(label) - labelPad
	barBottom := canvas.Min.Y + tickPad + textStyle.Height("128") + tickPad

	// Bin boxes.
	binWidth := (barRight - barLeft) / vg.Length(len(m.colors))
	for i, binColor := range m.colors {
		x0 := barLeft + vg.Length(i)*binWidth
		canvas.FillPolygon(binColor, []vg.Point{
			{X: x0, Y: barBottom}, {X: x0 + binWidth, Y: barBottom},
			{X: x0 + binWidth, Y: barTop}, {X: x0, Y: barTop},
			{X: x0, Y: barBottom}})
	}

	// Bar edge and tick marks with level labels.
	ls := draw.LineStyle{Color: color.NRGBA{0, 0, 0, 255}, Width: 0.5}
	canvas.StrokeLines(ls, []vg.Point{
		{X: barLeft, Y: barBottom}, {X: barRight, Y: barBottom},
		{X: barRight, Y: barTop}, {X: barLeft, Y: barTop},
		{X: barLeft, Y: barBottom}})
	sty := textStyle
	sty.XAlign = -0.5
	sty.YAlign = 0
	for i, level := range m.Levels {
		tickx := barLeft + vg.Length(i)*binWidth
		canvas.StrokeLine2(ls, tickx, barBottom, tickx, barBottom-tickLength)
		canvas.FillText(sty, vg.Point{X: tickx, Y: canvas.Min.Y}, fmt.Sprintf("%g", level))
	}

	labelSty := textStyle
	labelSty.XAlign = -0.5
	labelSty.YAlign = -1
	labelX := canvas.Min.X + (canvas.Max.X-canvas.Min.X)*0.5
	canvas.FillText(labelSty, vg.Point{X: labelX, Y: canvas.Max.Y - topPad}, label)
	return nil
}
