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
	"io"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/carto"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/index/rtree"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// A Renderer draws one field as a filled-contour map over a fixed
// geographic extent.
type Renderer struct {
	// Map extent in degrees. Longitudes are western-hemisphere
	// negative.
	North, South, East, West float64
	// Width of the output figure.
	Width vg.Length
	// Logger may be nil.
	Logger *logrus.Logger
}

// NewRenderer returns a Renderer with the standard extent covering the
// southern United States and northern Mexico.
func NewRenderer() *Renderer {
	return &Renderer{
		North: 50,
		South: 10,
		East:  -90,
		West:  -130,
		Width: 10 * vg.Inch,
	}
}

// Render draws v using the given contour levels, overlays the state
// boundaries in states if it is non-nil, and writes the image to out in
// the given format (png, jpg, jpeg, or tiff). v must hold exactly one
// vertical level; an unreduced level axis is a *RenderError, not a
// malformed image.
func (r *Renderer) Render(v *Variable, levels []float64, states *rtree.Rtree, out io.Writer, format string) error {
	if len(v.Fields) != 1 {
		return &RenderError{Reason: fmt.Sprintf(
			"%s has %d vertical levels %v; select one before plotting",
			v.Name, len(v.Fields), v.Levels())}
	}
	field := v.Fields[0]
	if field.Nx <= 0 || field.Ny <= 0 || len(field.Data) != field.Nx*field.Ny {
		return &RenderError{Reason: fmt.Sprintf(
			"%s has inconsistent grid dimensions %d×%d for %d values",
			v.Name, field.Nx, field.Ny, len(field.Data))}
	}
	cmap, err := NewContourMap(levels)
	if err != nil {
		return &RenderError{Reason: err.Error()}
	}

	const legendHeight = 0.5 * vg.Inch
	mapHeight := r.Width * vg.Length((r.North-r.South)/(r.East-r.West))
	img := vgimg.New(r.Width, mapHeight+legendHeight)
	dc := draw.New(img)
	mapc := draw.Crop(dc, 0, 0, legendHeight, 0)
	legendc := draw.Crop(dc, 0, 0, 0, -mapHeight)

	m := carto.NewCanvas(r.North, r.South, r.East, r.West, mapc)
	drawn := r.drawField(m, field, cmap)
	if r.Logger != nil {
		r.Logger.Infof("drew %d of %d %s grid cells inside the map extent",
			drawn, field.Nx*field.Ny, v.Name)
	}
	if states != nil {
		r.drawBorders(m, states)
	}
	if err := cmap.Legend(&legendc, v.Name); err != nil {
		return &RenderError{Reason: fmt.Sprintf("drawing legend: %v", err)}
	}

	switch format {
	case "png":
		_, err = vgimg.PngCanvas{Canvas: img}.WriteTo(out)
	case "jpg", "jpeg":
		_, err = vgimg.JpegCanvas{Canvas: img}.WriteTo(out)
	case "tiff":
		_, err = vgimg.TiffCanvas{Canvas: img}.WriteTo(out)
	default:
		return &RenderError{Reason: fmt.Sprintf("unsupported image format %q", format)}
	}
	if err != nil {
		return &RenderError{Reason: fmt.Sprintf("encoding %s: %v", format, err)}
	}
	return nil
}

// drawField fills one grid cell rectangle per data point and reports
// how many cells it drew. GEFS grids are encoded 0–360°E, so cell
// longitudes east of the anti-meridian are wrapped into the western
// hemisphere before drawing; cells outside the map extent are skipped.
func (r *Renderer) drawField(m *carto.Canvas, f *Field, cmap *ContourMap) int {
	var drawn int
	for j := 0; j < f.Ny; j++ {
		lat := f.Lat0 + float64(j)*f.DLat
		latMin, latMax := lat-f.DLat/2, lat+f.DLat/2
		if latMin > latMax {
			latMin, latMax = latMax, latMin
		}
		if latMax < r.South || latMin > r.North {
			continue
		}
		for i := 0; i < f.Nx; i++ {
			lon := f.Lon0 + float64(i)*f.DLon
			if lon > 180 {
				lon -= 360
			}
			lonMin, lonMax := lon-f.DLon/2, lon+f.DLon/2
			if lonMax < r.West || lonMin > r.East {
				continue
			}
			fill := cmap.GetColor(f.At(j, i))
			cell := geom.Polygon{{
				{X: lonMin, Y: latMin}, {X: lonMax, Y: latMin},
				{X: lonMax, Y: latMax}, {X: lonMin, Y: latMax},
				{X: lonMin, Y: latMin}}}
			m.DrawVector(cell, fill,
				draw.LineStyle{Color: fill, Width: 0.1}, draw.GlyphStyle{})
			drawn++
		}
	}
	return drawn
}

var (
	borderLineStyle = draw.LineStyle{
		Width: 0.25 * vg.Millimeter,
		Color: color.NRGBA{100, 100, 100, 255},
	}
	clearFill = color.NRGBA{0, 255, 0, 0}
)

// drawBorders overlays the political boundaries intersecting the map
// extent.
func (r *Renderer) drawBorders(m *carto.Canvas, states *rtree.Rtree) {
	b := geom.Polygon{{
		{X: r.West, Y: r.South}, {X: r.East, Y: r.South},
		{X: r.East, Y: r.North}, {X: r.West, Y: r.North},
		{X: r.West, Y: r.South}}}
	for _, g := range states.SearchIntersect(b.Bounds()) {
		gg, ok := g.(geom.Polygonal)
		if !ok {
			continue
		}
		m.DrawVector(gg.Intersection(b), clearFill, borderLineStyle, draw.GlyphStyle{})
	}
}

// LoadStates reads political boundary polygons from the shapefile at
// path into a spatial index for overlay drawing. The shapefile is
// expected to hold geographic (latitude-longitude) coordinates.
func LoadStates(path string) (*rtree.Rtree, error) {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("gefsplots: opening state boundaries: %v", err)
	}
	defer d.Close()
	index := rtree.NewTree(25, 50)
	for {
		var row struct {
			geom.Geom
		}
		if !d.DecodeRow(&row) {
			break
		}
		index.Insert(row.Geom)
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("gefsplots: reading state boundaries: %v", err)
	}
	return index, nil
}
