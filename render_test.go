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
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// testField covers the map extent with a coarse grid encoded 0–360°E
// the way GEFS files are, so drawing exercises the anti-meridian wrap.
func testField() *Field {
	const nx, ny = 21, 21
	f := &Field{
		Name: "totAOD550",
		Nx:   nx, Ny: ny,
		Lat0: 50, Lon0: 230, // 230°E = 130°W
		DLat: -2, DLon: 2,
		Data: make([]float64, nx*ny),
	}
	for i := range f.Data {
		f.Data[i] = float64(i % 150)
	}
	return f
}

func TestRenderPNG(t *testing.T) {
	v := &Variable{Name: "totAOD550", Fields: []*Field{testField()}}
	var buf bytes.Buffer
	r := NewRenderer()
	if err := r.Render(v, []float64{1, 2, 4, 8, 16, 32, 64, 128}, nil, &buf, "png"); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("no image bytes written")
	}
	// PNG signature.
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderLogsDrawnCells(t *testing.T) {
	v := &Variable{Name: "totAOD550", Fields: []*Field{testField()}}
	var buf, log bytes.Buffer
	r := NewRenderer()
	r.Logger = logrus.New()
	r.Logger.Out = &log
	if err := r.Render(v, []float64{1, 2, 4}, nil, &buf, "png"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(log.String(), "grid cells") {
		t.Errorf("log does not report the drawn cells: %q", log.String())
	}
}

func TestRenderJpeg(t *testing.T) {
	v := &Variable{Name: "totAOD550", Fields: []*Field{testField()}}
	var buf bytes.Buffer
	if err := NewRenderer().Render(v, []float64{1, 2, 4}, nil, &buf, "jpg"); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("no image bytes written")
	}
}

func TestRenderUnreducedLevels(t *testing.T) {
	a, b := testField(), testField()
	a.Level, b.Level = 1, 2
	v := &Variable{Name: "du_pm2", Fields: []*Field{a, b}}
	var buf bytes.Buffer
	err := NewRenderer().Render(v, []float64{1, 2, 4}, nil, &buf, "png")
	if err == nil {
		t.Fatal("expected an error for an unreduced vertical axis")
	}
	if _, ok := err.(*RenderError); !ok {
		t.Errorf("got %T, want *RenderError", err)
	}
	if buf.Len() != 0 {
		t.Error("no image should be produced on failure")
	}
}

func TestRenderBadFormat(t *testing.T) {
	v := &Variable{Name: "totAOD550", Fields: []*Field{testField()}}
	var buf bytes.Buffer
	err := NewRenderer().Render(v, []float64{1, 2, 4}, nil, &buf, "gif")
	if err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
	if _, ok := err.(*RenderError); !ok {
		t.Errorf("got %T, want *RenderError", err)
	}
}

func TestRenderInconsistentGrid(t *testing.T) {
	f := testField()
	f.Data = f.Data[:len(f.Data)-1]
	v := &Variable{Name: "totAOD550", Fields: []*Field{f}}
	var buf bytes.Buffer
	err := NewRenderer().Render(v, []float64{1, 2, 4}, nil, &buf, "png")
	if err == nil {
		t.Fatal("expected an error for inconsistent grid dimensions")
	}
	if _, ok := err.(*RenderError); !ok {
		t.Errorf("got %T, want *RenderError", err)
	}
}
