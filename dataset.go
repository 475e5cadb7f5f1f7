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

import "sort"

// A Field is one decoded GRIB2 field on a regular latitude-longitude
// grid. Data is stored row-major with Ny rows of Nx values, starting at
// (Lat0, Lon0) and advancing by (DLat, DLon); DLat is negative when the
// rows run north to south. Longitudes are as encoded in the file, which
// for GEFS means 0–360°E.
type Field struct {
	Name        string
	SurfaceType uint8
	Level       float64 // value of the first fixed surface

	Nx, Ny     int
	Lat0, Lon0 float64
	DLat, DLon float64
	Data       []float64
}

// At returns the value at row j, column i.
func (f *Field) At(j, i int) float64 {
	return f.Data[j*f.Nx+i]
}

// A Variable is all decoded fields sharing one variable name, one per
// vertical level. Single-layer products hold exactly one field.
type Variable struct {
	Name   string
	Fields []*Field
}

// Levels returns the vertical-level coordinate values present, sorted.
func (v *Variable) Levels() []float64 {
	levels := make([]float64, len(v.Fields))
	for i, f := range v.Fields {
		levels[i] = f.Level
	}
	sort.Float64s(levels)
	return levels
}

// AtLevel returns the field at exactly the given vertical-level
// coordinate value. There is no nearest-neighbor fallback.
func (v *Variable) AtLevel(level float64) (*Field, error) {
	for _, f := range v.Fields {
		if f.Level == level {
			return f, nil
		}
	}
	return nil, &LevelNotFoundError{Level: level, Available: v.Levels()}
}

// A Dataset is the read-only decoded representation of one GRIB2 file:
// a mapping from variable name to labeled fields.
type Dataset struct {
	Key    string // the remote key the file came from
	fields map[string][]*Field
}

func newDataset(key string) *Dataset {
	return &Dataset{Key: key, fields: make(map[string][]*Field)}
}

// add records a decoded field, returning false if a field with the same
// name and level is already present.
func (d *Dataset) add(f *Field) bool {
	for _, prev := range d.fields[f.Name] {
		if prev.Level == f.Level {
			return false
		}
	}
	d.fields[f.Name] = append(d.fields[f.Name], f)
	return true
}

// Variables returns the names of the variables present, sorted.
func (d *Dataset) Variables() []string {
	names := make([]string, 0, len(d.fields))
	for name := range d.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select returns the named variable. A missing name is always an
// *UnknownVariableError; there is no default.
func (d *Dataset) Select(name string) (*Variable, error) {
	fields, ok := d.fields[name]
	if !ok {
		return nil, &UnknownVariableError{Name: name, Available: d.Variables()}
	}
	return &Variable{Name: name, Fields: fields}, nil
}
