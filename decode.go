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
	"io"
	"math"

	"github.com/nilsmagnus/grib/griblib"
	"github.com/sirupsen/logrus"
)

// A Filter restricts which GRIB2 messages of a file are decoded, by
// first-fixed-surface type (code table 4.5) and product definition
// template number. A nil *Filter admits every message.
type Filter struct {
	SurfaceType     uint8
	ProductTemplate uint16
}

func (flt *Filter) matches(m *griblib.Message) bool {
	if flt == nil {
		return true
	}
	if m.Section4.ProductDefinitionTemplateNumber != flt.ProductTemplate {
		return false
	}
	return uint8(m.Section4.ProductDefinitionTemplate.FirstSurface.Type) == flt.SurfaceType
}

// DecodeDataset decodes r as a GRIB2 file, keeping the messages that
// pass flt and are named in vars. key is used only for error and log
// messages. Messages matching no table entry are skipped; a duplicate
// (variable, level) pair keeps the first message seen and logs the
// rest, so the disambiguation rule is explicit rather than an accident
// of decoder ordering.
func DecodeDataset(r io.Reader, key string, vars VarTable, flt *Filter, logger *logrus.Logger) (*Dataset, error) {
	msgs, err := griblib.ReadMessages(r)
	if err != nil {
		return nil, &DecodeError{Key: key, Err: err}
	}
	return datasetFromMessages(msgs, key, vars, flt, logger)
}

func datasetFromMessages(msgs []*griblib.Message, key string, vars VarTable, flt *Filter, logger *logrus.Logger) (*Dataset, error) {
	ds := newDataset(key)
	for i, m := range msgs {
		if !flt.matches(m) {
			continue
		}
		product := m.Section4.ProductDefinitionTemplate
		name, ok := vars.lookup(m.Section0.Discipline,
			uint8(product.ParameterCategory), uint8(product.ParameterNumber))
		if !ok {
			continue
		}
		grid, ok := m.Section3.Definition.(*griblib.Grid0)
		if !ok {
			return nil, &DecodeError{Key: key, Err: fmt.Errorf(
				"message %d (%s): unsupported grid definition template %d",
				i, name, m.Section3.TemplateNumber)}
		}
		f := fieldFromGrid(name, product, grid)
		f.Data = m.Section7.Data
		if len(f.Data) != f.Nx*f.Ny {
			return nil, &DecodeError{Key: key, Err: fmt.Errorf(
				"message %d (%s): %d data points for a %d×%d grid",
				i, name, len(f.Data), f.Nx, f.Ny)}
		}
		if !ds.add(f) {
			if logger != nil {
				logger.Warnf("%s: duplicate message for %s at level %g; keeping the first",
					key, f.Name, f.Level)
			}
		}
	}
	return ds, nil
}

// fieldFromGrid builds a Field from a latitude-longitude grid
// definition. Grid coordinates are encoded in microdegrees.
func fieldFromGrid(name string, product griblib.Product0, grid *griblib.Grid0) *Field {
	const micro = 1e-6
	f := &Field{
		Name:        name,
		SurfaceType: uint8(product.FirstSurface.Type),
		Level:       surfaceValue(product.FirstSurface),
		Nx:          int(grid.Ni),
		Ny:          int(grid.Nj),
		Lat0:        float64(grid.La1) * micro,
		Lon0:        float64(grid.Lo1) * micro,
		DLat:        math.Abs(float64(grid.Dj)) * micro,
		DLon:        math.Abs(float64(grid.Di)) * micro,
	}
	// GEFS grids scan west to east, north to south.
	if int32(grid.La2) < int32(grid.La1) {
		f.DLat = -f.DLat
	}
	return f
}

// surfaceValue applies the scale factor of a fixed surface to its
// scaled value.
func surfaceValue(s griblib.Surface) float64 {
	return float64(s.Value) / math.Pow(10, float64(s.Scale))
}
