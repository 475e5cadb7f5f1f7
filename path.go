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
	"time"
)

// Bucket is the public object store holding the GEFS-chem forecast
// products. Access is anonymous.
const Bucket = "noaa-gefs-pds"

// A ProductFamily identifies one of the fixed GEFS-chem remote-path and
// variable-set conventions.
type ProductFamily int

const (
	// EntireAtmosphere is the 0.25° column-integrated aerosol product.
	EntireAtmosphere ProductFamily = iota
	// Surface is the 0.25° surface-level aerosol concentration product.
	Surface
	// HalfDegree is the half-degree three-dimensional aerosol product
	// on hybrid model levels.
	HalfDegree
)

func (f ProductFamily) String() string {
	switch f {
	case EntireAtmosphere:
		return "atmosphere"
	case Surface:
		return "surface"
	case HalfDegree:
		return "halfdegree"
	}
	return fmt.Sprintf("ProductFamily(%d)", int(f))
}

// The per-family object key templates. These mirror the layout of the
// noaa-gefs-pds bucket and are treated as a frozen external format,
// including the a3d product living under the pgrb2ap5 prefix with an
// 0p25 file name. Substitutions are the 8-digit date and the 2-digit
// cycle (twice).
var keyTemplates = map[ProductFamily]string{
	EntireAtmosphere: "gefs.%[1]s/%[2]s/chem/pgrb2ap25/gefs.chem.t%[2]sz.a2d_0p25.f018.grib2",
	Surface:          "gefs.%[1]s/%[2]s/chem/pgrb2ap25/gefs.chem.t%[2]sz.a2d_0p25.f018.grib2",
	HalfDegree:       "gefs.%[1]s/%[2]s/chem/pgrb2ap5/gefs.chem.t%[2]sz.a3d_0p25.f018.grib2",
}

// RemoteKey returns the fully-qualified object-store path for the
// family's forecast-hour-18 GRIB2 file at the given date and cycle. It
// is a pure function of its inputs; the date must already be validated.
func (f ProductFamily) RemoteKey(date time.Time, cycle string) string {
	return fmt.Sprintf("s3://"+Bucket+"/"+keyTemplates[f],
		date.Format("20060102"), cycle)
}
