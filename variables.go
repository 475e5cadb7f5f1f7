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

// A VarSpec identifies one named field within a GEFS-chem GRIB2
// product. Parameter numbers ≥ 192 follow the NCEP local table used by
// the pgrb2a chemistry products.
type VarSpec struct {
	Description string
	Discipline  uint8
	Category    uint8
	Number      uint8
}

// A VarTable maps the variable names accepted on the command line to
// their GRIB2 identification for one product family.
type VarTable map[string]VarSpec

// Names returns the table's variable names in sorted order.
func (t VarTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookup returns the name of the variable matching the given GRIB2
// identification, if any.
func (t VarTable) lookup(discipline, category, number uint8) (string, bool) {
	for name, s := range t {
		if s.Discipline == discipline && s.Category == category && s.Number == number {
			return name, true
		}
	}
	return "", false
}

const chemCategory = 20 // atmospheric chemical constituents

func aerosol(description string, number uint8) VarSpec {
	return VarSpec{Description: description, Category: chemCategory, Number: number}
}

// entireAtmosphereVars are the column-integrated aerosol optical
// properties and mass densities of the 0.25° a2d product.
var entireAtmosphereVars = VarTable{
	"bcAOD550":        aerosol("Black Carbon Aerosol Optical Depth at 550 nm", 192),
	"bcScatAOD550":    aerosol("Black Carbon Scattering Aerosol Optical Depth at 550 nm", 193),
	"bc_pm236_colmd":  aerosol("Black Carbon Aerosol Column Mass Density at 236 nm", 194),
	"duAOD550":        aerosol("Dust Aerosol Optical Depth at 550 nm", 195),
	"duScatAOD550":    aerosol("Dust Scattering Aerosol Optical Depth at 550 nm", 196),
	"du_pm25_colmd":   aerosol("Dust Aerosol Column Mass Density", 197),
	"omAOD550":        aerosol("Organic Matter Aerosol Optical Depth at 550 nm", 198),
	"omScatAOD550":    aerosol("Organic Matter Scattering Aerosol Optical Depth at 550 nm", 199),
	"om_pm424_colmd":  aerosol("Organic Matter Aerosol Column Mass Density at 424 nm", 200),
	"so4AOD550":       aerosol("Sulfate Aerosol Optical Depth at 550 nm", 201),
	"so4ScatAOD550":   aerosol("Sulfate Scattering Aerosol Optical Depth at 550 nm", 202),
	"so4_pm25_colmd":  aerosol("Sulfate Aerosol Column Mass Density", 203),
	"ssAOD550":        aerosol("Sea Salt Aerosol Optical Depth at 550 nm", 204),
	"ssScatAOD550":    aerosol("Sea Salt Scattering Aerosol Optical Depth at 550 nm", 205),
	"ss_pm25_colmd":   aerosol("Sea Salt Aerosol Column Mass Density", 206),
	"totAOD340":       aerosol("Total Aerosol Optical Depth at 340 nm", 207),
	"totAOD440":       aerosol("Total Aerosol Optical Depth at 440 nm", 208),
	"totAOD550":       aerosol("Total Aerosol Optical Depth at 550 nm", 209),
	"totAOD645":       aerosol("Total Aerosol Optical Depth at 645 nm", 210),
	"totAOD870":       aerosol("Total Aerosol Optical Depth at 870 nm", 211),
	"totAOD1640":      aerosol("Total Aerosol Optical Depth at 1640 nm", 212),
	"totAOD11100":     aerosol("Total Aerosol Optical Depth at 11100 nm", 213),
	"totAsy340":       aerosol("Total Aerosol Asymmetry Parameter at 340 nm", 214),
	"totSSA340":       aerosol("Total Single Scattering Albedo at 340 nm", 215),
	"totScatAOD550":   aerosol("Total Scattering Aerosol Optical Depth at 550 nm", 216),
	"tot_pm10_colmd":  aerosol("Total Aerosol Column Mass Density for PM10", 217),
	"tot_pm25_colmd":  aerosol("Total Aerosol Column Mass Density for PM2.5", 218),
}

// surfaceVars are the surface concentration fields of the a2d product.
var surfaceVars = VarTable{
	"sfc_du_pm10":  aerosol("Surface Dust PM10 Concentration", 220),
	"sfc_du_pm25":  aerosol("Surface Dust PM2.5 Concentration", 221),
	"sfc_ss_pm25":  aerosol("Surface Sea Salt PM2.5 Concentration", 222),
	"sfc_tot_pm10": aerosol("Surface Total PM10 Concentration", 223),
	"sfc_tot_pm25": aerosol("Surface Total PM2.5 Concentration", 224),
}

// halfDegreeVars are the per-species aerosol mixing ratios of the
// half-degree a3d product, defined on hybrid model levels.
var halfDegreeVars = VarTable{
	"bchi_pm236": aerosol("Hydrophilic Black Carbon Aerosol, 0.236 μm", 225),
	"bcho_pm236": aerosol("Hydrophobic Black Carbon Aerosol, 0.236 μm", 226),
	"du_pm120":   aerosol("Dust Aerosol, 0.120 μm", 227),
	"du_pm2":     aerosol("Dust Aerosol, 2 μm", 228),
	"du_pm20":    aerosol("Dust Aerosol, 0.2 μm", 229),
	"du_pm36":    aerosol("Dust Aerosol, 3.6 μm", 230),
	"du_pm60":    aerosol("Dust Aerosol, 6.0 μm", 231),
	"omhi_pm424": aerosol("Hydrophilic Organic Matter Aerosol, 0.424 μm", 232),
	"omho_pm424": aerosol("Hydrophobic Organic Matter Aerosol, 0.424 μm", 233),
	"so4_pm139":  aerosol("Sulfate Aerosol, 0.139 μm", 234),
	"ss_pm10":    aerosol("Sea Salt Aerosol, 10 μm", 235),
	"ss_pm100":   aerosol("Sea Salt Aerosol, 0.1 μm", 236),
	"ss_pm2":     aerosol("Sea Salt Aerosol, 2 μm", 237),
	"ss_pm30":    aerosol("Sea Salt Aerosol, 0.3 μm", 238),
	"ss_pm6":     aerosol("Sea Salt Aerosol, 6 μm", 239),
}

// Variables returns the table of variable names the family recognizes.
func (f ProductFamily) Variables() VarTable {
	switch f {
	case Surface:
		return surfaceVars
	case HalfDegree:
		return halfDegreeVars
	}
	return entireAtmosphereVars
}

// DefaultVariable returns the variable plotted when none is requested.
func (f ProductFamily) DefaultVariable() string {
	switch f {
	case Surface:
		return "sfc_tot_pm25"
	case HalfDegree:
		return "du_pm2"
	}
	return "totAOD550"
}

// GRIB2 code table 4.5 surface types and the product definition
// templates used by the GEFS-chem files.
const (
	surfaceGround      = 1  // ground or water surface
	surfaceEntireAtmos = 10 // entire atmosphere as a single layer
	templateAerosol    = 48 // optical properties of aerosol
)

// Filter returns the metadata filter that restricts decoding to the
// family's messages, or nil if the family needs none. The a2d file
// mixes surface and entire-atmosphere fields that share parameter
// identification, so filtering on the first-fixed-surface type is what
// disambiguates them. The half-degree product instead distinguishes
// fields by their hybrid-level coordinate, selected after decoding.
func (f ProductFamily) Filter() *Filter {
	switch f {
	case Surface:
		return &Filter{SurfaceType: surfaceGround, ProductTemplate: templateAerosol}
	case HalfDegree:
		return nil
	}
	return &Filter{SurfaceType: surfaceEntireAtmos, ProductTemplate: templateAerosol}
}
