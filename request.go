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
	"path/filepath"
	"strings"
	"time"
)

// Defaults applied by NewRequest when the corresponding argument is
// empty.
const (
	DefaultDate   = "01-22-2025"
	DefaultCycle  = "12"
	DefaultOutput = "gefs_plot.jpg"
)

// DefaultLevels are the contour levels used when none are supplied.
var DefaultLevels = []float64{1, 2, 4, 8, 16, 32, 64, 128}

// dateFormat is the MM-DD-YYYY form accepted on the command line.
const dateFormat = "01-02-2006"

var cycles = []string{"00", "06", "12", "18"}

// A Request is one validated plotting job.
type Request struct {
	Family     ProductFamily
	Date       time.Time
	Cycle      string
	Variable   string
	Levels     []float64
	Output     string
	ModelLevel int // hybrid level, HalfDegree family only
}

// NewRequest validates and normalizes the raw arguments into a Request,
// filling in defaults for empty ones. It has no side effects; all
// failures are *InvalidArgumentError values naming the offending field.
func NewRequest(family ProductFamily, date, cycle, variable string, levels []float64, output string, modelLevel int) (*Request, error) {
	if date == "" {
		date = DefaultDate
	}
	d, err := time.Parse(dateFormat, date)
	if err != nil {
		return nil, &InvalidArgumentError{Field: "date",
			Reason: fmt.Sprintf("%q is not in MM-DD-YYYY format", date)}
	}

	if cycle == "" {
		cycle = DefaultCycle
	}
	if !validCycle(cycle) {
		return nil, &InvalidArgumentError{Field: "cycle",
			Reason: fmt.Sprintf("%q is not one of %s", cycle, strings.Join(cycles, ", "))}
	}

	if variable == "" {
		variable = family.DefaultVariable()
	}
	if _, ok := family.Variables()[variable]; !ok {
		return nil, &InvalidArgumentError{Field: "variable",
			Reason: fmt.Sprintf("%q is not a recognized %s variable", variable, family)}
	}

	if len(levels) == 0 {
		levels = DefaultLevels
	}
	for i := 1; i < len(levels); i++ {
		if levels[i] <= levels[i-1] {
			return nil, &InvalidArgumentError{Field: "levels",
				Reason: fmt.Sprintf("must be strictly increasing; %g follows %g",
					levels[i], levels[i-1])}
		}
	}

	if output == "" {
		output = DefaultOutput
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".png", ".jpg", ".jpeg", ".tiff":
	default:
		return nil, &InvalidArgumentError{Field: "output",
			Reason: fmt.Sprintf("%q does not end in a supported image extension (.png, .jpg, .jpeg, .tiff)", output)}
	}

	if family == HalfDegree && modelLevel < 1 {
		return nil, &InvalidArgumentError{Field: "model_level",
			Reason: fmt.Sprintf("%d is not a positive model level", modelLevel)}
	}

	return &Request{
		Family:     family,
		Date:       d,
		Cycle:      cycle,
		Variable:   variable,
		Levels:     levels,
		Output:     output,
		ModelLevel: modelLevel,
	}, nil
}

func validCycle(c string) bool {
	for _, v := range cycles {
		if c == v {
			return true
		}
	}
	return false
}
