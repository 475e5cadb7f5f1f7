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

// Command gefsplots is a command-line tool for plotting GEFS aerosol
// and chemistry forecasts.
package main

import (
	"fmt"
	"os"

	"github.com/bbakernoaa/gefsplots/gefsplotsutil"
)

func main() {
	if err := gefsplotsutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
