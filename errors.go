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
	"strings"
)

// InvalidArgumentError is returned when a user-supplied argument fails
// validation. Field names the offending argument.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("gefsplots: invalid argument %s: %s", e.Field, e.Reason)
}

// RemoteNotFoundError is returned when the requested object does not
// exist in the remote store. It is never retried.
type RemoteNotFoundError struct {
	Key string
}

func (e *RemoteNotFoundError) Error() string {
	return fmt.Sprintf("gefsplots: remote object not found: %s", e.Key)
}

// TransportError is returned when fetching the remote object fails for
// reasons other than the object being absent, after retries have been
// exhausted.
type TransportError struct {
	Key string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gefsplots: transport failure fetching %s: %v", e.Key, e.Err)
}

// DecodeError is returned when the fetched bytes cannot be decoded as
// the expected GRIB2 structure.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gefsplots: decoding %s: %v", e.Key, e.Err)
}

// UnknownVariableError is returned when the requested variable is not
// present in a decoded dataset.
type UnknownVariableError struct {
	Name      string
	Available []string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("gefsplots: unknown variable %q; dataset contains [%s]",
		e.Name, strings.Join(e.Available, " "))
}

// LevelNotFoundError is returned when no vertical level exactly matches
// the requested one. There is no nearest-neighbor fallback; the
// available levels are listed so the caller can choose one.
type LevelNotFoundError struct {
	Level     float64
	Available []float64
}

func (e *LevelNotFoundError) Error() string {
	return fmt.Sprintf("gefsplots: level %g not found; available levels are %v",
		e.Level, e.Available)
}

// RenderError is returned when an array cannot be drawn, for example
// because it still carries an unselected vertical-level axis.
type RenderError struct {
	Reason string
}

func (e *RenderError) Error() string {
	return "gefsplots: render: " + e.Reason
}
