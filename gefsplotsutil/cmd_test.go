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

package gefsplotsutil

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/bbakernoaa/gefsplots"
)

func TestOptionDefaults(t *testing.T) {
	tests := []struct {
		name string
		want interface{}
	}{
		{"date", gefsplots.DefaultDate},
		{"cycle", gefsplots.DefaultCycle},
		{"variable", ""},
		{"output", gefsplots.DefaultOutput},
		{"cache_dir", gefsplots.DefaultCacheDir},
		{"aws_region", gefsplots.DefaultRegion},
		{"model_level", 1},
		{"retries", 3},
		{"show", true},
	}
	for _, test := range tests {
		var got interface{}
		switch test.want.(type) {
		case string:
			got = Cfg.GetString(test.name)
		case int:
			got = Cfg.GetInt(test.name)
		case bool:
			got = Cfg.GetBool(test.name)
		}
		if got != test.want {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
	wantLevels := []string{"1", "2", "4", "8", "16", "32", "64", "128"}
	if got := Cfg.GetStringSlice("levels"); !reflect.DeepEqual(got, wantLevels) {
		t.Errorf("levels: got %v, want %v", got, wantLevels)
	}
}

func TestCommandTree(t *testing.T) {
	want := map[string]bool{
		"version":    false,
		"variables":  false,
		"atmosphere": false,
		"surface":    false,
		"halfdegree": false,
	}
	for _, c := range Root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %s is not registered", name)
		}
	}
}

func TestParseLevels(t *testing.T) {
	got, err := parseLevels([]string{"1", " 2.5", "10"})
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{1, 2.5, 10}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if _, err := parseLevels([]string{"1", "two"}); err == nil {
		t.Error("expected an error for a non-numeric level")
	} else if _, ok := err.(*gefsplots.InvalidArgumentError); !ok {
		t.Errorf("got %T, want *InvalidArgumentError", err)
	}
}

func plotField() *gefsplots.Field {
	const nx, ny = 9, 9
	f := &gefsplots.Field{
		Name: "totAOD550",
		Nx:   nx, Ny: ny,
		Lat0: 50, Lon0: 230,
		DLat: -5, DLon: 5,
		Data: make([]float64, nx*ny),
	}
	for i := range f.Data {
		f.Data[i] = float64(i)
	}
	return f
}

// TestSavePlot checks that a failed render leaves nothing behind at the
// output path while a successful one writes the encoded image there.
func TestSavePlot(t *testing.T) {
	dir, err := ioutil.TempDir("", "gefsplots_cmd")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	out := filepath.Join(dir, "plot.png")
	levels := []float64{1, 2, 4, 8}

	a, b := plotField(), plotField()
	a.Level, b.Level = 1, 2
	unreduced := &gefsplots.Variable{Name: "du_pm2", Fields: []*gefsplots.Field{a, b}}
	if err := savePlot(unreduced, levels, nil, out); err == nil {
		t.Fatal("expected an error for an unreduced vertical axis")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("failed render left a file at %s", out)
	}

	v := &gefsplots.Variable{Name: "totAOD550", Fields: []*gefsplots.Field{plotField()}}
	if err := savePlot(v, levels, nil, out); err != nil {
		t.Fatal(err)
	}
	img, err := ioutil.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(img, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

// TestRunValidation checks that bad arguments are rejected before any
// network access happens; none of these cases may take the time a real
// download would.
func TestRunValidation(t *testing.T) {
	tests := []struct {
		name, value, field string
	}{
		{"cycle", "99", "cycle"},
		{"date", "2025-01-22", "date"},
		{"variable", "nosuchvar", "variable"},
		{"output", "plot.gif", "output"},
	}
	for _, test := range tests {
		old := Cfg.GetString(test.name)
		Cfg.Set(test.name, test.value)
		err := run(gefsplots.EntireAtmosphere)
		Cfg.Set(test.name, old)
		if err == nil {
			t.Errorf("%s=%s: expected an error", test.name, test.value)
			continue
		}
		ierr, ok := err.(*gefsplots.InvalidArgumentError)
		if !ok {
			t.Errorf("%s=%s: got %T (%v), want *InvalidArgumentError", test.name, test.value, err, err)
			continue
		}
		if ierr.Field != test.field {
			t.Errorf("%s=%s: field = %s, want %s", test.name, test.value, ierr.Field, test.field)
		}
	}
}
