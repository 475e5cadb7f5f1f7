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
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestExpandShp(t *testing.T) {
	got := expandShp("states.shp")
	want := []string{"states.shp", "states.dbf", "states.shx", "states.prj"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	got = expandShp("data.grib2")
	if want := []string{"data.grib2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMaybeDownloadLocal(t *testing.T) {
	f, err := ioutil.TempFile("", "gefsplots_dl")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	f.Close()
	got, err := maybeDownload(context.Background(), f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if got != f.Name() {
		t.Errorf("got %s, want %s", got, f.Name())
	}
}

func TestMaybeDownloadHTTP(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("contents of " + r.URL.Path))
	}))
	defer s.Close()

	path, err := maybeDownload(context.Background(), s.URL+"/dir/states.shp")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(filepath.Dir(path))
	if filepath.Base(path) != "states.shp" {
		t.Errorf("got %s, want a local states.shp", path)
	}
	// The shapefile siblings must come along.
	for _, name := range []string{"states.shp", "states.dbf", "states.shx", "states.prj"} {
		b, err := ioutil.ReadFile(filepath.Join(filepath.Dir(path), name))
		if err != nil {
			t.Errorf("%s was not downloaded: %v", name, err)
			continue
		}
		if want := "contents of /dir/" + name; string(b) != want {
			t.Errorf("%s: got %q, want %q", name, b, want)
		}
	}
}

func TestMaybeDownloadHTTPError(t *testing.T) {
	s := httptest.NewServer(http.NotFoundHandler())
	defer s.Close()
	if _, err := maybeDownload(context.Background(), s.URL+"/missing.shp"); err == nil {
		t.Error("expected an error for a missing remote file")
	}
}

func TestMaybeDownloadBlob(t *testing.T) {
	dir, err := ioutil.TempDir("", "gefsplots_dl")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	src := filepath.Join(dir, "borders.grib2")
	if err := ioutil.WriteFile(src, []byte("blob contents"), 0644); err != nil {
		t.Fatal(err)
	}

	path, err := maybeDownload(context.Background(), "file://"+src)
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(filepath.Dir(path))
	b, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "blob contents" {
		t.Errorf("got %q, want %q", b, "blob contents")
	}
}
