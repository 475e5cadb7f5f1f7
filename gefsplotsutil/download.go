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
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cloud/blob/fileblob"
)

// maybeDownload checks if path is an existing local file and returns it
// unchanged if so. Otherwise, if it is an http(s) or file:// URL, the
// file is downloaded and the local copy's path is returned. For
// shapefiles, the associated .dbf, .shx, and .prj files are downloaded
// alongside.
func maybeDownload(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return path, nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return downloadHTTP(path)
	}
	if strings.HasPrefix(path, "file://") {
		return downloadBlob(ctx, path)
	}
	return path, nil
}

// downloadHTTP downloads a file (and, for shapefiles, its sibling
// files) to a temporary directory and returns the local path.
func downloadHTTP(path string) (string, error) {
	dir, err := ioutil.TempDir("", "gefsplots")
	if err != nil {
		return "", fmt.Errorf("gefsplots: creating temporary download directory: %v", err)
	}
	fnames := expandShp(path)
	for _, fname := range fnames {
		w, err := os.Create(filepath.Join(dir, filepath.Base(fname)))
		if err != nil {
			return "", fmt.Errorf("gefsplots: creating file for download: %v", err)
		}
		resp, err := http.Get(fname)
		if err != nil {
			w.Close()
			return "", fmt.Errorf("gefsplots: downloading %s: %v", fname, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			w.Close()
			return "", fmt.Errorf("gefsplots: downloading %s: %s", fname, resp.Status)
		}
		if _, err := io.Copy(w, resp.Body); err != nil {
			resp.Body.Close()
			w.Close()
			return "", fmt.Errorf("gefsplots: downloading %s: %v", fname, err)
		}
		resp.Body.Close()
		if err := w.Close(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, filepath.Base(fnames[0])), nil
}

// downloadBlob downloads the specified file from blob storage.
func downloadBlob(ctx context.Context, path string) (string, error) {
	loc, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	dir, err := ioutil.TempDir("", "gefsplots")
	if err != nil {
		return "", fmt.Errorf("gefsplots: creating temporary download directory: %v", err)
	}
	for _, fname := range expandShp(loc.Path) {
		bucket, err := fileblob.NewBucket(filepath.Dir(fname))
		if err != nil {
			return "", err
		}
		r, err := bucket.NewReader(ctx, filepath.Base(fname))
		if err != nil {
			return "", fmt.Errorf("gefsplots: downloading %s: %v", fname, err)
		}
		w, err := os.Create(filepath.Join(dir, filepath.Base(fname)))
		if err != nil {
			r.Close()
			return "", err
		}
		if _, err := io.Copy(w, r); err != nil {
			r.Close()
			w.Close()
			return "", err
		}
		r.Close()
		if err := w.Close(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, filepath.Base(loc.Path)), nil
}

// expandShp returns the given file plus associated [.dbf, .shx, .prj]
// files if it has the .shp extension, and the given file alone
// otherwise.
func expandShp(filename string) []string {
	o := []string{filename}
	if filepath.Ext(filename) != ".shp" {
		return o
	}
	for _, newExt := range []string{".dbf", ".shx", ".prj"} {
		o = append(o, filename[0:len(filename)-4]+newExt)
	}
	return o
}
