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
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/cenkalti/backoff"
	"github.com/ctessum/requestcache"
	"github.com/google/go-cloud/blob"
	"github.com/google/go-cloud/blob/fileblob"
	"github.com/google/go-cloud/blob/s3blob"
	"github.com/sirupsen/logrus"
)

// DefaultCacheDir is where fetched files are cached between
// invocations when no other directory is configured.
const DefaultCacheDir = "/tmp/files"

// DefaultRegion is the AWS region hosting the noaa-gefs-pds bucket.
const DefaultRegion = "us-east-1"

// A Fetcher materializes remote GRIB2 objects through a disk-backed
// cache and decodes them. The zero value is not usable; use NewFetcher.
type Fetcher struct {
	// CacheDir is the local directory backing the download cache.
	CacheDir string
	// Region is the AWS region used for s3:// keys.
	Region string
	// MaxRetries bounds the retries of transient transport failures.
	MaxRetries uint64
	// Logger receives progress and warning messages. May be nil.
	Logger *logrus.Logger

	cache    *requestcache.Cache
	initOnce sync.Once
	initErr  error

	// read overrides the blob read step when non-nil. Tests use it to
	// observe the retry behavior without a remote store.
	read func(ctx context.Context, key string) ([]byte, error)
}

// NewFetcher returns a Fetcher caching into cacheDir (DefaultCacheDir
// if empty).
func NewFetcher(cacheDir string, logger *logrus.Logger) *Fetcher {
	if cacheDir == "" {
		cacheDir = DefaultCacheDir
	}
	return &Fetcher{
		CacheDir:   cacheDir,
		Region:     DefaultRegion,
		MaxRetries: 3,
		Logger:     logger,
	}
}

// Fetch opens the object at key through the cache and decodes it into a
// Dataset, applying flt if it is non-nil.
func (f *Fetcher) Fetch(ctx context.Context, key string, vars VarTable, flt *Filter) (*Dataset, error) {
	b, err := f.materialize(ctx, key)
	if err != nil {
		return nil, err
	}
	return DecodeDataset(bytes.NewReader(b), key, vars, flt, f.Logger)
}

// materialize returns the object's bytes, downloading them unless the
// on-disk cache already holds them.
func (f *Fetcher) materialize(ctx context.Context, key string) ([]byte, error) {
	f.initOnce.Do(f.init)
	if f.initErr != nil {
		return nil, f.initErr
	}
	result, err := f.cache.NewRequest(ctx, key, cacheKey(key)).Result()
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (f *Fetcher) init() {
	if err := os.MkdirAll(f.CacheDir, os.ModePerm); err != nil {
		f.initErr = fmt.Errorf("gefsplots: creating cache directory: %v", err)
		return
	}
	f.cache = requestcache.NewCache(f.download, 1,
		requestcache.Deduplicate(),
		requestcache.Memory(1),
		requestcache.Disk(f.CacheDir, marshalBytes, unmarshalBytes))
}

// download is the cache-miss processor. Transient failures are retried
// with exponential backoff; a missing object is permanent and
// propagated immediately as *RemoteNotFoundError.
func (f *Fetcher) download(ctx context.Context, request interface{}) (interface{}, error) {
	key := request.(string)
	read := f.read
	if read == nil {
		read = f.readObject
	}
	var data []byte
	op := func() error {
		b, err := read(ctx, key)
		if err != nil {
			if isNotFound(err) {
				return backoff.Permanent(&RemoteNotFoundError{Key: key})
			}
			if f.Logger != nil {
				f.Logger.Warnf("fetching %s: %v; will retry", key, err)
			}
			return err
		}
		data = b
		return nil
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), f.MaxRetries), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		if nf, ok := err.(*RemoteNotFoundError); ok {
			return nil, nf
		}
		return nil, &TransportError{Key: key, Err: err}
	}
	if f.Logger != nil {
		f.Logger.Infof("downloaded %s (%d bytes)", key, len(data))
	}
	return data, nil
}

// readObject reads one object from blob storage. s3:// keys use
// anonymous credentials; file:// keys are served from the local
// filesystem, which the tests rely on.
func (f *Fetcher) readObject(ctx context.Context, key string) ([]byte, error) {
	loc, err := url.Parse(key)
	if err != nil {
		return nil, fmt.Errorf("gefsplots: parsing remote key: %v", err)
	}
	var bucket *blob.Bucket
	var object string
	switch loc.Scheme {
	case "s3":
		s := session.Must(session.NewSession(&aws.Config{
			Region:      aws.String(f.Region),
			Credentials: credentials.AnonymousCredentials,
		}))
		bucket, err = s3blob.OpenBucket(ctx, s, loc.Host)
		object = strings.TrimPrefix(loc.Path, "/")
	case "file":
		bucket, err = fileblob.NewBucket(filepath.Dir(loc.Path))
		object = filepath.Base(loc.Path)
	default:
		return nil, fmt.Errorf("gefsplots: remote key %s: unsupported scheme %q", key, loc.Scheme)
	}
	if err != nil {
		return nil, err
	}
	r, err := bucket.NewReader(ctx, object)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ioutil.ReadAll(r)
}

// isNotFound reports whether err indicates that the object does not
// exist, as opposed to a transport failure.
func isNotFound(err error) bool {
	if os.IsNotExist(err) {
		return true
	}
	if aerr, ok := err.(awserr.RequestFailure); ok {
		return aerr.StatusCode() == 404
	}
	if aerr, ok := err.(awserr.Error); ok {
		return aerr.Code() == "NoSuchKey" || aerr.Code() == "NotFound"
	}
	return strings.Contains(err.Error(), "no such file")
}

// cacheKey flattens a remote key into a file name for the disk cache.
func cacheKey(key string) string {
	k := strings.TrimPrefix(key, "s3://")
	k = strings.TrimPrefix(k, "file://")
	return strings.Replace(strings.Trim(k, "/"), "/", "_", -1)
}

func marshalBytes(v interface{}) ([]byte, error) {
	switch d := v.(type) {
	case []byte:
		return d, nil
	case *interface{}:
		return (*d).([]byte), nil
	}
	return nil, fmt.Errorf("gefsplots: cannot marshal %T", v)
}

func unmarshalBytes(b []byte) (interface{}, error) {
	return b, nil
}
