/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package sbo

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/log-go"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/sbodeps/internal/pkg"
	"github.com/rancher-sandbox/sbodeps/pkg/getter"
)

const indexPrefix = "SLACKBUILD "

// ParseIndex reads a SLACKBUILDS.TXT index: stanzas separated by blank lines,
// each made of "SLACKBUILD <FIELD>: <value>" lines. Stanzas without a name
// are skipped.
func ParseIndex(in io.Reader) ([]*pkg.Pkg, error) {
	var pkgs []*pkg.Pkg
	fields := make(map[string]string)

	flush := func() error {
		defer func() { fields = make(map[string]string) }()
		if fields["NAME"] == "" {
			return nil
		}
		info := &Info{
			Name:     fields["NAME"],
			Version:  fields["VERSION"],
			Requires: cleanRequires(fields["REQUIRES"]),
		}
		p, err := info.Pkg()
		if err != nil {
			return err
		}
		pkgs = append(pkgs, p)
		return nil
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if !strings.HasPrefix(line, indexPrefix) {
			continue
		}
		kv := strings.SplitN(strings.TrimPrefix(line, indexPrefix), ":", 2)
		if len(kv) != 2 {
			continue
		}
		fields[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "couldn't read index")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return pkgs, nil
}

// RemoteIndex looks up definitions in a SLACKBUILDS.TXT index fetched once
// per process. When CacheFile is set, a successful download is saved there,
// and used instead when the index can't be fetched.
type RemoteIndex struct {
	URL       string
	CacheFile string
	Getters   getter.Providers
	Timeout   time.Duration

	logger log.Logger
	once   sync.Once
	pkgs   map[string]*pkg.Pkg
	err    error
}

// NewRemoteIndex returns a source over the index at url.
func NewRemoteIndex(url, cacheFile string, logger log.Logger) *RemoteIndex {
	if logger == nil {
		logger = log.Current
	}
	return &RemoteIndex{
		URL:       url,
		CacheFile: cacheFile,
		Getters:   getter.All(),
		Timeout:   30 * time.Second,
		logger:    logger,
	}
}

// FindDefinition returns the definition of name, or nil if the index has
// none. Failing to obtain the index is an error, returned on every call.
func (r *RemoteIndex) FindDefinition(ctx context.Context, name string) (*pkg.Pkg, error) {
	r.once.Do(func() {
		r.pkgs, r.err = r.load(ctx)
	})
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.pkgs[name]
	if !ok {
		return nil, nil
	}
	return p.Copy(), nil
}

func (r *RemoteIndex) load(ctx context.Context) (map[string]*pkg.Pkg, error) {
	raw, err := r.fetch(ctx)
	if err != nil {
		cached, cerr := ioutil.ReadFile(r.CacheFile)
		if r.CacheFile == "" || cerr != nil {
			return nil, errors.Wrapf(err, "couldn't fetch index %s", r.URL)
		}
		r.logger.Warnf("couldn't fetch index %s, using cached copy %s: %s", r.URL, r.CacheFile, err)
		raw = cached
	} else if r.CacheFile != "" {
		if err := writeCache(r.CacheFile, raw); err != nil {
			r.logger.Warnf("couldn't cache index: %s", err)
		}
	}

	pkgs, err := ParseIndex(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "malformed index %s", r.URL)
	}
	r.logger.Debugf("index %s has %d packages", r.URL, len(pkgs))

	byName := make(map[string]*pkg.Pkg, len(pkgs))
	for _, p := range pkgs {
		byName[p.Name] = p
	}
	return byName, nil
}

func (r *RemoteIndex) fetch(ctx context.Context) ([]byte, error) {
	g, err := r.Getters.ForURL(r.URL, getter.WithTimeout(r.Timeout))
	if err != nil {
		return nil, err
	}
	buf, err := g.Get(ctx, r.URL)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCache(path string, raw []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return ioutil.WriteFile(path, raw, 0644)
}
