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

package getter

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/rancher-sandbox/sbodeps/internal/version"
)

// HTTPGetter is the default HTTP(/S) backend handler
type HTTPGetter struct {
	opts options
}

// Get performs a GET request and returns the body.
func (g *HTTPGetter) Get(ctx context.Context, href string) (*bytes.Buffer, error) {
	buf := bytes.NewBuffer(nil)

	req, err := http.NewRequestWithContext(ctx, "GET", href, nil)
	if err != nil {
		return buf, err
	}

	// Set a sbodeps specific user agent so that a mirror can separate our
	// calls from other tools fetching the index.
	req.Header.Set("User-Agent", version.GetUserAgent())
	if g.opts.userAgent != "" {
		req.Header.Set("User-Agent", g.opts.userAgent)
	}

	if g.opts.username != "" && g.opts.password != "" {
		req.SetBasicAuth(g.opts.username, g.opts.password)
	}

	resp, err := g.httpClient().Do(req)
	if err != nil {
		return buf, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return buf, errors.Errorf("failed to fetch %s : %s", href, resp.Status)
	}

	_, err = io.Copy(buf, resp.Body)
	return buf, err
}

// NewHTTPGetter constructs a valid http/https client as a Getter
func NewHTTPGetter(options ...Option) (Getter, error) {
	var client HTTPGetter

	for _, opt := range options {
		opt(&client.opts)
	}

	return &client, nil
}

func (g *HTTPGetter) httpClient() *http.Client {
	transport := &http.Transport{
		DisableCompression: true,
		Proxy:              http.ProxyFromEnvironment,
	}

	if g.opts.insecureSkipVerifyTLS {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   g.opts.timeout,
	}
}

// FileGetter reads file:// URLs, for mirrors on local disk.
type FileGetter struct{}

// NewFileGetter returns a Getter for file:// URLs. Options are ignored.
func NewFileGetter(_ ...Option) (Getter, error) {
	return &FileGetter{}, nil
}

// Get reads the file at href.
func (g *FileGetter) Get(ctx context.Context, href string) (*bytes.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := url.Parse(href)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid URL %q", href)
	}
	b, err := ioutil.ReadFile(u.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", href)
	}
	return bytes.NewBuffer(b), nil
}
