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

package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	for _, tcase := range []struct {
		name    string
		p       *Pkg
		wantErr string
	}{
		{
			name: "valid",
			p:    NewPkg("wget", "1.21", []string{"openssl-3.0"}, ""),
		},
		{
			name:    "no name",
			p:       NewPkg("  ", "1.0", nil, ""),
			wantErr: "package has no name",
		},
		{
			name:    "empty requirement",
			p:       NewPkg("wget", "1.21", []string{""}, ""),
			wantErr: `package "wget" has an empty requirement`,
		},
		{
			name: "requires itself",
			p:    NewPkg("wget", "1.21", []string{"wget"}, ""),
		},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			err := tcase.p.Validate()
			if tcase.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tcase.wantErr)
		})
	}
}

func TestNewPkgDedupsRequires(t *testing.T) {
	p := NewPkg("a", "1", []string{"b", "c", "b"}, "")
	assert.Equal(t, []string{"b", "c"}, p.Requires)
}

func TestCopyIsIndependent(t *testing.T) {
	p := NewPkgMock("a", "b")
	c := p.Copy()
	c.Requires[0] = "z"
	assert.Equal(t, "b", p.Requires[0])
}

func TestString(t *testing.T) {
	is := assert.New(t)
	is.Equal("wget-1.0", NewPkgMock("wget").String())
	is.Equal("openssl-3.0-1.0 (openssl)", NewPkgMock("openssl-3.0").WithBase("openssl").String())
}
