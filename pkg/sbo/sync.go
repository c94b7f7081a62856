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
	"context"
	"io/ioutil"

	"github.com/Masterminds/log-go"
	"github.com/Masterminds/vcs"
	"github.com/pkg/errors"
)

// Sync brings the SlackBuilds tree at local up to date with the git
// repository at remote, cloning it the first time.
func Sync(ctx context.Context, remote, local string, logger log.Logger) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	repo, err := vcs.NewGitRepo(remote, local)
	if err != nil {
		return "", errors.Wrapf(err, "couldn't use %s as a SlackBuilds tree", local)
	}

	if repo.CheckLocal() {
		logger.Debugf("updating %s from %s", local, remote)
		if err := repo.Update(); err != nil {
			return "", errors.Wrapf(err, "couldn't update %s", local)
		}
	} else {
		if entries, err := ioutil.ReadDir(local); err == nil && len(entries) > 0 {
			return "", errors.Errorf("%s exists and is not a git checkout", local)
		}
		logger.Debugf("cloning %s into %s", remote, local)
		if err := repo.Get(); err != nil {
			return "", errors.Wrapf(err, "couldn't clone %s", remote)
		}
	}

	version, err := repo.Version()
	if err != nil {
		return "", errors.Wrap(err, "couldn't read the tree revision")
	}
	return version, nil
}
