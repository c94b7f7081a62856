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


package main

import (
	"io"
	"os"

	"github.com/Masterminds/log-go"
	logcli "github.com/Masterminds/log-go/impl/cli"

	"github.com/rancher-sandbox/sbodeps/pkg/cli"
	"github.com/rancher-sandbox/sbodeps/pkg/eyecandy"
)

var settings = cli.New()

// newLogger returns the logger commands report through: info level goes to
// out, the rest to stderr when out is stdout.
func newLogger(out io.Writer) log.Logger {
	diag := out
	if out == os.Stdout {
		diag = os.Stderr
	}

	logger := logcli.NewStandard()
	logger.InfoOut = out
	logger.WarnOut = diag
	logger.ErrorOut = diag
	logger.DebugOut = diag
	if settings.Debug {
		logger.Level = log.DebugLevel
	}
	return logger
}

func main() {
	cmd, logger, err := newRootCmd(os.Stdout, os.Args[1:])
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	if err := cmd.Execute(); err != nil {
		logger.Error(eyecandy.Failure(eyecandy.ESPrint(settings.NoEmojis, ":x: Error:")), " ", err)
		logger.Debugf("%+v", err)
		os.Exit(1)
	}
}
