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
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/sbodeps/pkg/action"
	"github.com/rancher-sandbox/sbodeps/pkg/cli/output"
)

const outputFlag = "output"
const strategyFlag = "strategy"

// bindOutputFlag will add the output flag to the given command and bind the
// value to the given format pointer
func bindOutputFlag(cmd *cobra.Command, varRef *output.Format) {
	cmd.Flags().VarP(newOutputValue(output.Table, varRef), outputFlag, "o",
		fmt.Sprintf("prints the output in the specified format. Allowed values: %s", strings.Join(output.Formats(), ", ")))

	err := cmd.RegisterFlagCompletionFunc(outputFlag, completeFrom(output.Formats()))
	if err != nil {
		log.Fatal(err)
	}
}

// bindStrategyFlag will add the strategy flag to the given command and bind
// the value to the given strategy pointer. The default comes from the
// settings, falling back to the sat strategy.
func bindStrategyFlag(cmd *cobra.Command, varRef *action.Strategy) {
	def, err := action.ParseStrategy(settings.Strategy)
	if err != nil {
		def = action.SAT
	}
	cmd.Flags().VarP(newStrategyValue(def, varRef), strategyFlag, "s",
		fmt.Sprintf("resolution strategy. Allowed values: %s, or their number", strings.Join(action.Strategies(), ", ")))

	err = cmd.RegisterFlagCompletionFunc(strategyFlag, completeFrom(action.Strategies()))
	if err != nil {
		log.Fatal(err)
	}
}

func completeFrom(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, v := range values {
			if strings.HasPrefix(v, toComplete) {
				names = append(names, v)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}

type outputValue output.Format

func newOutputValue(defaultValue output.Format, p *output.Format) *outputValue {
	*p = defaultValue
	return (*outputValue)(p)
}

func (o *outputValue) String() string {
	// It is much cleaner looking (and technically less allocations) to just
	// convert to a string rather than type asserting to the underlying
	// output.Format
	return string(*o)
}

func (o *outputValue) Type() string {
	return "format"
}

func (o *outputValue) Set(s string) error {
	outfmt, err := output.ParseFormat(s)
	if err != nil {
		return err
	}
	*o = outputValue(outfmt)
	return nil
}

type strategyValue action.Strategy

func newStrategyValue(defaultValue action.Strategy, p *action.Strategy) *strategyValue {
	*p = defaultValue
	return (*strategyValue)(p)
}

func (s *strategyValue) String() string {
	return action.Strategy(*s).String()
}

func (s *strategyValue) Type() string {
	return "strategy"
}

func (s *strategyValue) Set(v string) error {
	strategy, err := action.ParseStrategy(v)
	if err != nil {
		return err
	}
	*s = strategyValue(strategy)
	return nil
}
