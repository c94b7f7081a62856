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

/*Package eyecandy provides common methods to print messages with emojis
and colors.
*/
package eyecandy

import (
	"fmt"
	"regexp"

	"github.com/fatih/color"
	"github.com/kyokomi/emoji/v2"
)

var emojiCode = regexp.MustCompile(`:[a-zA-Z0-9-_+]+?:`)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
)

// ESPrintf formats like fmt.Sprintf, replacing emoji codes such as
// ":package:" with the emoji, or dropping them if emojisDisabled.
func ESPrintf(emojisDisabled bool, format string, v ...interface{}) string {
	if emojisDisabled {
		return fmt.Sprintf(removeEmojiFromString(format), v...)
	}
	return emoji.Sprintf(format, v...)
}

// ESPrint is ESPrintf without formatting.
func ESPrint(emojisDisabled bool, s string) string {
	if emojisDisabled {
		return fmt.Sprint(removeEmojiFromString(s))
	}
	return emoji.Sprint(s)
}

// Install, Upgrade and Keep color the name of a package by the action a plan
// takes on it. Colors follow color.NoColor.
func Install(s string) string { return green(s) }
func Upgrade(s string) string { return yellow(s) }
func Keep(s string) string    { return s }

// Failure colors an error headline.
func Failure(s string) string { return red(s) }

func removeEmojiFromString(s string) string {
	return emojiCode.ReplaceAllString(s, "")
}
