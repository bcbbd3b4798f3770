/*
 *   Copyright 2023 Martin Proffitt <mproffitt@choclab.net>
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 */
package tools

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
)

var (
	writeClipboard func(string) error     = clipboard.WriteAll
	readClipboard  func() (string, error) = clipboard.ReadAll
	sleep          func(d time.Duration)  = time.Sleep
)

// CopyToClipboard places secret on the system clipboard. When clearAfter is
// positive it blocks for that long and then empties the clipboard, unless
// something else has been copied in the meantime.
var CopyToClipboard func(secret string, clearAfter time.Duration) error = copyToClipboard

func copyToClipboard(secret string, clearAfter time.Duration) error {
	if err := writeClipboard(secret); err != nil {
		return fmt.Errorf("unable to copy to clipboard: %w", err)
	}
	if clearAfter <= 0 {
		return nil
	}

	sleep(clearAfter)
	current, err := readClipboard()
	if err != nil {
		return fmt.Errorf("unable to read clipboard: %w", err)
	}
	if current != secret {
		return nil
	}
	return writeClipboard("")
}
