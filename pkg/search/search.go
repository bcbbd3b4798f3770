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
package search

import (
	"strings"

	"github.com/notapipeline/pwv/pkg/types"
)

// Lowercase normalises search terms ahead of Match
func Lowercase(terms []string) []string {
	lower := make([]string, len(terms))
	for i, t := range terms {
		lower[i] = toLower(t)
	}
	return lower
}

// toLower folds ASCII letters only. Other characters are compared as
// written.
func toLower(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// Match reports whether every needle is a substring of haystack, ignoring
// the case of haystack. Needles must already be lowercase. With no needles
// everything matches.
func Match(needles []string, haystack string) bool {
	var lower string = toLower(haystack)
	for _, needle := range needles {
		if !strings.Contains(lower, needle) {
			return false
		}
	}
	return true
}

// MatchEntry matches needles against the title of the entry
func MatchEntry(needles []string, entry types.PasswordEntry) bool {
	return Match(needles, entry.Title)
}

// Filter returns the entries of the library matching all needles in their
// original order.
func Filter(library *types.PasswordLibrary, needles []string) []types.PasswordEntry {
	var matches []types.PasswordEntry = make([]types.PasswordEntry, 0)
	if library == nil {
		return matches
	}

	for _, entry := range library.Entries() {
		if MatchEntry(needles, entry) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// Select returns the entry shown to the user at the given 1-based index
func Select(matches []types.PasswordEntry, index int) (types.PasswordEntry, error) {
	if index < 1 || index > len(matches) {
		return types.PasswordEntry{}, types.IndexOutOfRangeError{Index: index, Max: len(matches)}
	}
	return matches[index-1], nil
}
