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
package cmd

import (
	"fmt"
	"io"

	"github.com/hokaccha/go-prettyjson"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/notapipeline/pwv/pkg/types"
)

// listing is an entry as printed. Passwords are never printed.
type listing struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Username string `json:"username"`
	URL      string `json:"url"`
	Comment  string `json:"comment,omitempty"`
}

func printMatches(w io.Writer, matches []types.PasswordEntry, output string) error {
	if output == types.OutputJSON {
		return printJSON(w, matches)
	}
	printTable(w, matches)
	return nil
}

// printTable writes the matches with their 1-based ids
func printTable(w io.Writer, matches []types.PasswordEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Title", "Username", "URL"})
	for i, m := range matches {
		t.AppendRow(table.Row{i + 1, m.Title, m.Username, m.URL})
	}
	t.Render()
}

func printJSON(w io.Writer, matches []types.PasswordEntry) error {
	var listings []listing = make([]listing, 0, len(matches))
	for i, m := range matches {
		listings = append(listings, listing{
			ID:       i + 1,
			Title:    m.Title,
			Username: m.Username,
			URL:      m.URL,
			Comment:  m.Comment,
		})
	}

	formatter := prettyjson.Formatter{
		DisabledColor:   true,
		Indent:          4,
		Newline:         "\n",
		StringMaxLength: 0,
	}
	b, err := formatter.Marshal(listings)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
