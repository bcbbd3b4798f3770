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
package types

import (
	"encoding/json"
)

// PasswordEntry is a single credential held in the vault.
type PasswordEntry struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Username string `json:"username"`
	Password string `json:"password"`
	Comment  string `json:"comment"`
}

// PasswordLibrary is the decrypted vault. The order of List is the order
// entries are displayed in and must not be changed.
//
// The JSON format is:
//
//	{"modified": <unix time>, "list": [{"title": "", "url": "", "username": "", "password": "", "comment": ""}]}
type PasswordLibrary struct {
	Modified uint64          `json:"modified"`
	List     []PasswordEntry `json:"list"`
}

// FromJSONBytes decodes a password library from decrypted vault data.
//
// Every key of the schema must be present. Invalid UTF-8 inside strings is
// replaced rather than rejected.
func FromJSONBytes(b []byte) (*PasswordLibrary, error) {
	var l PasswordLibrary
	if err := json.Unmarshal(b, &l); err != nil {
		return nil, LibraryDecodeError{Err: err}
	}
	return &l, nil
}

// Entries returns the entries in display order
func (l *PasswordLibrary) Entries() []PasswordEntry {
	return l.List
}

func (l *PasswordLibrary) UnmarshalJSON(b []byte) error {
	var raw struct {
		Modified *uint64          `json:"modified"`
		List     *[]PasswordEntry `json:"list"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch {
	case raw.Modified == nil:
		return MissingFieldError{Field: "modified"}
	case raw.List == nil:
		return MissingFieldError{Field: "list"}
	}

	l.Modified = *raw.Modified
	l.List = *raw.List
	return nil
}

func (e *PasswordEntry) UnmarshalJSON(b []byte) error {
	var raw struct {
		Title    *string `json:"title"`
		URL      *string `json:"url"`
		Username *string `json:"username"`
		Password *string `json:"password"`
		Comment  *string `json:"comment"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	for _, f := range []struct {
		name  string
		value *string
	}{
		{"title", raw.Title},
		{"url", raw.URL},
		{"username", raw.Username},
		{"password", raw.Password},
		{"comment", raw.Comment},
	} {
		if f.value == nil {
			return MissingFieldError{Field: f.name}
		}
	}

	*e = PasswordEntry{
		Title:    *raw.Title,
		URL:      *raw.URL,
		Username: *raw.Username,
		Password: *raw.Password,
		Comment:  *raw.Comment,
	}
	return nil
}
