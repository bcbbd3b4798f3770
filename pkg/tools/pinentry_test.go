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
	"io"
	"strings"
)

// fakePinentry speaks the assuan side of a pinentry session. Every command
// is acknowledged with OK apart from GETPIN, which is answered with getpin.
type fakePinentry struct {
	getpin   []string
	commands []string
	pending  []string
}

func (f *fakePinentry) Start(string, []string) error {
	f.pending = append(f.pending, "OK Pleased to meet you")
	return nil
}

func (f *fakePinentry) Close() error {
	return nil
}

func (f *fakePinentry) Write(b []byte) (int, error) {
	command := strings.TrimSuffix(string(b), "\n")
	f.commands = append(f.commands, command)
	if command == "GETPIN" {
		f.pending = append(f.pending, f.getpin...)
	} else {
		f.pending = append(f.pending, "OK")
	}
	return len(b), nil
}

func (f *fakePinentry) ReadLine() ([]byte, bool, error) {
	if len(f.pending) == 0 {
		return nil, false, io.EOF
	}
	line := f.pending[0]
	f.pending = f.pending[1:]
	return []byte(line), false, nil
}
