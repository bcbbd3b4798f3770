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

import "time"

// ClientCmd holds the values given on the command line. Zero values mean
// "not set" and leave the loaded configuration alone.
type ClientCmd struct {
	URL         string
	File        string
	CachePath   string
	MaxAge      time.Duration
	ClearAfter  time.Duration
	VerifyMagic bool
	Refresh     bool
	List        bool
	Output      string
	Debug       bool
	Quiet       bool
}
