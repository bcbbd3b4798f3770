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

// Package logger wraps zerolog.Logger for the pwv command line.
//
// Output is human readable and written to stderr so it never mixes with the
// tables and JSON written to stdout. Key material, passwords and decrypted
// data must never be passed to a logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger embeds zerolog.Logger so the full zerolog API is available
type Logger struct {
	zerolog.Logger
}

// New creates a console logger writing to w.
//
// debug lowers the level to Debug, quiet disables logging entirely and takes
// precedence over debug.
func New(w io.Writer, debug, quiet bool) *Logger {
	if w == nil {
		w = os.Stderr
	}

	var level zerolog.Level = zerolog.InfoLevel
	switch {
	case quiet:
		level = zerolog.Disabled
	case debug:
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}).Level(level).With().Timestamp().Logger()

	return &Logger{logger}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}
