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
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/awnumar/memguard"

	"github.com/notapipeline/pwv/pkg/cache"
	"github.com/notapipeline/pwv/pkg/config"
	"github.com/notapipeline/pwv/pkg/logger"
	"github.com/notapipeline/pwv/pkg/tools"
	"github.com/notapipeline/pwv/pkg/transport"
	"github.com/notapipeline/pwv/pkg/types"
	"github.com/notapipeline/pwv/pkg/vault"
)

var ErrNoMatch = errors.New("no entries match")

// These functions are referenced as variables to enable them to
// be mocked in tests
var (
	fatal func(format string, v ...interface{}) = func(format string, v ...interface{}) {
		log.Printf(format, v...)
		memguard.SafeExit(1)
	}

	getPassword func() ([]byte, error) = func() ([]byte, error) {
		return tools.GetPassword(
			"Vault password",
			"Please enter the password for your password vault.",
			"Password:",
		)
	}

	readLine func(prompt string) ([]byte, error) = func(prompt string) ([]byte, error) {
		return tools.ReadLine(prompt)
	}

	copyToClipboard func(secret string, clearAfter time.Duration) error = func(secret string, clearAfter time.Duration) error {
		return tools.CopyToClipboard(secret, clearAfter)
	}

	newHttpClient func(timeout time.Duration) transport.HttpClient = transport.New
)

// loadConfig loads the config file and environment and merges the command
// line on top
func loadConfig() (*config.Config, error) {
	c := config.New()
	if err := c.Load(); err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}
	c.MergeClientConfig(clientCmd)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func newLogger(w io.Writer) *logger.Logger {
	return logger.New(w, clientCmd.Debug, clientCmd.Quiet)
}

func newLoader(c *config.Config, l *logger.Logger) *vault.Loader {
	var remote vault.Source
	if c.URL != "" {
		remote = vault.NewHTTPSource(c.URL, newHttpClient(c.Timeout))
	}
	return vault.NewLoader(cache.New(c.CachePath, c.MaxAge), remote, l)
}

// readVault returns the encoded vault from --file when given, otherwise from
// the cache or the configured url
func readVault(ctx context.Context, c *config.Config, l *logger.Logger) ([]byte, error) {
	if clientCmd.File != "" {
		l.Debug().Str("path", clientCmd.File).Msg("reading vault from file")
		return (&vault.FileSource{Path: clientCmd.File}).Fetch(ctx)
	}
	return newLoader(c, l).Load(ctx, clientCmd.Refresh)
}

// unlock asks for the vault password and opens the vault. The password is
// held in locked memory and destroyed once the vault has been decoded.
func unlock(encoded []byte, verifyMagic bool) (*types.PasswordLibrary, error) {
	password, err := getPassword()
	if err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	buf := memguard.NewBufferFromBytes(password)
	defer buf.Destroy()

	return vault.Open(encoded, buf.Bytes(), verifyMagic)
}
