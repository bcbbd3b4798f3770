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
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v2"

	"github.com/notapipeline/pwv/pkg/types"
)

// These functions are referenced as variables to enable them to
// be mocked in tests
var (
	ConfigPath func() (string, error) = getConfigPath
	cacheDir   func() (string, error) = os.UserCacheDir
)

type Config struct {
	URL         string        `yaml:"url" env:"PWV_URL"`
	CachePath   string        `yaml:"cache" env:"PWV_CACHE"`
	MaxAge      time.Duration `yaml:"maxage" env:"PWV_MAXAGE"`
	Timeout     time.Duration `yaml:"timeout" env:"PWV_TIMEOUT"`
	VerifyMagic bool          `yaml:"verifymagic" env:"PWV_VERIFYMAGIC"`
	ClearAfter  time.Duration `yaml:"clearafter" env:"PWV_CLEARAFTER"`
}

// New creates a config populated with defaults
func New() *Config {
	return &Config{
		MaxAge:  types.DefaultMaxAge,
		Timeout: types.DefaultTimeout,
	}
}

// Load the config file from user local config directory
//
// The config file will be loaded from ~/.config/pwv/config.yaml if it exists
// and then the environment will be checked for overrides.
//
// Users are expected to call `MergeClientConfig` afterwards to override the
// config with command line options.
func (c *Config) Load() (err error) {
	if err = c.loadYaml(); err != nil {
		return
	}
	if err = c.loadEnv(); err != nil {
		return
	}

	if c.CachePath == "" {
		var dir string
		if dir, err = cacheDir(); err != nil {
			return fmt.Errorf("unable to find cache directory: %w", err)
		}
		c.CachePath = filepath.Join(dir, "pwv", "passwords.txt")
	}
	return
}

func (c *Config) loadYaml() (err error) {
	var (
		cp       string
		yamlFile []byte
	)

	if cp, err = ConfigPath(); err != nil {
		return err
	}
	if _, err = os.Stat(cp); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if yamlFile, err = os.ReadFile(cp); err != nil {
		return err
	}

	return yaml.Unmarshal(yamlFile, c)
}

func (c *Config) loadEnv() (err error) {
	return env.Parse(c)
}

func (c *Config) MergeClientConfig(cmd types.ClientCmd) {
	if cmd.URL != "" {
		c.URL = cmd.URL
	}
	if cmd.CachePath != "" {
		c.CachePath = cmd.CachePath
	}
	if cmd.MaxAge != 0 {
		c.MaxAge = cmd.MaxAge
	}
	if cmd.ClearAfter != 0 {
		c.ClearAfter = cmd.ClearAfter
	}
	if cmd.VerifyMagic {
		c.VerifyMagic = cmd.VerifyMagic
	}
}

// Validate checks the merged configuration is usable
func (c *Config) Validate() error {
	switch {
	case c.CachePath == "":
		return fmt.Errorf("no cache path configured")
	case c.MaxAge < 0:
		return fmt.Errorf("maxage must not be negative: %s", c.MaxAge)
	case c.Timeout < 0:
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	case c.ClearAfter < 0:
		return fmt.Errorf("clearafter must not be negative: %s", c.ClearAfter)
	}
	return nil
}

func (c *Config) Save() (err error) {
	var data []byte
	if data, err = yaml.Marshal(c); err != nil {
		return err
	}

	var cp string
	if cp, err = ConfigPath(); err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(cp), 0700); err != nil {
		return err
	}
	return os.WriteFile(cp, data, 0600)
}

func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to find home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pwv", "config.yaml"), nil
}
