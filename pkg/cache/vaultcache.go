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
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// mockable clock
var now func() time.Time = time.Now

// VaultCache is the local copy of the encrypted vault.
//
// Only the encrypted, base64 encoded vault is ever written here. A copy is
// stale once its modification time is older than MaxAge.
type VaultCache struct {
	Path   string
	MaxAge time.Duration
}

func New(path string, maxAge time.Duration) *VaultCache {
	return &VaultCache{
		Path:   path,
		MaxAge: maxAge,
	}
}

// Age returns how long ago the cached vault was written
func (c *VaultCache) Age() (time.Duration, error) {
	info, err := os.Stat(c.Path)
	if err != nil {
		return 0, err
	}
	return now().Sub(info.ModTime()), nil
}

// IsStale reports whether the cached vault needs to be fetched again. A
// missing cache is stale.
func (c *VaultCache) IsStale() (bool, error) {
	age, err := c.Age()
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	return age > c.MaxAge, nil
}

// Read returns the cached vault
func (c *VaultCache) Read() ([]byte, error) {
	return os.ReadFile(c.Path)
}

// Write replaces the cached vault. The data is written to a temporary file
// in the same directory and renamed into place so a reader never sees a
// partial vault.
func (c *VaultCache) Write(data []byte) (err error) {
	var (
		dir string = filepath.Dir(c.Path)
		tmp *os.File
	)

	if err = os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if tmp, err = os.CreateTemp(dir, ".vault-*"); err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), c.Path)
}
