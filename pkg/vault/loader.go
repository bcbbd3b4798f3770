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
package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/notapipeline/pwv/pkg/cache"
	"github.com/notapipeline/pwv/pkg/logger"
)

var ErrNoSource = errors.New("the cached vault is missing or stale and no vault url is configured")

// Loader returns the encoded vault from the cache while it is fresh and from
// Remote otherwise.
type Loader struct {
	Cache  *cache.VaultCache
	Remote Source
	log    *logger.Logger
}

func NewLoader(c *cache.VaultCache, remote Source, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{
		Cache:  c,
		Remote: remote,
		log:    log,
	}
}

// Load returns the encoded vault. force skips the cache.
//
// A failed fetch is returned as an error. The stale cache is never used as a
// fallback.
func (l *Loader) Load(ctx context.Context, force bool) ([]byte, error) {
	if !force {
		stale, err := l.Cache.IsStale()
		if err != nil {
			l.log.Debug().Err(err).Str("path", l.Cache.Path).Msg("unable to check cache")
		}
		if !stale {
			l.log.Debug().Str("path", l.Cache.Path).Msg("using cached vault")
			b, err := l.Cache.Read()
			if err == nil {
				return b, nil
			}
			l.log.Warn().Err(err).Str("path", l.Cache.Path).Msg("unable to read cached vault")
		}
	}
	return l.Refresh(ctx)
}

// Refresh fetches the vault from Remote and replaces the cached copy
func (l *Loader) Refresh(ctx context.Context) ([]byte, error) {
	if l.Remote == nil {
		return nil, ErrNoSource
	}

	l.log.Info().Str("source", l.Remote.String()).Msg("fetching vault")
	b, err := l.Remote.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err = l.Cache.Write(b); err != nil {
		return nil, fmt.Errorf("unable to cache vault: %w", err)
	}
	l.log.Debug().Str("path", l.Cache.Path).Int("size", len(b)).Msg("vault cached")
	return b, nil
}
