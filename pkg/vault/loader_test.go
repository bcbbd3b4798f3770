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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notapipeline/pwv/pkg/cache"
	"github.com/notapipeline/pwv/pkg/transport"
	"github.com/notapipeline/pwv/testdata"
)

func newCache(t *testing.T, contents []byte, age time.Duration) *cache.VaultCache {
	c := cache.New(filepath.Join(t.TempDir(), "passwords.txt"), 7*24*time.Hour)
	if contents != nil {
		require.NoError(t, c.Write(contents))
		then := time.Now().Add(-age)
		require.NoError(t, os.Chtimes(c.Path, then, then))
	}
	return c
}

func TestLoad(t *testing.T) {
	td := testdata.New()
	tests := []struct {
		name      string
		cached    []byte
		age       time.Duration
		force     bool
		responses []transport.MockHttpResponse
		remote    bool
		expected  []byte
		requests  int
		err       bool
	}{
		{
			name:     "fresh cache is used",
			cached:   []byte("cached"),
			age:      time.Hour,
			remote:   true,
			expected: []byte("cached"),
		},
		{
			name:   "stale cache is replaced",
			cached: []byte("cached"),
			age:    8 * 24 * time.Hour,
			remote: true,
			responses: []transport.MockHttpResponse{
				{Code: 200, Body: td.Vault},
			},
			expected: td.Vault,
			requests: 1,
		},
		{
			name:   "missing cache is fetched",
			remote: true,
			responses: []transport.MockHttpResponse{
				{Code: 503},
				{Code: 200, Body: td.Vault},
			},
			expected: td.Vault,
			requests: 1,
		},
		{
			name:   "force ignores a fresh cache",
			cached: []byte("cached"),
			age:    time.Minute,
			force:  true,
			remote: true,
			responses: []transport.MockHttpResponse{
				{Code: 200, Body: td.Vault},
			},
			expected: td.Vault,
			requests: 1,
		},
		{
			name:   "failed fetch does not fall back to a stale cache",
			cached: []byte("cached"),
			age:    30 * 24 * time.Hour,
			remote: true,
			responses: []transport.MockHttpResponse{
				{Code: 404},
			},
			expected: []byte("cached"),
			requests: 1,
			err:      true,
		},
		{
			name:     "no url and no cache",
			expected: nil,
			err:      true,
		},
		{
			name:     "no url but fresh cache",
			cached:   []byte("cached"),
			age:      time.Hour,
			expected: []byte("cached"),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := newCache(t, test.cached, test.age)
			client := &transport.MockHttpClient{Responses: test.responses}

			var remote Source
			if test.remote {
				remote = NewHTTPSource("https://example.com/passwords.txt", client)
			}

			b, err := NewLoader(c, remote, nil).Load(context.Background(), test.force)
			assert.Len(t, client.Requests, test.requests)
			if test.err {
				assert.Error(t, err)
				assert.Nil(t, b)
				if test.expected != nil {
					// the cache is left untouched
					cached, rerr := c.Read()
					require.NoError(t, rerr)
					assert.Equal(t, test.expected, cached)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, b)

			cached, err := c.Read()
			require.NoError(t, err)
			assert.Equal(t, test.expected, cached)
		})
	}
}

func TestLoadNoSource(t *testing.T) {
	_, err := NewLoader(newCache(t, nil, 0), nil, nil).Load(context.Background(), false)
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestFileSource(t *testing.T) {
	td := testdata.New()
	path := filepath.Join(t.TempDir(), "vault.txt")
	require.NoError(t, os.WriteFile(path, td.Vault, 0600))

	b, err := (&FileSource{Path: path}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, td.Vault, b)

	_, err = (&FileSource{Path: path + ".missing"}).Fetch(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSourceRefreshesCache(t *testing.T) {
	td := testdata.New()
	path := filepath.Join(t.TempDir(), "vault.txt")
	require.NoError(t, os.WriteFile(path, td.OpenSSLVault, 0600))

	c := newCache(t, nil, 0)
	b, err := NewLoader(c, &FileSource{Path: path}, nil).Load(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, td.OpenSSLVault, b)

	cached, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, td.OpenSSLVault, cached)
}
