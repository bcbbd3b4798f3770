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
	"fmt"
	"os"

	"github.com/notapipeline/pwv/pkg/transport"
)

// Source provides the encoded vault
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// FileSource reads the vault from a local file
type FileSource struct {
	Path string
}

func (f *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to read vault: %w", err)
	}
	return b, nil
}

func (f *FileSource) String() string {
	return f.Path
}

// HTTPSource downloads the vault
type HTTPSource struct {
	URL    string
	Client transport.HttpClient
}

func NewHTTPSource(url string, client transport.HttpClient) *HTTPSource {
	if client == nil {
		client = transport.DefaultHttpClient
	}
	return &HTTPSource{
		URL:    url,
		Client: client,
	}
}

func (h *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	b, err := h.Client.Get(ctx, h.URL)
	if err != nil {
		return nil, fmt.Errorf("unable to download vault: %w", err)
	}
	return b, nil
}

func (h *HTTPSource) String() string {
	return h.URL
}
