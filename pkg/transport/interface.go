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
package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/notapipeline/pwv/pkg/types"
)

type HttpClient interface {
	Get(ctx context.Context, urlstr string) ([]byte, error)
	DoWithBackoff(ctx context.Context, req *http.Request) ([]byte, error)
}

type client struct {
	*http.Client
	maxElapsed time.Duration
}

// New creates a client whose individual requests time out after timeout
func New(timeout time.Duration) HttpClient {
	if timeout <= 0 {
		timeout = types.DefaultTimeout
	}
	return &client{
		Client:     &http.Client{Timeout: timeout},
		maxElapsed: 2 * time.Minute,
	}
}

var DefaultHttpClient HttpClient = New(types.DefaultTimeout)
