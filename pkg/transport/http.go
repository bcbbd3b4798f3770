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
	"io"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// Retry schedule for DoWithBackoff. The overall limit is set per client.
const (
	initialInterval     = 500 * time.Millisecond
	randomizationFactor = 0.1
	multiplier          = 2.0
	maxInterval         = 5 * time.Second
)

// Get downloads urlstr and returns the body
func (c *client) Get(ctx context.Context, urlstr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", urlstr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Connection", "close")
	return c.DoWithBackoff(ctx, req)
}

// DoWithBackoff sends req, retrying server errors and transport failures
// with an exponential backoff. Client errors are returned immediately.
func (c *client) DoWithBackoff(ctx context.Context, req *http.Request) ([]byte, error) {
	var body []byte
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = initialInterval
	exp.RandomizationFactor = randomizationFactor
	exp.Multiplier = multiplier
	exp.MaxInterval = maxInterval
	exp.MaxElapsedTime = c.maxElapsed

	exp.Reset()
	f := func() (err error) {
		body, err = c.Do(ctx, req)
		return
	}

	notify := func(err error, d time.Duration) {
		log.Ctx(ctx).Warn().Err(err).Dur("retry", d).Str("url", req.URL.Redacted()).Msg("request failed")
	}

	if err := backoff.RetryNotify(f, backoff.WithContext(exp, ctx), notify); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *client) Do(ctx context.Context, req *http.Request) ([]byte, error) {
	var (
		response *http.Response
		err      error
		body     []byte
	)
	if response, err = c.Client.Do(req.WithContext(ctx)); err != nil {
		return nil, err
	}

	defer response.Body.Close()
	if body, err = io.ReadAll(response.Body); err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, statusError(response.StatusCode, body)
	}
	return body, nil
}
