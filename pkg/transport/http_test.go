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
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testClient(srv *httptest.Server) *client {
	return &client{
		Client:     srv.Client(),
		maxElapsed: 3 * time.Second,
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		codes    []int
		expected []byte
		err      error
		calls    int32
	}{
		{
			name:     "ok",
			codes:    []int{200},
			expected: []byte("vault"),
			calls:    1,
		},
		{
			name:  "not found is permanent",
			codes: []int{404},
			err:   &ErrNotFound{},
			calls: 1,
		},
		{
			name:  "unauthorized is permanent",
			codes: []int{401},
			err:   &ErrUnauthorized{},
			calls: 1,
		},
		{
			name:  "teapot is permanent",
			codes: []int{418},
			err:   &ErrStatusCode{},
			calls: 1,
		},
		{
			name:     "server error is retried",
			codes:    []int{500, 503, 200},
			expected: []byte("vault"),
			calls:    3,
		},
		{
			name:     "too many requests is retried",
			codes:    []int{429, 200},
			expected: []byte("vault"),
			calls:    2,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := calls.Add(1)
				code := test.codes[min(int(n), len(test.codes))-1]
				w.WriteHeader(code)
				if code == 200 {
					_, _ = w.Write([]byte("vault"))
				}
			}))
			defer srv.Close()

			body, err := testClient(srv).Get(context.Background(), srv.URL)
			assert.Equal(t, test.calls, calls.Load())
			if test.err != nil {
				assert.IsType(t, test.err, err)
				assert.Nil(t, body)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expected, body)
		})
	}
}

func TestGetPersistentServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := testClient(srv)
	c.maxElapsed = time.Second
	_, err := c.Get(context.Background(), srv.URL)
	var internal *ErrInternal
	assert.ErrorAs(t, err, &internal)
	assert.Equal(t, http.StatusBadGateway, internal.Code)
}

func TestGetCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testClient(srv).Get(ctx, srv.URL)
	assert.Error(t, err)
}

func TestGetInvalidURL(t *testing.T) {
	_, err := New(time.Second).Get(context.Background(), "://nope")
	assert.Error(t, err)
}

func TestMockHttpClient(t *testing.T) {
	m := &MockHttpClient{
		Responses: []MockHttpResponse{
			{Code: 500},
			{Code: 200, Body: []byte("first")},
			{Code: 403},
		},
	}
	body, err := m.Get(context.Background(), "http://example.com/vault")
	assert.NoError(t, err)
	assert.Equal(t, []byte("first"), body)

	_, err = m.Get(context.Background(), "http://example.com/vault")
	var status *ErrStatusCode
	assert.ErrorAs(t, err, &status)
	assert.Equal(t, 403, status.Code)

	_, err = m.Get(context.Background(), "http://example.com/vault")
	var notfound *ErrNotFound
	assert.ErrorAs(t, err, &notfound)
	assert.Equal(t, []string{"http://example.com/vault", "http://example.com/vault", "http://example.com/vault"}, m.Requests)
}
