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
	"fmt"
	"net/http"

	backoff "github.com/cenkalti/backoff/v4"
)

type ErrBase struct {
	Code int
	Body []byte
}

type ErrStatusCode ErrBase

func (e *ErrStatusCode) Error() string {
	return fmt.Sprintf("%s: %s", http.StatusText(e.Code), e.Body)
}

type ErrUnauthorized ErrBase

func (e *ErrUnauthorized) Error() string {
	return fmt.Sprintf("%s: %s", http.StatusText(e.Code), e.Body)
}

type ErrForbidden ErrBase

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("%s: %s", http.StatusText(e.Code), e.Body)
}

type ErrNotFound ErrBase

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s: %s", http.StatusText(e.Code), e.Body)
}

type ErrTooManyRequests ErrBase

func (e *ErrTooManyRequests) Error() string {
	return fmt.Sprintf("%s: %s", http.StatusText(e.Code), e.Body)
}

type ErrInternal ErrBase

func (e *ErrInternal) Error() string {
	return fmt.Sprintf("%s: %s", http.StatusText(e.Code), e.Body)
}

// Maps a non 2xx response to an error. Client errors other than 429 can
// never succeed on retry and are marked permanent.
func statusError(code int, body []byte) error {
	switch {
	case code == http.StatusUnauthorized:
		return backoff.Permanent(&ErrUnauthorized{code, body})
	case code == http.StatusForbidden:
		return backoff.Permanent(&ErrForbidden{code, body})
	case code == http.StatusNotFound:
		return backoff.Permanent(&ErrNotFound{code, body})
	case code == http.StatusTooManyRequests:
		return &ErrTooManyRequests{code, body}
	case code >= 500:
		return &ErrInternal{code, body}
	}
	return backoff.Permanent(&ErrStatusCode{code, body})
}
