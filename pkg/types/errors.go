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
package types

import "fmt"

// TransportDecodingError is returned when the stored vault is not valid
// standard base64.
type TransportDecodingError struct {
	Err error
}

func (e TransportDecodingError) Error() string {
	return fmt.Sprintf("invalid vault encoding: %v", e.Err)
}

func (e TransportDecodingError) Unwrap() error {
	return e.Err
}

type MalformedEnvelopeError struct {
	Length int
}

func (e MalformedEnvelopeError) Error() string {
	return fmt.Sprintf("malformed envelope: need at least %d bytes, got %d", EnvelopeSize, e.Length)
}

type BadMagicError struct {
	Value []byte
}

func (e BadMagicError) Error() string {
	return fmt.Sprintf("envelope does not start with %q: %q", OpenSSLMagic, e.Value)
}

type InvalidInputLengthError struct {
	Length int
}

func (e InvalidInputLengthError) Error() string {
	return fmt.Sprintf("ciphertext length %d is not a positive multiple of the block size", e.Length)
}

type InvalidPaddingError struct{}

func (e InvalidPaddingError) Error() string {
	return "invalid PKCS7 padding"
}

// WrongPasswordError is returned when the decrypted data does not carry valid
// padding. A wrong password and corrupted ciphertext cannot be told apart.
type WrongPasswordError struct {
	Err error
}

func (e WrongPasswordError) Error() string {
	return "wrong password or corrupt vault data"
}

func (e WrongPasswordError) Unwrap() error {
	return e.Err
}

type LibraryDecodeError struct {
	Err error
}

func (e LibraryDecodeError) Error() string {
	return fmt.Sprintf("unable to decode password library: %v", e.Err)
}

func (e LibraryDecodeError) Unwrap() error {
	return e.Err
}

type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

type IndexOutOfRangeError struct {
	Index, Max int
}

func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range, expected 1 to %d", e.Index, e.Max)
}
