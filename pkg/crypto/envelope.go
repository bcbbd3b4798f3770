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
package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"

	"github.com/awnumar/memguard"
	"github.com/notapipeline/pwv/pkg/types"
)

// Width of the base64 lines written by `openssl enc -a`
const lineWidth = 64

var (
	b64enc = base64.StdEncoding.Strict()

	// mockable source of salt
	randRead func(b []byte) (int, error) = rand.Read
)

// Envelope is the binary framing of an OpenSSL encrypted file
//
//	<magic:8><salt:8><ciphertext>
type Envelope struct {
	Magic      []byte
	Salt       []byte
	Ciphertext []byte
}

// HasOpenSSLMagic reports whether the envelope starts with "Salted__"
func (e Envelope) HasOpenSSLMagic() bool {
	return string(e.Magic) == types.OpenSSLMagic
}

// ParseEnvelope strips the base64 transport encoding from buffer and splits
// the result into its envelope parts. Line breaks and other whitespace are
// ignored. The magic marker is not checked.
func ParseEnvelope(buffer []byte) (e Envelope, err error) {
	var decoded []byte
	if decoded, err = b64decode(bytes.Join(bytes.Fields(buffer), nil)); err != nil {
		return e, types.TransportDecodingError{Err: err}
	}

	if len(decoded) < types.EnvelopeSize {
		return e, types.MalformedEnvelopeError{Length: len(decoded)}
	}

	e = Envelope{
		Magic:      decoded[:types.MagicSize],
		Salt:       decoded[types.MagicSize:types.EnvelopeSize],
		Ciphertext: decoded[types.EnvelopeSize:],
	}
	return
}

// DecodeEnvelope derives the key and IV from password and the envelope salt
// and decrypts the ciphertext.
//
// Padding failures are reported as types.WrongPasswordError.
func DecodeEnvelope(e Envelope, password []byte) ([]byte, error) {
	var salted []byte = make([]byte, 0, len(password)+len(e.Salt))
	salted = append(salted, password...)
	salted = append(salted, e.Salt...)

	key, iv := DeriveKey(salted)
	memguard.WipeBytes(salted)
	defer memguard.WipeBytes(key[:])
	defer memguard.WipeBytes(iv[:])

	plaintext, err := DecryptBlock(e.Ciphertext, &key, &iv)
	if err != nil {
		if errors.As(err, &types.InvalidPaddingError{}) {
			return nil, types.WrongPasswordError{Err: err}
		}
		return nil, err
	}
	return plaintext, nil
}

// DecodeBuffer decrypts a base64 encoded OpenSSL envelope with password.
func DecodeBuffer(buffer []byte, password []byte) ([]byte, error) {
	e, err := ParseEnvelope(buffer)
	if err != nil {
		return nil, err
	}
	return DecodeEnvelope(e, password)
}

// EncodeBuffer encrypts plaintext with password into a base64 encoded
// envelope using a fresh random salt. The output can be read by
// `openssl enc -d -aes-256-cbc -a -md md5`.
func EncodeBuffer(plaintext []byte, password []byte) ([]byte, error) {
	var salt []byte = make([]byte, types.SaltSize)
	if _, err := randRead(salt); err != nil {
		return nil, err
	}

	var salted []byte = make([]byte, 0, len(password)+len(salt))
	salted = append(salted, password...)
	salted = append(salted, salt...)

	key, iv := DeriveKey(salted)
	memguard.WipeBytes(salted)
	defer memguard.WipeBytes(key[:])
	defer memguard.WipeBytes(iv[:])

	ct, err := EncryptBlock(plaintext, &key, &iv)
	if err != nil {
		return nil, err
	}

	var raw []byte = make([]byte, 0, types.EnvelopeSize+len(ct))
	raw = append(raw, types.OpenSSLMagic...)
	raw = append(raw, salt...)
	raw = append(raw, ct...)

	return wrap(b64enc.EncodeToString(raw)), nil
}

func wrap(encoded string) []byte {
	var out bytes.Buffer
	for len(encoded) > lineWidth {
		out.WriteString(encoded[:lineWidth])
		out.WriteByte('\n')
		encoded = encoded[lineWidth:]
	}
	out.WriteString(encoded)
	out.WriteByte('\n')
	return out.Bytes()
}

func b64decode(src []byte) (dst []byte, err error) {
	var n int
	dst = make([]byte, b64enc.DecodedLen(len(src)))
	if n, err = b64enc.Decode(dst, src); err != nil {
		return nil, err
	}
	dst = dst[:n]
	return
}
