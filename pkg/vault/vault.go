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
	"github.com/awnumar/memguard"

	"github.com/notapipeline/pwv/pkg/crypto"
	"github.com/notapipeline/pwv/pkg/types"
)

// Open decrypts an encoded vault with password and decodes the library.
//
// When verifyMagic is set, envelopes that do not start with "Salted__" are
// rejected with types.BadMagicError before any key is derived.
func Open(encoded, password []byte, verifyMagic bool) (*types.PasswordLibrary, error) {
	e, err := crypto.ParseEnvelope(encoded)
	if err != nil {
		return nil, err
	}

	if verifyMagic && !e.HasOpenSSLMagic() {
		return nil, types.BadMagicError{Value: e.Magic}
	}

	plaintext, err := crypto.DecodeEnvelope(e, password)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(plaintext)

	return types.FromJSONBytes(plaintext)
}

// Seal validates a plaintext library and encrypts it into an envelope
// readable by Open and by `openssl enc -d -aes-256-cbc -a -md md5`.
func Seal(library, password []byte) ([]byte, error) {
	if _, err := types.FromJSONBytes(library); err != nil {
		return nil, err
	}
	return crypto.EncodeBuffer(library, password)
}
