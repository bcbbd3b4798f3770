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
	"crypto/md5"
	"hash"

	"github.com/awnumar/memguard"
	"github.com/notapipeline/pwv/pkg/types"
)

// DeriveKey reproduces OpenSSL's EVP_BytesToKey with MD5 and a single
// iteration, as used by `openssl enc -md md5`.
//
// saltedPassword is the password immediately followed by the 8 byte salt.
// Digest blocks are chained as
//
//	D_0 = MD5(saltedPassword)
//	D_i = MD5(D_{i-1} || saltedPassword)
//
// and concatenated. The first 32 bytes are the key, the next 16 the IV.
func DeriveKey(saltedPassword []byte) (key [types.KeySize]byte, iv [types.IVSize]byte) {
	var (
		hasher   hash.Hash = md5.New()
		digest   []byte
		material []byte = make([]byte, 0, types.KeySize+types.IVSize+md5.Size)
	)

	for len(material) < types.KeySize+types.IVSize {
		hasher.Reset()
		hasher.Write(digest)
		hasher.Write(saltedPassword)
		digest = hasher.Sum(digest[:0])
		material = append(material, digest...)
	}

	copy(key[:], material[:types.KeySize])
	copy(iv[:], material[types.KeySize:types.KeySize+types.IVSize])

	hasher.Reset()
	memguard.WipeBytes(digest)
	memguard.WipeBytes(material)
	return
}
