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

import "time"

const (
	// OpenSSL enc envelope layout
	MagicSize    = 8
	SaltSize     = 8
	EnvelopeSize = MagicSize + SaltSize

	KeySize   = 32
	IVSize    = 16
	BlockSize = 16

	// Intermediate buffer the block decryptor writes into on each step
	ScratchSize = 4096
)

// OpenSSLMagic is the marker `openssl enc` writes ahead of the salt
const OpenSSLMagic = "Salted__"

const (
	DefaultMaxAge  = 7 * 24 * time.Hour
	DefaultTimeout = 10 * time.Second
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
)
