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

package testdata

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// Password the vault fixtures are encrypted with
	Password = "coolFoxholes12waters"
	// Salt embedded in the vault fixtures, hex encoded
	Salt = "b58accdbf1c8a6e5"
)

type TestData struct {
	// Plaintext password library
	Library []byte
	// Library encrypted into an envelope with the marker "XXXXXXXX"
	Vault []byte
	// The same envelope carrying the "Salted__" marker written by openssl
	OpenSSLVault []byte
}

var (
	_, b, _, _ = runtime.Caller(0)
	basepath   = filepath.Dir(b)
)

func New() *TestData {
	var (
		t   *TestData = &TestData{}
		b   []byte
		err error
	)

	if b, err = os.ReadFile(basepath + "/library.json"); err != nil {
		log.Fatal(err)
	}
	t.Library = b

	if b, err = os.ReadFile(basepath + "/library.txt"); err != nil {
		log.Fatal(err)
	}
	t.Vault = b

	if b, err = os.ReadFile(basepath + "/library.openssl.txt"); err != nil {
		log.Fatal(err)
	}
	t.OpenSSLVault = b

	return t
}
