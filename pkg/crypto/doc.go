/*
Package crypto decodes password vaults written by `openssl enc -aes-256-cbc -a -md md5`.

A vault is base64 text wrapping a binary envelope:

	<magic:8><salt:8><ciphertext>

The key and IV are derived from the password and salt with OpenSSL's legacy
EVP_BytesToKey scheme (a single MD5 pass, no iteration count). This scheme
is weak by current standards and is reproduced byte for byte only so
existing vaults can be read.

Key material never leaves this package. The key, IV and the salted password
are held in fixed size arrays for the duration of one call and overwritten
with memguard.WipeBytes before returning. Callers holding the password
should do the same, for example by keeping it in a memguard.LockedBuffer:

	package main

	import (
		"github.com/awnumar/memguard"
		"github.com/notapipeline/pwv/pkg/crypto"
	)

	func main() {
		memguard.CatchInterrupt()
		defer memguard.Purge()

		password := memguard.NewBufferFromBytes([]byte("coolFoxholes12waters"))
		defer password.Destroy()

		plaintext, err := crypto.DecodeBuffer(vault, password.Bytes())
		if err != nil {
			// types.WrongPasswordError when the password is wrong or the
			// data is corrupt
			panic(err)
		}
		defer memguard.WipeBytes(plaintext)
	}
*/
package crypto
