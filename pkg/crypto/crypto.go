// Copyright (c) 2019, Daniel Martí <mvdan@mvdan.cc>
// This file is covered by the license at https://github.com/mvdan/bitw/blob/master/LICENSE
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"math"

	"github.com/awnumar/memguard"
	"github.com/notapipeline/pwv/pkg/types"
)

// DecryptBlock decrypts AES-256-CBC data and strips the PKCS7 padding.
//
// The ciphertext is fed through the cipher in steps no larger than
// types.ScratchSize, each step draining the scratch buffer into the result.
// Either the complete plaintext is returned or nothing is.
func DecryptBlock(ciphertext []byte, key *[types.KeySize]byte, iv *[types.IVSize]byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, types.InvalidInputLengthError{Length: len(ciphertext)}
	}

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}

	var (
		mode      cipher.BlockMode = cipher.NewCBCDecrypter(block, iv[:])
		scratch   [types.ScratchSize]byte
		remaining []byte = ciphertext
		result    []byte = make([]byte, 0, len(ciphertext))
		plaintext []byte
	)
	defer memguard.WipeBytes(scratch[:])

	for len(remaining) > 0 {
		n := min(len(remaining), len(scratch))
		mode.CryptBlocks(scratch[:n], remaining[:n])
		result = append(result, scratch[:n]...)
		remaining = remaining[n:]
	}

	if plaintext, err = UnpadPKCS7(result, aes.BlockSize); err != nil {
		memguard.WipeBytes(result)
		return nil, err
	}
	return plaintext, nil
}

// EncryptBlock pads the plaintext and encrypts it with AES-256-CBC. This is
// the inverse of DecryptBlock.
func EncryptBlock(plaintext []byte, key *[types.KeySize]byte, iv *[types.IVSize]byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}

	var data []byte
	if data, err = PadPKCS7(plaintext, aes.BlockSize); err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(data)

	ct := make([]byte, len(data))
	mode := cipher.NewCBCEncrypter(block, iv[:])
	mode.CryptBlocks(ct, data)
	return ct, nil
}

// UnpadPKCS7 removes and validates PKCS7 padding. The last byte n declares
// the number of padding bytes, all of which must equal n.
func UnpadPKCS7(src []byte, size int) ([]byte, error) {
	if len(src) == 0 || len(src)%size != 0 {
		return nil, types.InvalidInputLengthError{Length: len(src)}
	}

	n := int(src[len(src)-1])
	if n == 0 || n > size {
		return nil, types.InvalidPaddingError{}
	}

	var diff byte
	for _, b := range src[len(src)-n:] {
		diff |= b ^ byte(n)
	}
	if diff != 0 {
		return nil, types.InvalidPaddingError{}
	}
	return src[:len(src)-n], nil
}

func PadPKCS7(src []byte, size int) ([]byte, error) {
	// Note that we always pad, even if rem==0. This is because unpad must
	// always remove at least one byte to be unambiguous.
	rem := len(src) % size
	n := size - rem
	if n > math.MaxUint8 {
		return nil, fmt.Errorf("cannot pad over %d bytes, but got %d", math.MaxUint8, n)
	}
	padded := make([]byte, len(src)+n)
	copy(padded, src)
	for i := len(src); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded, nil
}
